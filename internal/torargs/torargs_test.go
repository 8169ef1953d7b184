package torargs

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ooni/torbridge/internal/hostenv"
	"github.com/ooni/torbridge/internal/mocks"
)

func TestImport(t *testing.T) {
	type testcase struct {
		name   string
		lines  hostenv.Object
		expect *Vectors
		err    error
	}

	cases := []testcase{{
		name:  "with an empty list",
		lines: []string{},
		expect: &Vectors{
			Verify: []string{"tor", "--verify-config"},
			Run:    []string{"tor"},
		},
	}, {
		name:  "with a nil list",
		lines: []string(nil),
		expect: &Vectors{
			Verify: []string{"tor", "--verify-config"},
			Run:    []string{"tor"},
		},
	}, {
		name:  "with one option",
		lines: []string{"--SocksPort", "9050"},
		expect: &Vectors{
			Verify: []string{"tor", "--verify-config", "--SocksPort", "9050"},
			Run:    []string{"tor", "--SocksPort", "9050"},
		},
	}, {
		name:  "with duplicate tokens",
		lines: []any{"--SocksPort", "9050", "--SocksPort", "9050", "--verify-config"},
		expect: &Vectors{
			Verify: []string{"tor", "--verify-config", "--SocksPort", "9050", "--SocksPort", "9050", "--verify-config"},
			Run:    []string{"tor", "--SocksPort", "9050", "--SocksPort", "9050", "--verify-config"},
		},
	}, {
		name:  "with interior NUL bytes",
		lines: []string{"foo\x00bar"},
		expect: &Vectors{
			Verify: []string{"tor", "--verify-config", "foo\x00bar"},
			Run:    []string{"tor", "foo\x00bar"},
		},
	}, {
		name:  "when the handle is not a list",
		lines: "--SocksPort",
		err:   hostenv.ErrNotAList,
	}, {
		name:  "when an element is not a string",
		lines: []any{"--SocksPort", 9050},
		err:   hostenv.ErrNotAString,
	}}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Import(hostenv.GoEnv{}, tc.lines)
			if !errors.Is(err, tc.err) {
				t.Fatal("unexpected error", err)
			}
			if err != nil && !errors.Is(err, hostenv.ErrBoundaryType) {
				t.Fatal("expected a boundary-type error", err)
			}
			if diff := cmp.Diff(tc.expect, v); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestImportReleasesElements(t *testing.T) {
	var (
		released  []hostenv.Object
		traversed []int
	)
	env := &mocks.HostEnv{
		MockListSize: func(list hostenv.Object) (int, error) {
			return 2, nil
		},
		MockListGet: func(list hostenv.Object, idx int) (hostenv.Object, error) {
			traversed = append(traversed, idx)
			return []string{"--ControlPort", "auto"}[idx], nil
		},
		MockGetString: func(value hostenv.Object) (string, error) {
			return value.(string), nil
		},
		MockRelease: func(value hostenv.Object) {
			released = append(released, value)
		},
	}

	v, err := Import(env, "opaque")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"tor", "--ControlPort", "auto"}, v.Run); diff != "" {
		t.Fatal(diff)
	}
	if diff := cmp.Diff([]int{0, 1}, traversed); diff != "" {
		t.Fatal(diff)
	}
	if diff := cmp.Diff([]hostenv.Object{"--ControlPort", "auto"}, released); diff != "" {
		t.Fatal(diff)
	}
}

func TestImportListGetFailure(t *testing.T) {
	expected := errors.New("mocked error")
	env := &mocks.HostEnv{
		MockListSize: func(list hostenv.Object) (int, error) {
			return 1, nil
		},
		MockListGet: func(list hostenv.Object, idx int) (hostenv.Object, error) {
			return nil, expected
		},
	}
	v, err := Import(env, "opaque")
	if !errors.Is(err, expected) {
		t.Fatal("unexpected error", err)
	}
	if v != nil {
		t.Fatal("expected nil vectors")
	}
}

func TestImportCopiesTokens(t *testing.T) {
	lines := []string{"--SocksPort", "9050"}
	v := FromSlice(lines)
	lines[1] = "9150"
	if diff := cmp.Diff([]string{"tor", "--SocksPort", "9050"}, v.Run); diff != "" {
		t.Fatal(diff)
	}
}
