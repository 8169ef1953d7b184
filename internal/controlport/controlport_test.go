package controlport

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	type testcase struct {
		name   string
		data   string
		expect string
		err    error
	}

	cases := []testcase{{
		name:   "with a typical file",
		data:   "PORT=127.0.0.1:9051\n",
		expect: "127.0.0.1:9051",
	}, {
		name:   "with CRLF line endings and extra lines",
		data:   "UNIX_PORT=/tmp/x\r\nPORT=[::1]:34567\r\n",
		expect: "[::1]:34567",
	}, {
		name: "with an empty file",
		data: "",
		err:  ErrNoControlPort,
	}, {
		name: "with an empty PORT line",
		data: "PORT=\n",
		err:  ErrNoControlPort,
	}}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			address, err := Parse([]byte(tc.data))
			if !errors.Is(err, tc.err) {
				t.Fatal("unexpected error", err)
			}
			if address != tc.expect {
				t.Fatal("expected", tc.expect, "got", address)
			}
		})
	}
}

func TestWait(t *testing.T) {
	t.Run("when the file already exists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "control.txt")
		if err := os.WriteFile(path, []byte("PORT=127.0.0.1:9051\n"), 0600); err != nil {
			t.Fatal(err)
		}
		address, err := Wait(context.Background(), path, nil)
		if err != nil {
			t.Fatal(err)
		}
		if address != "127.0.0.1:9051" {
			t.Fatal("unexpected address", address)
		}
	})

	t.Run("when tor renames the file into place later", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "control.txt")
		if err := os.WriteFile(path, nil, 0600); err != nil { // like tordatadir does
			t.Fatal(err)
		}
		go func() {
			time.Sleep(100 * time.Millisecond)
			tmp := path + ".tmp"
			if err := os.WriteFile(tmp, []byte("PORT=127.0.0.1:45678\n"), 0600); err != nil {
				panic(err)
			}
			if err := os.Rename(tmp, path); err != nil {
				panic(err)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		address, err := Wait(ctx, path, nil)
		if err != nil {
			t.Fatal(err)
		}
		if address != "127.0.0.1:45678" {
			t.Fatal("unexpected address", address)
		}
	})

	t.Run("when the context expires", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "control.txt")
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_, err := Wait(ctx, path, nil)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("when the directory does not exist", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nonexistent", "control.txt")
		if _, err := Wait(context.Background(), path, nil); err == nil {
			t.Fatal("expected an error")
		}
	})
}
