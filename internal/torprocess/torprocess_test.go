package torprocess

import (
	"context"
	"errors"
	"testing"
	"unsafe"

	"github.com/cretz/bine/process"
	"github.com/google/go-cmp/cmp"
	"github.com/ooni/torbridge/internal/cargv"
	"github.com/ooni/torbridge/internal/libtor"
	"github.com/ooni/torbridge/internal/mocks"
	"github.com/ooni/torbridge/internal/torbridge"
)

// newAPI returns an API where tor_run_main returns the given codes and
// which sends the run command line to argvch.
func newAPI(codes []int, argvch chan<- []string, blockch <-chan struct{}) *mocks.TorAPI {
	var (
		handle byte
		step   int
	)
	next := func() int {
		defer func() { step++ }()
		if step < len(codes) {
			return codes[step]
		}
		return 0
	}
	return &mocks.TorAPI{
		MockConfigurationNew: func() libtor.Configuration {
			return libtor.Configuration(unsafe.Pointer(&handle))
		},
		MockSetCommandLine: func(config libtor.Configuration, argv *cargv.Buffer) int {
			if argvch != nil {
				argvch <- argv.Strings()
			}
			return 0
		},
		MockRunMain: func(config libtor.Configuration) int {
			if blockch != nil {
				<-blockch
			}
			return next()
		},
		MockConfigurationFree: func(config libtor.Configuration) {},
	}
}

func TestNormalUsage(t *testing.T) {
	argvch := make(chan []string, 2)
	creator := &Creator{API: newAPI(nil, argvch, nil)}

	proc, err := creator.New(context.Background(), "--SocksPort", "auto")
	if err != nil {
		t.Fatal(err)
	}
	if err := proc.Start(); err != nil {
		t.Fatal(err)
	}
	if err := proc.Wait(); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"tor", "--verify-config", "--SocksPort", "auto"}, <-argvch); diff != "" {
		t.Fatal(diff)
	}
	if diff := cmp.Diff([]string{"tor", "--SocksPort", "auto"}, <-argvch); diff != "" {
		t.Fatal(diff)
	}
}

func TestVerifyFailure(t *testing.T) {
	creator := &Creator{API: newAPI([]int{1}, nil, nil)}
	proc, err := creator.New(context.Background(), "--bogus")
	if err != nil {
		t.Fatal(err)
	}
	if err := proc.Start(); err != nil {
		t.Fatal(err)
	}
	err = proc.Wait()
	var stepErr *torbridge.StepError
	if !errors.As(err, &stepErr) || stepErr.Step != torbridge.StepVerify {
		t.Fatal("unexpected error", err)
	}
	if err.Error() != torbridge.DiagnosticVerify {
		t.Fatal("unexpected message", err.Error())
	}
}

func TestContextAlreadyExpired(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // fail immediately

	creator := &Creator{API: newAPI(nil, nil, nil)}
	proc, err := creator.New(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := proc.Start(); !errors.Is(err, context.Canceled) {
		t.Fatal("unexpected err", err)
	}
}

func TestContextCanceledWhileTorIsRunning(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	blockch := make(chan struct{})
	defer close(blockch)

	creator := &Creator{API: newAPI(nil, nil, blockch)}
	proc, err := creator.New(ctx, "--SocksPort", "auto")
	if err != nil {
		t.Fatal(err)
	}
	if err := proc.Start(); err != nil {
		t.Fatal(err)
	}
	cancel()
	if err := proc.Wait(); !errors.Is(err, context.Canceled) {
		t.Fatal("unexpected err", err)
	}
}

func TestStartTwice(t *testing.T) {
	creator := &Creator{API: newAPI(nil, nil, nil)}
	proc, err := creator.New(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := proc.Start(); err != nil {
		t.Fatal(err)
	}
	if err := proc.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatal("unexpected err", err)
	}
	if err := proc.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestWaitWithoutStart(t *testing.T) {
	creator := &Creator{API: newAPI(nil, nil, nil)}
	proc, err := creator.New(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := proc.Wait(); !errors.Is(err, ErrNotStarted) {
		t.Fatal("unexpected err", err)
	}
}

func TestEmbeddedControlConn(t *testing.T) {
	creator := &Creator{API: newAPI(nil, nil, nil)}
	proc, err := creator.New(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	conn, err := proc.EmbeddedControlConn()
	if !errors.Is(err, process.ErrControlConnUnsupported) {
		t.Fatal("unexpected err", err)
	}
	if conn != nil {
		t.Fatal("expected nil conn")
	}
}
