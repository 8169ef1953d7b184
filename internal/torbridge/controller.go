package torbridge

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/ooni/torbridge/internal/cargv"
	"github.com/ooni/torbridge/internal/hostenv"
	"github.com/ooni/torbridge/internal/libtor"
	"github.com/ooni/torbridge/internal/model"
	"github.com/ooni/torbridge/internal/runtimex"
	"github.com/ooni/torbridge/internal/torargs"
)

// ErrInternal indicates that the bridge recovered from a panic.
var ErrInternal = errors.New("torbridge: internal error")

// Controller drives a tor configuration through its lifecycle. The zero value
// is invalid; please, fill all the fields marked as MANDATORY.
type Controller struct {
	// API is the MANDATORY tor API.
	API libtor.API

	// Logger is the OPTIONAL logger.
	Logger model.Logger
}

// RunLines is the bridge entrypoint. It reads the tor command line from
// the lines host list, runs tor, and returns the result string allocated
// using env. The result is empty on success. This method does not panic
// and only returns nil when env cannot allocate the result.
func (c *Controller) RunLines(env hostenv.Env, lines hostenv.Object) (out hostenv.Object) {
	result := c.runLines(env, lines)
	defer func() {
		if r := recover(); r != nil {
			c.logger().Warnf("torbridge: cannot allocate result %q: %v", result, r)
			out = nil
		}
	}()
	out, err := env.NewString(result)
	if err != nil {
		c.logger().Warnf("torbridge: cannot allocate result %q: %s", result, err.Error())
		return nil
	}
	return out
}

func (c *Controller) runLines(env hostenv.Env, lines hostenv.Object) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = Result(fmt.Errorf("%w: %v", ErrInternal, r))
		}
	}()
	vectors, err := torargs.Import(env, lines)
	if err != nil {
		return Result(err)
	}
	return Result(c.Invoke(vectors))
}

// Run is the Go-friendly version of [Controller.RunLines] where the host
// list is tokens. It returns the error that caused the call to fail.
func (c *Controller) Run(tokens []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()
	return c.Invoke(torargs.FromSlice(tokens))
}

// Invoke encodes the vectors and runs the four native steps.
//
// Encoding happens before allocating the configuration, so an encoding
// error never reaches tor. Any [*StepError] is returned after the
// configuration has been freed.
func (c *Controller) Invoke(v *torargs.Vectors) error {
	runtimex.PanicIfNil(c.API, "torbridge: nil API")
	verify, err := cargv.New(v.Verify)
	if err != nil {
		return err
	}
	defer verify.Close()
	run, err := cargv.New(v.Run)
	if err != nil {
		return err
	}
	defer run.Close()
	return c.invoke(verify, run)
}

func (c *Controller) invoke(verify, run *cargv.Buffer) error {
	// make sure we lock to an OS thread otherwise the goroutine can get
	// preempted midway and cause data races
	//
	// See https://github.com/ooni/probe/issues/2406#issuecomment-1479138677
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	logger := c.logger()

	config := c.API.ConfigurationNew()
	if config == nil {
		logger.Warnf("torbridge: %s returned NULL", StepAllocate)
		return &StepError{Step: StepAllocate}
	}
	defer c.API.ConfigurationFree(config)

	logger.Infof("torbridge: verify: %s", strings.Join(verify.Strings(), " "))
	if code := c.API.SetCommandLine(config, verify); code != 0 {
		return c.stepFailed(StepSetVerifyArgs, code)
	}
	if code := c.API.RunMain(config); code != 0 {
		return c.stepFailed(StepVerify, code)
	}

	logger.Infof("torbridge: run: %s", strings.Join(run.Strings(), " "))
	if code := c.API.SetCommandLine(config, run); code != 0 {
		return c.stepFailed(StepSetRunArgs, code)
	}
	if code := c.API.RunMain(config); code != 0 {
		return c.stepFailed(StepRun, code)
	}

	logger.Info("torbridge: tor exited successfully")
	return nil
}

func (c *Controller) stepFailed(step Step, code int) error {
	c.logger().Warnf("torbridge: %s failed with code %d", step, code)
	return &StepError{Step: step, Code: code}
}

func (c *Controller) logger() model.Logger {
	return model.ValidLoggerOrDefault(c.Logger)
}

// Result maps the outcome of a call to the string returned to the host. A nil
// error maps to the empty string, a [*StepError] maps to its fixed diagnostic,
// and any other error maps to a non-empty descriptive string.
func Result(err error) string {
	if err == nil {
		return ""
	}
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return ErrInternal.Error()
}
