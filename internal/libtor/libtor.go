// Package libtor exposes the subset of tor_api.h used by the bridge.
//
// When built with the `ooni_libtor` build tag, [MaybeAPI] returns the
// binding to the libtor.a we link against. Otherwise, it returns false
// and callers must provide their own [API] implementation.
//
// Tor behaves as process-wide state: running more than one instance
// per process is not supported, and invoking tor_run_main more than
// once in a row is known to be unreliable ([ooni/probe#2406]). It is
// the caller's job to serialize calls.
//
// [ooni/probe#2406]: https://github.com/ooni/probe/issues/2406
package libtor

import (
	"unsafe"

	"github.com/ooni/torbridge/internal/cargv"
)

// Configuration is an opaque tor_main_configuration_t pointer. The
// nil value represents a failed allocation.
type Configuration unsafe.Pointer

// API is the subset of tor_api.h we use.
type API interface {
	// ConfigurationNew wraps tor_main_configuration_new.
	ConfigurationNew() Configuration

	// SetCommandLine wraps tor_main_configuration_set_command_line. The
	// configuration keeps a weak reference to argv, which must therefore
	// outlive any subsequent RunMain using the same configuration.
	SetCommandLine(config Configuration, argv *cargv.Buffer) int

	// RunMain wraps tor_run_main. It blocks until tor exits.
	RunMain(config Configuration) int

	// ConfigurationFree wraps tor_main_configuration_free.
	ConfigurationFree(config Configuration)
}
