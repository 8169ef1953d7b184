//go:build ooni_libtor

package libtor

//
// enabled.go - binding to the libtor.a we link against.
//
// SPDX-License-Identifier: MIT
//
// Adapted from https://github.com/cretz/bine.
//

//
// #cgo linux,amd64 CFLAGS: -I${SRCDIR}/linux/amd64/include
// #cgo linux,amd64 LDFLAGS: -L${SRCDIR}/linux/amd64/lib -ltor -levent -lssl -lcrypto -lz -lm
//
// #cgo android,arm CFLAGS: -I${SRCDIR}/android/arm/include
// #cgo android,arm LDFLAGS: -L${SRCDIR}/android/arm/lib -ltor -levent -lssl -lcrypto -lz -lm
// #cgo android,arm64 CFLAGS: -I${SRCDIR}/android/arm64/include
// #cgo android,arm64 LDFLAGS: -L${SRCDIR}/android/arm64/lib -ltor -levent -lssl -lcrypto -lz -lm
// #cgo android,386 CFLAGS: -I${SRCDIR}/android/386/include
// #cgo android,386 LDFLAGS: -L${SRCDIR}/android/386/lib -ltor -levent -lssl -lcrypto -lz -lm
// #cgo android,amd64 CFLAGS: -I${SRCDIR}/android/amd64/include
// #cgo android,amd64 LDFLAGS: -L${SRCDIR}/android/amd64/lib -ltor -levent -lssl -lcrypto -lz -lm
//
// #include <stdlib.h>
//
// #include <tor_api.h>
//
import "C"

import (
	"unsafe"

	"github.com/ooni/torbridge/internal/cargv"
)

// MaybeAPI returns the libtor.a binding and true.
func MaybeAPI() (API, bool) {
	return nativeAPI{}, true
}

// nativeAPI implements API using cgo.
type nativeAPI struct{}

var _ API = nativeAPI{}

// ConfigurationNew implements API.
func (nativeAPI) ConfigurationNew() Configuration {
	return Configuration(unsafe.Pointer(C.tor_main_configuration_new()))
}

// SetCommandLine implements API.
func (nativeAPI) SetCommandLine(config Configuration, argv *cargv.Buffer) int {
	code := C.tor_main_configuration_set_command_line(
		(*C.struct_tor_main_configuration_t)(config),
		C.int(argv.Argc()),
		(**C.char)(argv.Argv()),
	)
	return int(code)
}

// RunMain implements API.
func (nativeAPI) RunMain(config Configuration) int {
	return int(C.tor_run_main((*C.struct_tor_main_configuration_t)(config)))
}

// ConfigurationFree implements API.
func (nativeAPI) ConfigurationFree(config Configuration) {
	C.tor_main_configuration_free((*C.struct_tor_main_configuration_t)(config))
}
