//go:build cgo

package cargv

//
// alloc_cgo.go - argv backed by C memory.
//
// SPDX-License-Identifier: MIT
//
// Adapted from https://github.com/cretz/bine.
//

//
// #include <stdlib.h>
//
// /* Note: we need to define inline helpers because we cannot index C arrays in Go. */
//
// static char **cstringArrayNew(size_t size) {
//     char **argv = calloc(size, sizeof(char *));
//     if (argv == NULL) {
//         abort();
//     }
//     return argv;
// }
//
// static void cstringArraySet(char **argv, size_t index, char *entry) {
//     argv[index] = entry;
// }
//
// static void cstringArrayFree(char **argv, size_t size) {
//     for (size_t idx = 0; idx < size; idx++) {
//         free(argv[idx]);
//     }
//     free(argv);
// }
//
import "C"

import "unsafe"

// allocate copies argv into C memory and returns the pointer to the
// array along with the function releasing it.
func allocate(argv []string) (unsafe.Pointer, func()) {
	argc := C.size_t(len(argv))
	// Note: here we allocate argc + 1 because a "null pointer always follows
	// the last element: argv[argc] is this null pointer."
	//
	// See https://www.gnu.org/software/libc/manual/html_node/Program-Arguments.html
	cargv := C.cstringArrayNew(argc + 1)
	for idx, entry := range argv {
		C.cstringArraySet(cargv, C.size_t(idx), C.CString(entry))
	}
	release := func() {
		C.cstringArrayFree(cargv, argc)
	}
	return unsafe.Pointer(cargv), release
}
