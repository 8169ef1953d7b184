//go:build !cgo

package cargv

import "unsafe"

// allocate copies argv into Go memory. Without cgo nothing can hand the
// pointers to C code, so keeping the storage reachable is enough.
func allocate(argv []string) (unsafe.Pointer, func()) {
	storage := make([][]byte, len(argv))
	slots := make([]*byte, len(argv)+1)
	for idx, entry := range argv {
		storage[idx] = append([]byte(entry), 0)
		slots[idx] = &storage[idx][0]
	}
	release := func() {
		for idx := range slots {
			slots[idx] = nil
		}
		storage = nil
	}
	return unsafe.Pointer(&slots[0]), release
}
