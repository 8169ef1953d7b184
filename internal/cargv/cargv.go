// Package cargv encodes a Go argument vector into the argc/argv pair
// that C entrypoints such as tor_main_configuration_set_command_line expect.
//
// The memory backing a [*Buffer] stays valid and unmoved until Close, so
// it is safe to pass [Buffer.Argv] to a C function for the duration of
// the call. Never retain the pointer past Close.
package cargv

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"unsafe"
)

// ErrEncoding is the root of all the errors returned by this package.
var ErrEncoding = errors.New("cargv: cannot encode arguments")

// ErrInteriorNUL indicates that an argument contains a NUL byte, which
// cannot be represented using a NUL-terminated C string.
var ErrInteriorNUL = fmt.Errorf("%w: argument contains a NUL byte", ErrEncoding)

// ErrTooManyArguments indicates that argc would not fit a C int.
var ErrTooManyArguments = fmt.Errorf("%w: too many arguments", ErrEncoding)

// Buffer is an encoded argument vector. Please, use [New] to construct.
type Buffer struct {
	argc      int32
	argv      unsafe.Pointer
	closeOnce sync.Once
	mu        sync.Mutex
	release   func()
}

// New validates and encodes argv. The caller owns the returned
// buffer and must call Close when done using it.
func New(argv []string) (*Buffer, error) {
	if err := checkArgc(len(argv)); err != nil {
		return nil, err
	}
	for idx, entry := range argv {
		if strings.IndexByte(entry, 0) >= 0 {
			return nil, fmt.Errorf("%w: argv[%d]", ErrInteriorNUL, idx)
		}
	}
	ptr, release := allocate(argv)
	return &Buffer{
		argc:    int32(len(argv)),
		argv:    ptr,
		release: release,
	}, nil
}

// checkArgc ensures that count fits a positive C int.
func checkArgc(count int) error {
	if int64(count) > math.MaxInt32 {
		return fmt.Errorf("%w: %d", ErrTooManyArguments, count)
	}
	return nil
}

// With acquires a buffer for argv, invokes fn with it, and releases the
// buffer before returning fn's result.
func With(argv []string, fn func(b *Buffer) int) (int, error) {
	b, err := New(argv)
	if err != nil {
		return 0, err
	}
	defer b.Close()
	return fn(b), nil
}

// Argc returns the number of arguments.
func (b *Buffer) Argc() int32 {
	return b.argc
}

// Argv returns the pointer to the first `char *` slot or nil after Close.
// The array has a NULL slot after the last argument, which is not
// counted by Argc.
func (b *Buffer) Argv() unsafe.Pointer {
	defer b.mu.Unlock()
	b.mu.Lock()
	return b.argv
}

// Strings decodes the arguments back by following the pointers inside
// the buffer. It returns nil after Close.
func (b *Buffer) Strings() []string {
	defer b.mu.Unlock()
	b.mu.Lock()
	if b.argv == nil {
		return nil
	}
	slots := unsafe.Slice((**byte)(b.argv), int(b.argc))
	out := make([]string, 0, len(slots))
	for _, slot := range slots {
		out = append(out, goString(slot))
	}
	return out
}

// Close releases the pointer array together with the memory backing
// each argument. This method is idempotent.
func (b *Buffer) Close() error {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.argv = nil
		b.mu.Unlock()
		b.release()
	})
	return nil
}

// goString copies the NUL-terminated string at p.
func goString(p *byte) string {
	var count int
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), count)) != 0 {
		count++
	}
	return string(unsafe.Slice(p, count))
}
