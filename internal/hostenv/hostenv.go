// Package hostenv models the boundary between the host runtime calling
// the bridge and the bridge itself.
//
// The host owns the values crossing the boundary. The bridge only sees
// opaque [Object] handles and reads them through an [Env], which is the
// runtime boundary context (e.g., a JNIEnv pointer when the host is a JVM).
package hostenv

import (
	"errors"
	"fmt"
)

// Object is an opaque handle to a host value.
type Object any

// Env is the runtime boundary context used to read host values and to
// allocate the values we return to the host.
type Env interface {
	// ListSize returns the size of the host list. It fails with an
	// error wrapping [ErrNotAList] when list is not a list.
	ListSize(list Object) (int, error)

	// ListGet returns the element of list at idx.
	ListGet(list Object, idx int) (Object, error)

	// GetString copies the given host string into a Go string. It fails
	// with an error wrapping [ErrNotAString] when value is not a string.
	GetString(value Object) (string, error)

	// NewString allocates a host string containing s.
	NewString(s string) (Object, error)
}

// Releaser is OPTIONALLY implemented by an [Env] whose handles returned
// by ListGet must be released once the caller is done with them.
type Releaser interface {
	Release(value Object)
}

// ErrBoundaryType indicates that a host value is not of the type we expected.
var ErrBoundaryType = errors.New("hostenv: unexpected host value type")

// ErrNotAList indicates that the host value is not a list of strings.
var ErrNotAList = fmt.Errorf("%w: not a list", ErrBoundaryType)

// ErrNotAString indicates that a host value is not a string.
var ErrNotAString = fmt.Errorf("%w: not a string", ErrBoundaryType)

// ErrIndexOutOfRange indicates that we accessed a list out of its bounds.
var ErrIndexOutOfRange = fmt.Errorf("%w: index out of range", ErrBoundaryType)

// Release calls value's Release method when env implements [Releaser].
func Release(env Env, value Object) {
	if r, ok := env.(Releaser); ok {
		r.Release(value)
	}
}
