// Package runtimex contains runtime extensions. This package is inspired to
// https://pkg.go.dev/github.com/m-lab/go/rtx, except that it's simpler.
package runtimex

import "errors"

// Assert calls panic if assertion is false.
func Assert(assertion bool, message string) {
	if !assertion {
		panic(errors.New(message))
	}
}

// PanicIfNil calls panic if the given interface is nil.
func PanicIfNil(v any, message string) {
	Assert(v != nil, message)
}
