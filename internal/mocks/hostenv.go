package mocks

import "github.com/ooni/torbridge/internal/hostenv"

// HostEnv is a mockable hostenv.Env that is also a hostenv.Releaser.
type HostEnv struct {
	MockListSize  func(list hostenv.Object) (int, error)
	MockListGet   func(list hostenv.Object, idx int) (hostenv.Object, error)
	MockGetString func(value hostenv.Object) (string, error)
	MockNewString func(s string) (hostenv.Object, error)
	MockRelease   func(value hostenv.Object)
}

var (
	_ hostenv.Env      = &HostEnv{}
	_ hostenv.Releaser = &HostEnv{}
)

// ListSize calls MockListSize.
func (env *HostEnv) ListSize(list hostenv.Object) (int, error) {
	return env.MockListSize(list)
}

// ListGet calls MockListGet.
func (env *HostEnv) ListGet(list hostenv.Object, idx int) (hostenv.Object, error) {
	return env.MockListGet(list, idx)
}

// GetString calls MockGetString.
func (env *HostEnv) GetString(value hostenv.Object) (string, error) {
	return env.MockGetString(value)
}

// NewString calls MockNewString.
func (env *HostEnv) NewString(s string) (hostenv.Object, error) {
	return env.MockNewString(s)
}

// Release calls MockRelease.
func (env *HostEnv) Release(value hostenv.Object) {
	env.MockRelease(value)
}
