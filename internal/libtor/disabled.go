//go:build !ooni_libtor

package libtor

// MaybeAPI returns nil and false because we were not built
// with the `ooni_libtor` build tag.
func MaybeAPI() (API, bool) {
	return nil, false
}
