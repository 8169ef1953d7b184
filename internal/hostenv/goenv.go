package hostenv

import "fmt"

// GoEnv is the [Env] to use when the host is Go code. Lists are
// either []string or []any and strings are Go strings.
//
// The zero value is ready to use.
type GoEnv struct{}

var _ Env = GoEnv{}

// ListSize implements Env.
func (GoEnv) ListSize(list Object) (int, error) {
	switch v := list.(type) {
	case []string:
		return len(v), nil
	case []any:
		return len(v), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotAList, list)
	}
}

// ListGet implements Env.
func (env GoEnv) ListGet(list Object, idx int) (Object, error) {
	size, err := env.ListSize(list)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= size {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, idx, size)
	}
	switch v := list.(type) {
	case []string:
		return v[idx], nil
	default:
		return v.([]any)[idx], nil
	}
}

// GetString implements Env.
func (GoEnv) GetString(value Object) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %T", ErrNotAString, value)
	}
	return s, nil
}

// NewString implements Env.
func (GoEnv) NewString(s string) (Object, error) {
	return s, nil
}
