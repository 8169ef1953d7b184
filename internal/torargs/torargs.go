// Package torargs imports the tor command line prepared by the host
// and turns it into the argument vectors used to verify and run tor.
package torargs

import (
	"fmt"

	"github.com/ooni/torbridge/internal/hostenv"
)

const (
	// ProgramName is the argv[0] we pass to tor.
	ProgramName = "tor"

	// VerifyConfigFlag tells tor to verify the configuration and exit.
	VerifyConfigFlag = "--verify-config"
)

// Vectors contains the argument vectors for a single bridge call.
type Vectors struct {
	// Verify is ["tor", "--verify-config", tokens...].
	Verify []string

	// Run is ["tor", tokens...].
	Run []string
}

// Import reads the list of tokens from the host and builds the [*Vectors]. The
// tokens are copied verbatim and in order. An empty list is fine.
func Import(env hostenv.Env, lines hostenv.Object) (*Vectors, error) {
	size, err := env.ListSize(lines)
	if err != nil {
		return nil, fmt.Errorf("torargs: %w", err)
	}
	v := &Vectors{
		Verify: make([]string, 0, size+2),
		Run:    make([]string, 0, size+1),
	}
	v.Verify = append(v.Verify, ProgramName, VerifyConfigFlag)
	v.Run = append(v.Run, ProgramName)
	for idx := 0; idx < size; idx++ {
		token, err := importToken(env, lines, idx)
		if err != nil {
			return nil, fmt.Errorf("torargs: element #%d: %w", idx, err)
		}
		v.Verify = append(v.Verify, token)
		v.Run = append(v.Run, token)
	}
	return v, nil
}

func importToken(env hostenv.Env, lines hostenv.Object, idx int) (string, error) {
	value, err := env.ListGet(lines, idx)
	if err != nil {
		return "", err
	}
	defer hostenv.Release(env, value)
	return env.GetString(value)
}

// FromSlice is a convenience wrapper calling [Import] with a [hostenv.GoEnv].
func FromSlice(tokens []string) *Vectors {
	v, err := Import(hostenv.GoEnv{}, tokens)
	if err != nil {
		// cannot happen: a []string is always a list of strings
		panic(err)
	}
	return v
}
