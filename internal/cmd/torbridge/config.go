package main

//
// Command line tokens
//

import (
	"os"

	"github.com/google/shlex"
	"github.com/ooni/torbridge/internal/hujsonx"
	"github.com/ooni/torbridge/internal/tordatadir"
	"github.com/pkg/errors"
)

// fileConfig is the content of the --config file, e.g.:
//
//	{
//		// tokens passed verbatim to tor
//		"Args": ["--SocksPort", "9050"],
//		// torrc-like lines split using shell quoting rules
//		"Lines": ["--ControlPort auto", "--Nickname 'my relay'"],
//	}
type fileConfig struct {
	Args  []string
	Lines []string
}

// splitLines splits torrc-like lines into tokens using shell quoting rules.
func splitLines(lines []string) ([]string, error) {
	out := []string{}
	for _, line := range lines {
		tokens, err := shlex.Split(line)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot split line %q", line)
		}
		out = append(out, tokens...)
	}
	return out, nil
}

// loadConfig loads the HuJSON config file at path.
func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read config file")
	}
	config := &fileConfig{}
	if err := hujsonx.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(err, "cannot parse config file %s", path)
	}
	return config, nil
}

// tokens contains the tor command line built from the options.
type tokens struct {
	// Args contains the tokens to pass to the bridge.
	Args []string

	// DataDir is the OPTIONAL data dir state we created.
	DataDir *tordatadir.State
}

// Close releases the data dir state, if any.
func (t *tokens) Close() error {
	if t.DataDir != nil {
		return t.DataDir.Close()
	}
	return nil
}

// userTokens returns the config file tokens followed by the --line tokens.
func userTokens(opts *Options) ([]string, error) {
	out := []string{}
	if opts.ConfigFile != "" {
		config, err := loadConfig(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		out = append(out, config.Args...)
		lines, err := splitLines(config.Lines)
		if err != nil {
			return nil, err
		}
		out = append(out, lines...)
	}
	lines, err := splitLines(opts.Lines)
	if err != nil {
		return nil, err
	}
	return append(out, lines...), nil
}

// buildTokens builds the tor command line: first the [userTokens], then
// the data directory tokens, and finally the positional tokens.
func buildTokens(opts *Options, positional []string) (*tokens, error) {
	args, err := userTokens(opts)
	if err != nil {
		return nil, err
	}
	out := &tokens{Args: args}
	if opts.DataDir != "" {
		state, err := tordatadir.New(opts.DataDir, tordatadir.DepsStdlib{})
		if err != nil {
			return nil, errors.Wrap(err, "cannot create data directory")
		}
		out.DataDir = state
		out.Args = append(out.Args, state.Args()...)
	}
	out.Args = append(out.Args, positional...)
	return out, nil
}
