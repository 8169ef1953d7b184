// Package tordatadir prepares a tor data directory and the tor
// command line tokens pointing at it.
package tordatadir

//
// SPDX-License-Identifier: MIT
//
// Adapted from https://github.com/cretz/bine.
//

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Deps contains runtime dependencies for [New].
type Deps interface {
	// CreateTemp is like os.CreateTemp.
	CreateTemp(dir string, pattern string) (*os.File, error)

	// MkdirAll is like os.MkdirAll.
	MkdirAll(path string, perm fs.FileMode) error

	// Remove is like os.Remove.
	Remove(name string) error
}

// DepsStdlib implements [Deps] using the standard library.
type DepsStdlib struct{}

var _ Deps = DepsStdlib{}

// CreateTemp implements Deps.
func (DepsStdlib) CreateTemp(dir string, pattern string) (*os.File, error) {
	return os.CreateTemp(dir, pattern)
}

// MkdirAll implements Deps.
func (DepsStdlib) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Remove implements Deps.
func (DepsStdlib) Remove(name string) error {
	return os.Remove(name)
}

// State is a prepared data directory. Please, use the [New] factory to construct.
type State struct {
	// ControlPortFile is where tor writes the control port.
	ControlPortFile string

	// CookieAuthFile is where tor writes the authentication cookie.
	CookieAuthFile string

	// DirPath is the absolute data directory path.
	DirPath string

	// TorRcFile is the empty torrc we ask tor to read.
	TorRcFile string

	closeOnce sync.Once
	deps      Deps
}

// New creates the data directory at dirPath, if needed, along with
// the files tor writes while running.
func New(dirPath string, deps Deps) (*State, error) {
	dirPath, err := filepath.Abs(dirPath)
	if err != nil {
		return nil, err
	}
	if err := deps.MkdirAll(dirPath, 0700); err != nil {
		return nil, err
	}
	s := &State{DirPath: dirPath, deps: deps}
	for _, entry := range []struct {
		pattern string
		dest    *string
	}{
		{"control-port-*", &s.ControlPortFile},
		{"cookie-auth-*", &s.CookieAuthFile},
		{"torrc-*", &s.TorRcFile},
	} {
		filep, err := deps.CreateTemp(dirPath, entry.pattern)
		if err != nil {
			s.Close()
			return nil, err
		}
		*entry.dest = filep.Name()
		filep.Close()
	}
	return s, nil
}

// Args returns the tor command line tokens using this data directory.
func (s *State) Args() []string {
	return []string{
		"-f", s.TorRcFile,
		"--DataDirectory", s.DirPath,
		"--ControlPort", "auto",
		"--ControlPortWriteToFile", s.ControlPortFile,
		"--CookieAuthentication", "1",
		"--CookieAuthFile", s.CookieAuthFile,
	}
}

var _ io.Closer = &State{}

// Close removes the files created by [New]. The data directory itself
// is kept so tor can reuse its cached state. This method is idempotent.
func (s *State) Close() error {
	s.closeOnce.Do(func() {
		for _, name := range []string{s.ControlPortFile, s.CookieAuthFile, s.TorRcFile} {
			if name != "" {
				_ = s.deps.Remove(name)
			}
		}
	})
	return nil
}
