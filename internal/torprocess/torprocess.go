// Package torprocess allows github.com/cretz/bine to drive embedded tor
// through the bridge by implementing bine's [process.Creator].
package torprocess

//
// SPDX-License-Identifier: MIT
//
// Adapted from https://github.com/cretz/bine.
//

import (
	"context"
	"errors"
	"net"
	"runtime"
	"sync"

	"github.com/cretz/bine/process"
	"github.com/ooni/torbridge/internal/libtor"
	"github.com/ooni/torbridge/internal/model"
	"github.com/ooni/torbridge/internal/torbridge"
)

// ErrAlreadyStarted indicates that Start was called more than once.
var ErrAlreadyStarted = errors.New("torprocess: already started")

// ErrNotStarted indicates that Wait was called before Start.
var ErrNotStarted = errors.New("torprocess: not started")

// Creator implements [process.Creator]. The zero value is invalid; please,
// fill all the fields marked as MANDATORY.
type Creator struct {
	// API is the MANDATORY tor API.
	API libtor.API

	// Logger is the OPTIONAL logger.
	Logger model.Logger
}

var _ process.Creator = &Creator{}

// New implements process.Creator. The args are the tor command line
// without the program name, which is what bine passes us.
func (c *Creator) New(ctx context.Context, args ...string) (process.Process, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	p := &torProcess{
		args: args,
		controller: &torbridge.Controller{
			API:    c.API,
			Logger: c.Logger,
		},
		ctx:  ctx,
		done: nil,
		mu:   sync.Mutex{},
	}
	return p, nil
}

// torProcess implements process.Process.
type torProcess struct {
	args       []string
	controller *torbridge.Controller
	ctx        context.Context
	done       chan error
	mu         sync.Mutex
}

// Start implements process.Process. The bridge blocks until tor exits,
// so we run it in a background goroutine locked to its OS thread.
func (p *torProcess) Start() error {
	defer p.mu.Unlock()
	p.mu.Lock()
	if p.done != nil {
		return ErrAlreadyStarted
	}
	if err := p.ctx.Err(); err != nil {
		return err
	}
	p.done = make(chan error, 1)
	go func(done chan<- error) {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		done <- p.controller.Run(p.args)
	}(p.done)
	return nil
}

// Wait implements process.Process. It returns the error that caused
// tor to fail, whose message is the host diagnostic.
func (p *torProcess) Wait() error {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done == nil {
		return ErrNotStarted
	}
	select {
	case <-p.ctx.Done():
		return p.ctx.Err()
	case err := <-done:
		return err
	}
}

// EmbeddedControlConn implements process.Process. The bridge only
// exposes the four tor_api.h entrypoints, so bine must use the control
// port written to the ControlPortWriteToFile file instead.
func (p *torProcess) EmbeddedControlConn() (net.Conn, error) {
	return nil, process.ErrControlConnUnsupported
}
