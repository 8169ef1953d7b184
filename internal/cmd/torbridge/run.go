package main

//
// The run subcommand
//

import (
	"context"
	"fmt"

	"github.com/ooni/torbridge/internal/controlport"
	"github.com/ooni/torbridge/internal/torargs"
	"github.com/ooni/torbridge/internal/torbridge"
	"github.com/pkg/errors"
)

// vectorsFor returns the vectors the bridge builds for args.
func vectorsFor(args []string) *torargs.Vectors {
	return torargs.FromSlice(args)
}

// runMain runs tor through the bridge until it exits.
func runMain(ctx context.Context, deps *cliDeps, opts *Options, positional []string) error {
	ctx = ensureContext(ctx)
	api, err := deps.mustHaveAPI()
	if err != nil {
		return err
	}
	tokens, err := buildTokens(opts, positional)
	if err != nil {
		return err
	}
	defer tokens.Close()

	// tell the user where the control port is once tor writes it
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if tokens.DataDir != nil {
		go func() {
			address, err := controlport.Wait(ctx, tokens.DataDir.ControlPortFile, deps.logger)
			if err != nil {
				deps.logger.Debugf("torbridge: control port: %s", err.Error())
				return
			}
			deps.logger.Infof("torbridge: control port: %s (cookie: %s)", address, tokens.DataDir.CookieAuthFile)
		}()
	}

	controller := &torbridge.Controller{
		API:    api,
		Logger: deps.logger,
	}
	result := torbridge.Result(controller.Run(tokens.Args))
	fmt.Fprintf(deps.stdout, "%q\n", result)
	if result != "" {
		return errors.New(result)
	}
	return nil
}
