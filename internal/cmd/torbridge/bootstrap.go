package main

//
// The bootstrap subcommand
//

import (
	"context"
	"fmt"
	"time"

	"github.com/cretz/bine/tor"
	"github.com/ooni/torbridge/internal/libtor"
	"github.com/ooni/torbridge/internal/model"
	"github.com/ooni/torbridge/internal/torprocess"
	"github.com/pkg/errors"
)

// newStartConf returns the bine configuration driving tor through the bridge.
func newStartConf(api libtor.API, logger model.Logger, opts *Options, extraArgs []string) *tor.StartConf {
	return &tor.StartConf{
		ProcessCreator: &torprocess.Creator{
			API:    api,
			Logger: logger,
		},
		UseEmbeddedControlConn: false,
		DataDir:                opts.DataDir,
		ExtraArgs:              extraArgs,
		NoHush:                 opts.Verbose,
	}
}

// bootstrapMain starts tor using bine, waits for the bootstrap, and stops tor.
func bootstrapMain(ctx context.Context, deps *cliDeps, opts *Options, positional []string) error {
	ctx = ensureContext(ctx)
	api, err := deps.mustHaveAPI()
	if err != nil {
		return err
	}

	// bine manages the data directory itself, so we skip tordatadir here
	extraArgs, err := userTokens(opts)
	if err != nil {
		return err
	}
	extraArgs = append(extraArgs, positional...)

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	t0 := time.Now()
	instance, err := tor.Start(ctx, newStartConf(api, deps.logger, opts, extraArgs))
	if err != nil {
		return errors.Wrap(err, "cannot start tor")
	}
	defer instance.Close()

	if err := instance.EnableNetwork(ctx, true); err != nil {
		return errors.Wrap(err, "cannot bootstrap tor")
	}
	deps.logger.Infof("torbridge: bootstrapped in %s", time.Since(t0))

	socks, err := instance.Control.GetInfo("net/listeners/socks")
	if err != nil {
		return errors.Wrap(err, "cannot get SOCKS listeners")
	}
	for _, entry := range socks {
		fmt.Fprintf(deps.stdout, "%s=%s\n", entry.Key, entry.Val)
	}
	return nil
}
