// Command torbridge runs embedded tor through the bridge used by JVM
// hosts, which is useful for QA and for debugging a tor command line.
package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/ooni/torbridge/internal/libtor"
	"github.com/ooni/torbridge/internal/model"
	"github.com/ooni/torbridge/internal/version"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Options contains the options you can set from the CLI.
type Options struct {
	ConfigFile string
	DataDir    string
	Lines      []string
	Timeout    time.Duration
	Verbose    bool
}

// cliDeps contains the dependencies of the commands.
type cliDeps struct {
	// api returns the tor API, if available.
	api func() (libtor.API, bool)

	// logger is the logger to use.
	logger model.Logger

	// stdout is where we print results.
	stdout io.Writer
}

// errNoLibtor indicates that we were built without the ooni_libtor build tag.
var errNoLibtor = errors.New("torbridge: built without libtor (use -tags ooni_libtor)")

func (d *cliDeps) mustHaveAPI() (libtor.API, error) {
	api, good := d.api()
	if !good {
		return nil, errNoLibtor
	}
	return api, nil
}

// main is the main function of torbridge.
func main() {
	deps := &cliDeps{
		api:    libtor.MaybeAPI,
		logger: log.Log,
		stdout: os.Stdout,
	}
	if err := newRootCommand(deps).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCommand creates the root command and its subcommands.
func newRootCommand(deps *cliDeps) *cobra.Command {
	var globalOptions Options
	rootCmd := &cobra.Command{
		Use:     "torbridge",
		Short:   "torbridge runs embedded tor in-process",
		Args:    cobra.NoArgs,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), globalOptions.Verbose)
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{ .Version }}\n")

	flags := rootCmd.PersistentFlags()

	flags.StringVarP(
		&globalOptions.ConfigFile,
		"config",
		"c",
		"",
		"read additional tor tokens from the given HuJSON file",
	)

	flags.StringVarP(
		&globalOptions.DataDir,
		"datadir",
		"d",
		"",
		"create and use the given tor data directory",
	)

	flags.StringArrayVarP(
		&globalOptions.Lines,
		"line",
		"l",
		[]string{},
		"add a torrc-like line such as \"--SocksPort 9050\" (may be specified multiple times)",
	)

	flags.BoolVarP(
		&globalOptions.Verbose,
		"verbose",
		"v",
		false,
		"enable verbose logging",
	)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "args [-- tor tokens...]",
		Short: "Print the command lines the bridge would pass to tor",
		RunE: func(cmd *cobra.Command, args []string) error {
			return argsMain(deps, &globalOptions, args)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "run [-- tor tokens...]",
		Short: "Verify and run tor until it exits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMain(cmd.Context(), deps, &globalOptions, args)
		},
	})

	bootstrapCmd := &cobra.Command{
		Use:   "bootstrap [-- tor tokens...]",
		Short: "Bootstrap tor using github.com/cretz/bine and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrapMain(cmd.Context(), deps, &globalOptions, args)
		},
	}
	bootstrapCmd.Flags().DurationVar(
		&globalOptions.Timeout,
		"timeout",
		3*time.Minute,
		"maximum time to wait for tor to bootstrap",
	)
	rootCmd.AddCommand(bootstrapCmd)

	return rootCmd
}

// argsMain prints the vectors in JSON format without running tor.
func argsMain(deps *cliDeps, opts *Options, positional []string) error {
	tokens, err := buildTokens(opts, positional)
	if err != nil {
		return err
	}
	defer tokens.Close()
	encoder := json.NewEncoder(deps.stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(vectorsFor(tokens.Args))
}

// ensureContext returns ctx or a background context when ctx is nil.
func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
