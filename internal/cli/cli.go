package cli

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Magic variables set by the release build.
var (
	version = "dev"
	commit  = ""
)

func SetVersion(v, c string) {
	if v != "" {
		version = v
	}
	commit = c
}

var (
	debug   bool
	verbose bool
)

func Cmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "intellitip",
		Short: "Documentation tooltips for the identifier under the cursor",
		Long: `intellitip looks up the function or method under the cursor in a
per-language JSON documentation database and renders a tooltip with its
signature, description, parameters and a link to the full docs.

Editors talk to it as a language server (intellitip start); lookups can also
be run from the command line (intellitip lookup).`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	addResourceFlags(rootCmd.PersistentFlags())

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if debug {
			logLevel.SetLevel(zapcore.DebugLevel)
		} else if verbose {
			logLevel.SetLevel(zapcore.InfoLevel)
		}
	}

	addCommand(rootCmd, &startCmd{})
	addCommand(rootCmd, &lookupCmd{})
	addCommand(rootCmd, &languagesCmd{})
	addCommand(rootCmd, &doctorCmd{})

	return rootCmd
}

func Execute() {
	logger, cleanup := NewLogger()
	defer cleanup()

	ctx := protocol.WithLogger(context.Background(), logger)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	setupSignalHandler(cancel)

	err := Cmd().ExecuteContext(ctx)
	if err != nil {
		if !isCobraError(err) {
			logger.Debug("command failed", zap.Error(err))
		}
		cleanup()
		os.Exit(1)
	}
}

type intellitipCmd interface {
	register() *cobra.Command
	run(ctx context.Context, args []string) error
}

func addCommand(parent *cobra.Command, child intellitipCmd) {
	cobraChild := child.register()
	cobraChild.RunE = func(cmd *cobra.Command, args []string) error {
		return child.run(cmd.Context(), args)
	}
	parent.AddCommand(cobraChild)
}

func setupSignalHandler(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for sig := range c {
			if sig == os.Interrupt {
				cancel()
				os.Exit(0)
			}
		}
	}()
}

func isCobraError(err error) bool {
	// Cobra doesn't give us a good way to distinguish between Cobra errors
	// (e.g. invalid command/args) and app errors.
	msg := err.Error()
	return strings.Contains(msg, "unknown flag") ||
		strings.Contains(msg, "unknown command") ||
		strings.Contains(msg, "unknown shorthand flag")
}
