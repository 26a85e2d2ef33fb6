package main

import (
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/conorfennell/preflopdrill/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "preflopdrill",
		Short:         "Build preflop range charts and drill them with spaced repetition",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			setupLogging(cfg.LogLevel)
			return a.open(cfg)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newLibraryCmd(a),
		newRangeCmd(a),
		newDrillCmd(a),
		newGridCmd(a),
		newSourceCmd(a),
		newSyncCmd(a),
		newSRSCmd(a),
	)
	return root
}

func setupLogging(level string) {
	logger := pterm.DefaultLogger.WithLevel(logLevel(level))
	slog.SetDefault(slog.New(pterm.NewSlogHandler(logger)))
}

func logLevel(level string) pterm.LogLevel {
	switch level {
	case "debug":
		return pterm.LogLevelDebug
	case "warn":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	}
	return pterm.LogLevelInfo
}
