// Package commands implements the networth command line interface.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rpgo/networth-projection/internal/buildinfo"
	"github.com/rpgo/networth-projection/internal/logging"
)

type rootOptions struct {
	logLevel string
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	return logging.NewLogger(o.logLevel, cmd.ErrOrStderr())
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:     "networth",
		Short:   "Monte Carlo net worth projections",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: error, warn, info, debug or trace")

	rootCmd.AddCommand(
		newProjectCommand(opts),
		newDemoCommand(opts),
		newInitCommand(),
		newServeCommand(opts),
		newHistoryCommand(),
	)

	return rootCmd
}
