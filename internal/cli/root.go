// Package cli defines the command-line interface for reviewsync.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/reviewsync/internal/logging"
)

// Options stores global CLI options shared between commands.
type Options struct {
	EnvFile  string
	LogLevel logging.Level
	DryRun   bool
	Once     bool
}

// Execute builds the root command and runs it with the provided args.
func Execute(ctx context.Context, args []string) error {
	opts := &Options{LogLevel: logging.LevelInfo}

	rootCmd := newRootCommand(opts)
	rootCmd.SetArgs(args)

	return rootCmd.ExecuteContext(ctx)
}

// newRootCommand constructs the root cobra.Command with global flags and
// subcommands. Running the root command performs the sync itself.
func newRootCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviewsync",
		Short: "reviewsync mirrors bot review comments into versioned tracking issues",
		Long: "reviewsync reads automated review comments from pull requests in an upstream\n" +
			"GitHub repository and mirrors anything new into versioned tracking issues in a\n" +
			"downstream repository. Reruns are idempotent: unchanged content is skipped.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := logging.ParseLevel(cmd.Flag("log-level").Value.String())
			opts.LogLevel = level
			slog.SetDefault(logging.NewLogger(os.Stderr, level))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "Optional .env file loaded before reading configuration")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Resolve and hash but create no issues and post no comments")
	cmd.Flags().BoolVar(&opts.Once, "once", false, "Run a single pass even when REVIEWSYNC_SYNC_INTERVAL is set")

	cmd.AddCommand(
		newHistoryCommand(opts),
	)

	return cmd
}
