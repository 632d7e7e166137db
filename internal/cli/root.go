package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/healthrec/internal/config"
)

// RootOptions holds global flags for all commands.
// PersistentPreRunE fills it from the merged configuration.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Database string
	Addr     string
}

// configKeys are the flags that map onto config keys of the same name.
var configKeys = []string{"db", "format", "verbose", "addr"}

// NewRootCommand creates the root command for the healthrec CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "healthrec",
		Short: "healthrec - patient health records",
		Long: `Record patient health entries in a local SQLite file, search them by
patient name, and mark them Cured.

Settings come from flags, HEALTHREC_* environment variables, and an
optional healthrec.yaml in the working directory, in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadOptions(opts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Database, "db", config.DefaultDatabase, "path to SQLite database")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", config.DefaultFormat, "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewCureCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// loadOptions merges defaults, config file, environment and flags into
// opts, then installs the process logger.
func loadOptions(opts *RootOptions, cmd *cobra.Command) error {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags(), configKeys...); err != nil {
		return WrapExitError(ExitCommandError, "failed to bind flags", err)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	opts.Database = cfg.Database
	opts.Format = cfg.Format
	opts.Verbose = cfg.Verbose
	opts.Addr = cfg.Addr

	setupLogging(opts.Verbose)
	return nil
}

// setupLogging configures the default slog logger based on the verbose flag.
func setupLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
