package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/healthrec/internal/config"
	"github.com/roach88/healthrec/internal/web"
)

// shutdownTimeout bounds how long serve waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Open the record window",
		Long: `Serve the record window on a local address.

The window has an input section (name, code, details, Add), a search
section, the results grid, and a "Mark Selected as Cured" button.

Example:
  healthrec serve
  healthrec serve --addr 127.0.0.1:9000 --db ./clinic.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(rootOpts, cmd)
		},
	}

	cmd.Flags().StringVar(&rootOpts.Addr, "addr", config.DefaultAddr, "listen address")

	return cmd
}

func runServe(opts *RootOptions, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.close()
	slog.Info("database ready", "path", opts.Database, "session", s.form.Session())

	srv, err := web.New(s.form)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build window", err)
	}

	// Setup signal handling for graceful shutdown
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
			// Parent context cancelled (e.g., from test)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(opts.Addr)
	}()

	slog.Info("window serving", "addr", opts.Addr)
	fmt.Fprintf(cmd.OutOrStdout(), "Window open at http://%s/\n", opts.Addr)
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl-C to stop.")

	select {
	case err := <-errCh:
		if err != nil {
			return WrapExitError(ExitCommandError, "window server failed", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return WrapExitError(ExitFailure, "shutdown error", err)
	}
	if err := <-errCh; err != nil {
		return WrapExitError(ExitCommandError, "window server failed", err)
	}

	slog.Info("window closed")
	return nil
}
