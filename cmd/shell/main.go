package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"fsanano/storefront/internal/app"
	"fsanano/storefront/internal/config"
	"fsanano/storefront/internal/logging"
	"fsanano/storefront/internal/shell"
	"fsanano/storefront/internal/telemetry"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:           "storefront-shell",
		Short:         "Browse the storefront, manage the cart and check out from a terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if apiURL != "" {
				cfg.APIURL = apiURL
			}
			return run(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&apiURL, "api-url", "", "backend base URL (overrides STOREFRONT_API_URL)")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer cleanup()

	shutdownTracing, err := telemetry.Init(ctx, "storefront-shell", cfg.TraceStdout, os.Stderr)
	if err != nil {
		return err
	}
	defer shutdownTracing(context.Background())

	shop, closeStore, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	fmt.Fprintln(out, "storefront shell, type help for commands")
	return shell.New(shop, in, out).Run(ctx)
}
