package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fsanano/storefront/internal/app"
	"fsanano/storefront/internal/config"
	"fsanano/storefront/internal/handler"
	"fsanano/storefront/internal/logging"
	"fsanano/storefront/internal/telemetry"

	"golang.org/x/sync/errgroup"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, "storefront-http", cfg.TraceStdout, os.Stdout)
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		return
	}
	defer shutdownTracing(context.Background())

	// 2. Setup Logic
	shop, closeStore, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build storefront", "error", err)
		return
	}
	defer closeStore()

	h := handler.NewHandler(shop, logger)

	// 3. Setup Server
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: h,
	}

	// 4. Run Server with Graceful Shutdown
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting storefront", "port", cfg.ServerPort, "api_url", cfg.APIURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		// Create a deadline to wait for.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
		return
	}
	logger.Info("server exiting")
}
