// Package app assembles the storefront from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"fsanano/storefront/internal/config"
	"fsanano/storefront/internal/repository"
	"fsanano/storefront/internal/service"
	"fsanano/storefront/internal/service/storeapi"
)

// New opens the session store and builds the storefront controller. Callers
// must call the returned close func when done.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*service.Storefront, func() error, error) {
	kv, err := repository.OpenStore(ctx, repository.StoreConfig{
		Kind:        cfg.Session.Store,
		SQLitePath:  cfg.Session.SQLitePath,
		DatabaseURL: cfg.Session.DatabaseURL,
		RedisURL:    cfg.Session.RedisURL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session store: %w", err)
	}
	logger.Info("session store ready", "store", cfg.Session.Store)

	client := storeapi.NewClient(storeapi.Config{
		APIURL:  cfg.APIURL,
		Timeout: cfg.APITimeout,
	})

	shop := service.NewStorefront(client, repository.NewSessionRepository(kv), logger)
	return shop, kv.Close, nil
}
