package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/muscat-guide/places-cli/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Manifest.Driver {
	case "sqlite":
		dsn := cfg.Manifest.DatabaseURL
		if dsn == "" {
			dsn = "manifest.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Manifest.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported manifest driver: %s", cfg.Manifest.Driver)
	}
}
