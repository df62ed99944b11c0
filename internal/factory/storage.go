package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cakeshelf/cakeshelf/internal/config"
	"github.com/cakeshelf/cakeshelf/internal/store"
	"github.com/cakeshelf/cakeshelf/internal/store/postgres"
	"github.com/cakeshelf/cakeshelf/internal/store/sqlite"
)

// NewStore constructs the configured store adapter, applies the schema, and
// returns a close function for shutdown.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, func() error, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info().Str("driver", "postgres").Msg("store initialized")
		return postgres.NewWithDB(db), db.Close, nil

	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := sqlite.EnsureSchema(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info().Str("driver", "sqlite").Str("path", cfg.SQLitePath).Msg("store initialized")
		return sqlite.NewWithDB(db), db.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
}
