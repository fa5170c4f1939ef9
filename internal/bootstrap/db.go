package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/dealdesk/crm-backend/config"
	"github.com/dealdesk/crm-backend/internal/storage"
	"github.com/dealdesk/crm-backend/internal/storage/postgres"
)

// SelectBackend decides the storage backing for the process lifetime.
// PostgreSQL is used when DATABASE_URL is set and reachable; schema is
// provisioned and the default user seeded on first connect. Any failure
// degrades to the in-memory backing once, at boot — the decision is never
// revisited per request.
func SelectBackend(ctx context.Context, cfg *config.DatabaseConfig, log *zap.Logger) (storage.Kind, *sql.DB) {
	if cfg.URL == "" {
		log.Info("no DATABASE_URL set, using in-memory storage")
		return storage.KindMemory, nil
	}

	db, err := postgres.Open(ctx, cfg)
	if err != nil {
		log.Warn("database unreachable, degrading to in-memory storage",
			zap.Error(fmt.Errorf("%w: %v", storage.ErrStorageUnavailable, err)))
		return storage.KindMemory, nil
	}

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		db.Close()
		log.Warn("schema provisioning failed, degrading to in-memory storage",
			zap.Error(fmt.Errorf("%w: %v", storage.ErrStorageUnavailable, err)))
		return storage.KindMemory, nil
	}

	log.Info("postgres database connected")
	return storage.KindPostgres, db
}
