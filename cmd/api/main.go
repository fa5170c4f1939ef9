package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/dealdesk/crm-backend/config"
	"github.com/dealdesk/crm-backend/internal/bootstrap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := bootstrap.NewLogger(&cfg.App)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	kind, db := bootstrap.SelectBackend(context.Background(), &cfg.Database, logger)
	if db != nil {
		defer db.Close()
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Config: cfg,
		Logger: logger,
		Kind:   kind,
		DB:     db,
	})

	logger.Info("server starting",
		zap.String("port", cfg.Server.Port),
		zap.String("backend", string(kind)),
		zap.String("env", cfg.App.Environment),
	)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
