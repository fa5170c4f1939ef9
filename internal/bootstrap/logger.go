package bootstrap

import (
	"go.uber.org/zap"

	"github.com/dealdesk/crm-backend/config"
)

// NewLogger builds the process logger: human-readable in development,
// JSON in production.
func NewLogger(cfg *config.AppConfig) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
