package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dealdesk/crm-backend/internal/storage"
)

// Wiper clears every record and re-seeds the default user.
type Wiper interface {
	ClearAll(ctx context.Context) error
}

// Handler serves the administrative side channel. Clearing data is only
// reachable when the postgres backing is active; that flag is the full extent
// of the deployment guard.
type Handler struct {
	kind        storage.Kind
	wiper       Wiper
	environment string
	log         *zap.Logger
}

func New(kind storage.Kind, wiper Wiper, environment string, log *zap.Logger) *Handler {
	return &Handler{kind: kind, wiper: wiper, environment: environment, log: log}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/clear-data", h.clearData)
	rg.GET("/db-info", h.dbInfo)
}

func (h *Handler) clearData(c *gin.Context) {
	if h.kind != storage.KindPostgres {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":       "no database connection available",
			"environment": h.environment,
		})
		return
	}

	if err := h.wiper.ClearAll(c.Request.Context()); err != nil {
		h.log.Error("clear data failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear data"})
		return
	}

	h.log.Warn("all data cleared, default user re-seeded")
	c.JSON(http.StatusOK, gin.H{"message": "All data cleared successfully. Default admin user recreated."})
}

func (h *Handler) dbInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"usingDatabase": h.kind == storage.KindPostgres,
		"backend":       string(h.kind),
		"environment":   h.environment,
	})
}
