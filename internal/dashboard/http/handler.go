package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dealdesk/crm-backend/internal/auth"
	"github.com/dealdesk/crm-backend/internal/dashboard/domain"
	"github.com/dealdesk/crm-backend/internal/dashboard/service"
)

type Handler struct {
	svc *service.Service
	log *zap.Logger
}

func New(svc *service.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/deals-data/:timeframe", h.dealsData)
}

func (h *Handler) dealsData(c *gin.Context) {
	tf, err := domain.ParseTimeframe(c.Param("timeframe"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timeframe"})
		return
	}

	buckets, err := h.svc.BucketedCounts(c.Request.Context(), auth.UserID(c), tf)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTimeframe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timeframe"})
			return
		}
		h.log.Error("dashboard data failed", zap.String("timeframe", string(tf)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch dashboard data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": buckets})
}
