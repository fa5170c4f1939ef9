package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dealdesk/crm-backend/internal/auth"
	clientsrepo "github.com/dealdesk/crm-backend/internal/clients/repository"
)

// Handler serves the client registry endpoints.
type Handler struct {
	clients clientsrepo.Repository
	log     *zap.Logger
}

func New(clients clientsrepo.Repository, log *zap.Logger) *Handler {
	return &Handler{clients: clients, log: log}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.listWithSummary)
	rg.GET("/list", h.listRefs)
}

func (h *Handler) listWithSummary(c *gin.Context) {
	items, err := h.clients.ListWithDealSummary(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.log.Error("list clients failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch clients"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": items})
}

func (h *Handler) listRefs(c *gin.Context) {
	items, err := h.clients.ListRefs(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.log.Error("list client refs failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch client list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": items})
}
