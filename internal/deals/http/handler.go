package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dealdesk/crm-backend/internal/auth"
	clientsdomain "github.com/dealdesk/crm-backend/internal/clients/domain"
	"github.com/dealdesk/crm-backend/internal/deals/domain"
	dealsrepo "github.com/dealdesk/crm-backend/internal/deals/repository"
)

// Handler serves the deal lifecycle endpoints: the staging list and
// promotion, plus the legacy direct-creation path under /clients/deals.
type Handler struct {
	deals dealsrepo.Repository
	log   *zap.Logger
}

func New(deals dealsrepo.Repository, log *zap.Logger) *Handler {
	return &Handler{deals: deals, log: log}
}

// RegisterStaging attaches the staging routes.
func (h *Handler) RegisterStaging(rg *gin.RouterGroup) {
	rg.GET("", h.listStaging)
	rg.POST("", h.createStaging)
	rg.POST("/:id/complete", h.promote)
}

// RegisterLegacy attaches the legacy create-deal route to the clients group.
func (h *Handler) RegisterLegacy(rg *gin.RouterGroup) {
	rg.POST("/deals", h.createDeal)
}

func (h *Handler) listStaging(c *gin.Context) {
	items, err := h.deals.ListStaging(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.log.Error("list staging deals failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch staging deals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deals": items})
}

type createStagingReq struct {
	ClientName    string `json:"clientName"`
	ClientEmail   string `json:"clientEmail"`
	ClientPhone   string `json:"clientPhone"`
	ClientCompany string `json:"clientCompany"`
	DealTitle     string `json:"dealTitle"`
	DealNotes     string `json:"dealNotes"`
}

func (h *Handler) createStaging(c *gin.Context) {
	var req createStagingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	deal, err := h.deals.CreateStaging(c.Request.Context(), auth.UserID(c), domain.CreateStagingRequest{
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientPhone:   req.ClientPhone,
		ClientCompany: req.ClientCompany,
		DealTitle:     req.DealTitle,
		DealNotes:     req.DealNotes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrClientNameRequired) || errors.Is(err, domain.ErrDealTitleRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("create staging deal failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create staging deal"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Staging deal created successfully", "deal": deal})
}

func (h *Handler) promote(c *gin.Context) {
	stagingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staging deal id"})
		return
	}

	deal, err := h.deals.Promote(c.Request.Context(), auth.UserID(c), stagingID)
	if err != nil {
		if errors.Is(err, domain.ErrStagingDealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "staging deal not found"})
			return
		}
		h.log.Error("promote staging deal failed", zap.Int64("staging_id", stagingID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete deal"})
		return
	}

	h.log.Info("staging deal promoted", zap.Int64("staging_id", stagingID), zap.Int64("deal_id", deal.ID))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Deal completed successfully"})
}

type createDealReq struct {
	ClientID      *int64   `json:"clientId"`
	ClientName    string   `json:"clientName"`
	ClientEmail   string   `json:"clientEmail"`
	ClientPhone   string   `json:"clientPhone"`
	ClientCompany string   `json:"clientCompany"`
	DealTitle     string   `json:"dealTitle"`
	DealValue     *float64 `json:"dealValue"`
	DealStatus    string   `json:"dealStatus"`
	DealNotes     string   `json:"dealNotes"`
}

func (h *Handler) createDeal(c *gin.Context) {
	var req createDealReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	// Older client revisions send prospect/negotiating/closed; normalize to
	// the canonical statuses before anything is stored.
	status, err := domain.NormalizeStatus(req.DealStatus)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deal status"})
		return
	}

	deal, err := h.deals.CreateDeal(c.Request.Context(), auth.UserID(c), domain.CreateDealRequest{
		ClientID:      req.ClientID,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientPhone:   req.ClientPhone,
		ClientCompany: req.ClientCompany,
		DealTitle:     req.DealTitle,
		DealValue:     req.DealValue,
		DealStatus:    status,
		DealNotes:     req.DealNotes,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDealTitleRequired), errors.Is(err, domain.ErrClientNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, clientsdomain.ErrClientNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		default:
			h.log.Error("create deal failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create deal"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Deal created successfully", "deal": deal})
}
