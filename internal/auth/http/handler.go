package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dealdesk/crm-backend/internal/auth"
	"github.com/dealdesk/crm-backend/internal/users/domain"
	usersrepo "github.com/dealdesk/crm-backend/internal/users/repository"
)

// Handler serves login, logout and token verification.
type Handler struct {
	users  usersrepo.Repository
	secret string
	ttl    time.Duration
	log    *zap.Logger
}

func New(users usersrepo.Repository, secret string, ttl time.Duration, log *zap.Logger) *Handler {
	return &Handler{users: users, secret: secret, ttl: ttl, log: log}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/login", h.login)
	rg.POST("/logout", h.logout)
	rg.GET("/verify", h.verify)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		// Unknown email reads the same as a bad password to the caller.
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidCredentials.Error()})
			return
		}
		h.log.Error("login lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidCredentials.Error()})
		return
	}

	token, err := auth.SignToken(h.secret, user.ID, user.Email, h.ttl)
	if err != nil {
		h.log.Error("token signing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	h.log.Info("login successful", zap.String("email", user.Email))
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

func (h *Handler) logout(c *gin.Context) {
	// Tokens are stateless; logout is an acknowledgement for the client to
	// drop its copy.
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (h *Handler) verify(c *gin.Context) {
	token := auth.ExtractToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}

	claims, err := auth.ParseToken(h.secret, token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "user_id": claims.UserID, "email": claims.Email})
}
