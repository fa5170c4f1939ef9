package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck_MemoryBacking(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	h := NewHealthHandler("crm-backend", "1.0.0", "memory", nil)
	h.RegisterRoutes(r)

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "crm-backend", resp.Service)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Equal(t, "memory", resp.Backend)
	assert.Equal(t, "disabled", resp.DB)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestHealthCheck_AliasRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	h := NewHealthHandler("crm-backend", "1.0.0", "memory", nil)
	h.RegisterRoutes(r)

	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
