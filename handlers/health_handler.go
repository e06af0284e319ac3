package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feedbackform/feedback-backend/services"
	"github.com/feedbackform/feedback-backend/types"
)

// HealthHandler serves the health endpoint.
type HealthHandler struct {
	healthService *services.HealthService
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(healthService *services.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// Health handles GET /api/health. It reports 503 when storage is down.
func (h *HealthHandler) Health(c *gin.Context) {
	health := h.healthService.CheckHealth(c.Request.Context())

	status := http.StatusOK
	if health.Status == types.HealthStatusDown {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, health)
}
