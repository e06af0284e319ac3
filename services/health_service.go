package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/feedbackform/feedback-backend/logger"
	"github.com/feedbackform/feedback-backend/types"
)

// Pinger is the narrow health contract every storage backend satisfies
// (pgxpool.Pool directly, the badger and file stores via their Ping methods).
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthService reports service and storage health.
type HealthService struct {
	storage Pinger
	version string
	log     *zap.SugaredLogger
}

// NewHealthService creates a HealthService.
func NewHealthService(storage Pinger, version string) *HealthService {
	return &HealthService{
		storage: storage,
		version: version,
		log:     logger.GetLogger(),
	}
}

// CheckHealth pings the storage backend and shapes the health payload.
func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	status := types.HealthStatusUp
	storage := types.HealthComponent{Status: types.HealthStatusUp}

	if err := h.storage.Ping(ctx); err != nil {
		h.log.Errorw("Storage health check failed", "error", err)
		status = types.HealthStatusDown
		storage = types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "storage connection failed",
		}
	}

	return types.HealthCheck{
		OK:         status == types.HealthStatusUp,
		Status:     status,
		Components: map[string]types.HealthComponent{"storage": storage},
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}
