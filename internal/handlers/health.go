package handlers

import (
	"context"
	"time"

	"github.com/zenka/payments/internal/api"
)

// GetHealth handles GET /health
func (h *Handler) GetHealth(
	ctx context.Context,
	_ api.GetHealthRequestObject,
) (api.GetHealthResponseObject, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.healthChecker.PingContext(pingCtx); err != nil {
		h.logger.Error("health check failed: database unreachable", "error", err)
		return api.GetHealth503JSONResponse{
			Status: api.HealthResponseStatusUnhealthy,
		}, nil
	}

	return api.GetHealth200JSONResponse{
		Status: api.HealthResponseStatusHealthy,
	}, nil
}
