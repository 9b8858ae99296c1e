// Package handlers implements HTTP handlers for the payments API.
package handlers

import (
	"log/slog"

	"github.com/zenka/payments/internal/api"
	"github.com/zenka/payments/internal/service"
)

var _ api.StrictServerInterface = (*Handler)(nil)

// Handler serves the payment, settlement and health endpoints
type Handler struct {
	payments      service.PaymentInitiator
	settlement    service.SettlementHandler
	healthChecker service.HealthChecker
	logger        *slog.Logger
}

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(
	payments service.PaymentInitiator,
	settlement service.SettlementHandler,
	healthChecker service.HealthChecker,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		payments:      payments,
		settlement:    settlement,
		healthChecker: healthChecker,
		logger:        logger,
	}
}
