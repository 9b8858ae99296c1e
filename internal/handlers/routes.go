package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/zenka/payments/internal/api"
	"github.com/zenka/payments/internal/cache"
	"github.com/zenka/payments/internal/config"
	"github.com/zenka/payments/internal/db"
	"github.com/zenka/payments/internal/events"
	"github.com/zenka/payments/internal/middleware"
	"github.com/zenka/payments/internal/provider"
	"github.com/zenka/payments/internal/repository"
	"github.com/zenka/payments/internal/service"
)

// Dependencies are the collaborators the router wires into services.
// Cache and Publisher are optional.
type Dependencies struct {
	DB        *db.DB
	Provider  provider.Client
	Cache     cache.Cache
	Publisher events.Publisher
}

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(deps Dependencies, cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	txRepo := repository.NewTransactionRepository(deps.DB)
	paymentService := service.NewPaymentService(deps.Provider, txRepo, cfg.Payment, logger)
	settlementService := service.NewSettlementService(deps.Provider, txRepo, deps.Publisher, logger)

	handler := NewHandler(paymentService, settlementService, deps.DB, logger)
	return handler.Routes(deps.Cache, logger)
}

// Routes mounts the handler's endpoints behind the shared middleware stack.
func (h *Handler) Routes(c cache.Cache, logger *slog.Logger) (http.Handler, error) {
	validate, err := api.RequestValidator(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build request validator: %w", err)
	}

	strictHandler := api.NewStrictHandlerWithOptions(h, nil, api.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  requestErrorHandler(logger),
		ResponseErrorHandlerFunc: responseErrorHandler(logger),
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS())

	api.RegisterDocsRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(chimw.RequestSize(maxBodyBytes))
		r.Use(middleware.Idempotency(c, logger))
		r.Use(validate)

		api.HandlerWithOptions(strictHandler, api.ChiServerOptions{
			BaseRouter:       r,
			ErrorHandlerFunc: requestErrorHandler(logger),
		})
	})

	return r, nil
}
