package provider

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/zenka/payments/internal/cache"
	"github.com/zenka/payments/internal/config"
)

// New builds the single active provider client named in cfg.
// The cache is optional.
func New(cfg config.ProviderConfig, c cache.Cache, logger *slog.Logger) (Client, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	logger = logger.With("provider", cfg.Name)

	switch cfg.Name {
	case config.ProviderPesaFlux:
		return NewPesaFlux(cfg.PesaFlux, httpClient, logger), nil
	case config.ProviderDaraja:
		return NewDaraja(cfg.Daraja, httpClient, c, logger), nil
	case config.ProviderSwiftPay:
		return NewSwiftPay(cfg.SwiftPay, httpClient, logger), nil
	default:
		return nil, fmt.Errorf("unknown payment provider: %q", cfg.Name)
	}
}

// Ensure concrete types implement Client
var (
	_ Client = (*PesaFlux)(nil)
	_ Client = (*Daraja)(nil)
	_ Client = (*SwiftPay)(nil)
)
