package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows any origin and answers preflight requests with an empty 200.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:       []string{"Content-Type", "Authorization", idempotencyKeyHeader},
		ExposedHeaders:       []string{replayedHeader},
		OptionsSuccessStatus: http.StatusOK,
		MaxAge:               300,
	})
}
