// Package middleware provides HTTP middleware components for the payments API.
package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/zenka/payments/internal/cache"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "X-Idempotent-Replayed"

	// IdempotencyTTL is how long a successful response can be replayed.
	IdempotencyTTL = 24 * time.Hour
)

// idempotentPaths lists the POST endpoints that honour Idempotency-Key.
// Requests without the header are never deduplicated.
var idempotentPaths = []string{
	"/api/initiate-payment",
}

type cachedResponse struct {
	Body       string `json:"body"`
	StatusCode int    `json:"status_code"`
}

type responseCapture struct {
	http.ResponseWriter
	body       bytes.Buffer
	statusCode int
}

func newResponseCapture(w http.ResponseWriter) *responseCapture {
	return &responseCapture{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // Default if WriteHeader not called
	}
}

func (rc *responseCapture) WriteHeader(code int) {
	rc.statusCode = code
	rc.ResponseWriter.WriteHeader(code)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	rc.body.Write(b)
	return rc.ResponseWriter.Write(b)
}

// Idempotency replays cached 2xx responses for repeated Idempotency-Key values.
// A nil cache disables the middleware.
func Idempotency(c cache.Cache, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if c == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idempotencyKey := r.Header.Get(idempotencyKeyHeader)
			if idempotencyKey == "" || !requiresIdempotency(r) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			key := c.GenerateKey("idempotency", normalizeRequestPath(r.URL.Path)+":"+idempotencyKey)

			raw, err := c.Get(ctx, key)
			if err != nil {
				logger.Error("failed to check idempotency cache", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if raw != "" {
				var cached cachedResponse
				if err := json.Unmarshal([]byte(raw), &cached); err == nil {
					logger.Debug("returning cached idempotent response",
						"key", idempotencyKey,
						"status", cached.StatusCode,
					)
					w.Header().Set("Content-Type", "application/json")
					w.Header().Set(replayedHeader, "true")
					w.WriteHeader(cached.StatusCode)
					_, _ = w.Write([]byte(cached.Body))
					return
				}
				logger.Warn("discarding unreadable idempotency entry", "key", idempotencyKey)
			}

			capture := newResponseCapture(w)
			next.ServeHTTP(capture, r)

			if !shouldCacheResponse(capture.statusCode) {
				return
			}

			payload, err := json.Marshal(cachedResponse{StatusCode: capture.statusCode, Body: capture.body.String()})
			if err != nil {
				logger.Error("failed to encode idempotent response", "error", err)
				return
			}
			if err := c.Set(ctx, key, payload, IdempotencyTTL); err != nil {
				logger.Error("failed to store idempotency key",
					"error", err,
					"key", idempotencyKey,
				)
			}
		})
	}
}

func requiresIdempotency(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}

	path := normalizeRequestPath(r.URL.Path)
	for _, p := range idempotentPaths {
		if path == p {
			return true
		}
	}
	return false
}

func normalizeRequestPath(urlPath string) string {
	return strings.TrimSuffix(urlPath, "/")
}

func shouldCacheResponse(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
