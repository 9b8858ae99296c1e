package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenka/payments/internal/cache"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCache(t *testing.T) (*miniredis.Miniredis, cache.Cache) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, cache.NewFromClient(client, "payments")
}

// countingHandler responds with an incrementing body so replays are detectable.
func countingHandler(status int) (http.Handler, *int) {
	calls := 0
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"call":` + strconv.Itoa(calls) + `}`))
	}), &calls
}

func post(path, key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"phoneNumber":"0712345678"}`))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	return req
}

func TestIdempotency_ReplaysSuccessfulResponse(t *testing.T) {
	mr, c := testCache(t)
	handler, calls := countingHandler(http.StatusOK)
	wrapped := Idempotency(c, testLogger())(handler)

	first := httptest.NewRecorder()
	wrapped.ServeHTTP(first, post("/api/initiate-payment", "key-1"))

	second := httptest.NewRecorder()
	wrapped.ServeHTTP(second, post("/api/initiate-payment", "key-1"))

	assert.Equal(t, 1, *calls, "handler should run once")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotent-Replayed"))
	assert.Empty(t, first.Header().Get("X-Idempotent-Replayed"))

	ttl := mr.TTL("payments:idempotency:/api/initiate-payment:key-1")
	assert.Equal(t, 24*time.Hour, ttl)
}

func TestIdempotency_DifferentKeysAreIndependent(t *testing.T) {
	_, c := testCache(t)
	handler, calls := countingHandler(http.StatusOK)
	wrapped := Idempotency(c, testLogger())(handler)

	wrapped.ServeHTTP(httptest.NewRecorder(), post("/api/initiate-payment", "key-1"))
	wrapped.ServeHTTP(httptest.NewRecorder(), post("/api/initiate-payment", "key-2"))

	assert.Equal(t, 2, *calls)
}

func TestIdempotency_MissingKeyPassesThrough(t *testing.T) {
	_, c := testCache(t)
	handler, calls := countingHandler(http.StatusOK)
	wrapped := Idempotency(c, testLogger())(handler)

	wrapped.ServeHTTP(httptest.NewRecorder(), post("/api/initiate-payment", ""))
	wrapped.ServeHTTP(httptest.NewRecorder(), post("/api/initiate-payment", ""))

	assert.Equal(t, 2, *calls, "duplicates without a key are independent")
}

func TestIdempotency_ErrorsAreNotCached(t *testing.T) {
	_, c := testCache(t)
	handler, calls := countingHandler(http.StatusBadGateway)
	wrapped := Idempotency(c, testLogger())(handler)

	wrapped.ServeHTTP(httptest.NewRecorder(), post("/api/initiate-payment", "key-1"))
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, post("/api/initiate-payment", "key-1"))

	assert.Equal(t, 2, *calls)
	assert.Empty(t, rec.Header().Get("X-Idempotent-Replayed"))
}

func TestIdempotency_OtherRoutesBypassed(t *testing.T) {
	_, c := testCache(t)
	handler, calls := countingHandler(http.StatusOK)
	wrapped := Idempotency(c, testLogger())(handler)

	wrapped.ServeHTTP(httptest.NewRecorder(), post("/api/mpesa-callback", "key-1"))
	wrapped.ServeHTTP(httptest.NewRecorder(), post("/api/mpesa-callback", "key-1"))

	get := httptest.NewRequest(http.MethodGet, "/api/initiate-payment", nil)
	get.Header.Set("Idempotency-Key", "key-1")
	wrapped.ServeHTTP(httptest.NewRecorder(), get)

	assert.Equal(t, 3, *calls)
}

func TestIdempotency_CacheFailureFallsThrough(t *testing.T) {
	mr, c := testCache(t)
	handler, calls := countingHandler(http.StatusOK)
	wrapped := Idempotency(c, testLogger())(handler)
	mr.Close()

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, post("/api/initiate-payment", "key-1"))

	assert.Equal(t, 1, *calls)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIdempotency_NilCacheDisabled(t *testing.T) {
	handler, calls := countingHandler(http.StatusOK)
	wrapped := Idempotency(nil, testLogger())(handler)

	wrapped.ServeHTTP(httptest.NewRecorder(), post("/api/initiate-payment", "key-1"))
	wrapped.ServeHTTP(httptest.NewRecorder(), post("/api/initiate-payment", "key-1"))

	require.Equal(t, 2, *calls)
}
