package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenka/payments/internal/config"
	"github.com/zenka/payments/internal/models"
)

func newTestSwiftPay(t *testing.T, handler http.HandlerFunc) *SwiftPay {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewSwiftPay(config.SwiftPayConfig{
		BaseURL: server.URL,
		APIKey:  "sp-key",
		TillID:  "123456",
	}, &http.Client{Timeout: 5 * time.Second}, discardLogger())
}

func TestSwiftPay_InitiateSTKPush(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantID   string
		status   int
	}{
		{
			name:     "success flag with nested checkout_id",
			status:   http.StatusOK,
			response: `{"success":true,"data":{"checkout_id":"CHK-1","request_id":"REQ-1"}}`,
			wantID:   "CHK-1",
		},
		{
			name:     "status success with nested request_id",
			status:   http.StatusOK,
			response: `{"status":"success","data":{"request_id":"REQ-2","CheckoutRequestID":"ws_CO_2"}}`,
			wantID:   "REQ-2",
		},
		{
			name:     "plain 200 with nested CheckoutRequestID",
			status:   http.StatusOK,
			response: `{"data":{"CheckoutRequestID":"ws_CO_3"}}`,
			wantID:   "ws_CO_3",
		},
		{
			name:     "top level CheckoutRequestID beats checkout_id",
			status:   http.StatusCreated,
			response: `{"CheckoutRequestID":"ws_CO_4","checkout_id":"CHK-4"}`,
			wantID:   "ws_CO_4",
		},
		{
			name:     "top level transaction_request_id",
			status:   http.StatusOK,
			response: `{"success":true,"transaction_request_id":"TRX-5"}`,
			wantID:   "TRX-5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestSwiftPay(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/mpesa/stk-push-api", r.URL.Path)
				assert.Equal(t, "Bearer sp-key", r.Header.Get("Authorization"))

				body := decodeBody(t, r)
				assert.Equal(t, "254712345678", body["phone_number"])
				assert.Equal(t, float64(99), body["amount"])
				assert.Equal(t, "123456", body["till_id"])

				writeJSON(w, tt.status, tt.response)
			})

			result, err := client.InitiateSTKPush(context.Background(), pushRequest())
			require.NoError(t, err)
			assert.True(t, result.Accepted)
			assert.Equal(t, tt.wantID, result.ProviderRequestID)
		})
	}
}

func TestSwiftPay_InitiateSTKPush_Failures(t *testing.T) {
	t.Run("explicit failure flag wins over id", func(t *testing.T) {
		client := newTestSwiftPay(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"success":false,"message":"Till not active","checkout_id":"CHK-1"}`)
		})

		_, err := client.InitiateSTKPush(context.Background(), pushRequest())
		rejected, ok := IsRejected(err)
		require.True(t, ok)
		assert.Equal(t, "Till not active", rejected.Message)
	})

	t.Run("error status without id", func(t *testing.T) {
		client := newTestSwiftPay(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, `{"error":"Invalid API key"}`)
		})

		_, err := client.InitiateSTKPush(context.Background(), pushRequest())
		rejected, ok := IsRejected(err)
		require.True(t, ok)
		assert.Equal(t, "Invalid API key", rejected.Message)
		assert.Equal(t, http.StatusUnauthorized, rejected.StatusCode)
	})

	t.Run("success without any id", func(t *testing.T) {
		client := newTestSwiftPay(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"success":true,"data":{}}`)
		})

		_, err := client.InitiateSTKPush(context.Background(), pushRequest())
		assert.True(t, errors.Is(err, ErrUpstreamMalformed))
	})

	t.Run("html error page", func(t *testing.T) {
		client := newTestSwiftPay(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("<h1>Service Unavailable</h1>"))
		})

		_, err := client.InitiateSTKPush(context.Background(), pushRequest())
		assert.True(t, errors.Is(err, ErrUpstreamMalformed))
	})
}

func TestSwiftPay_QueryStatus(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		wantStatus  models.TransactionStatus
		wantReceipt string
		wantCode    *int
	}{
		{
			name:        "success",
			response:    `{"success":true,"payment":{"status":"success","receipt":"QKX123","resultCode":0,"resultDesc":"Success"}}`,
			wantStatus:  models.TransactionStatusSuccess,
			wantReceipt: "QKX123",
			wantCode:    ptr(0),
		},
		{
			name:       "failed ignores receipt",
			response:   `{"success":true,"payment":{"status":"failed","receipt":"IGNORED","resultCode":"1037","resultDesc":"DS timeout user cannot be reached"}}`,
			wantStatus: models.TransactionStatusFailed,
			wantCode:   ptr(1037),
		},
		{
			name:       "missing status defaults to pending",
			response:   `{"success":true,"payment":{}}`,
			wantStatus: models.TransactionStatusPending,
		},
		{
			name:       "missing payment defaults to pending",
			response:   `{"success":true}`,
			wantStatus: models.TransactionStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestSwiftPay(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/mpesa-verification-proxy", r.URL.Path)
				body := decodeBody(t, r)
				assert.Equal(t, "CHK-1", body["checkoutId"])
				assert.Equal(t, "sp-key", body["apiKey"])
				writeJSON(w, http.StatusOK, tt.response)
			})

			result, err := client.QueryStatus(context.Background(), "CHK-1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantReceipt, result.Receipt)
			assert.Equal(t, tt.wantCode, result.ResultCode)
		})
	}
}
