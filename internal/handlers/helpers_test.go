package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zenka/payments/internal/api"
	"github.com/zenka/payments/internal/service"
)

func TestMapServiceErrorToCode(t *testing.T) {
	tests := []struct {
		code     string
		expected api.ErrorCode
		status   int
	}{
		{service.ErrCodeInvalidPhoneNumber, api.ErrorCodeInvalidPhoneNumber, http.StatusBadRequest},
		{service.ErrCodeInvalidAmount, api.ErrorCodeInvalidAmount, http.StatusBadRequest},
		{service.ErrCodeInvalidRequest, api.ErrorCodeInvalidRequest, http.StatusBadRequest},
		{service.ErrCodeUpstreamRejected, api.ErrorCodeUpstreamRejected, http.StatusBadRequest},
		{service.ErrCodeUpstreamMalformed, api.ErrorCodeUpstreamMalformed, http.StatusBadGateway},
		{service.ErrCodeUpstreamUnavailable, api.ErrorCodeUpstreamUnavailable, http.StatusInternalServerError},
		{service.ErrCodeInternalError, api.ErrorCodeInternalError, http.StatusInternalServerError},
		{"something_new", api.ErrorCodeInternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapServiceErrorToCode(tt.code))
			assert.Equal(t, tt.status, statusForCode(tt.code))
		})
	}
}

func TestDescribeError_WrappedServiceError(t *testing.T) {
	handler := NewHandler(nil, nil, nil, testLogger())
	err := fmt.Errorf("initiate: %w", &service.ServiceError{Code: service.ErrCodeInvalidAmount, Message: "Amount cannot be negative"})

	status, body := handler.describeError(err, "payment initiation")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, api.ErrorCodeInvalidAmount, body.Error)
	assert.Equal(t, "Amount cannot be negative", body.Message)
	assert.False(t, body.Success)
}

func TestRequestErrorHandler(t *testing.T) {
	tests := []struct {
		err         error
		name        string
		wantMessage string
	}{
		{
			name:        "undecodable body",
			err:         fmt.Errorf("can't decode JSON body: %w", errors.New("unexpected EOF")),
			wantMessage: "Invalid request body",
		},
		{
			name:        "bad parameter format",
			err:         &api.InvalidParamFormatError{ParamName: "reference", Err: errors.New("bad")},
			wantMessage: "Invalid format for parameter reference",
		},
		{
			name:        "repeated header",
			err:         &api.TooManyValuesForParamError{ParamName: "Idempotency-Key", Count: 2},
			wantMessage: "Invalid format for parameter Idempotency-Key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/initiate-payment", nil)

			requestErrorHandler(testLogger())(rec, req, tt.err)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			body := decodeResponse(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "invalid_request", body["error"])
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}

func TestResponseErrorHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/payment-status", nil)

	responseErrorHandler(testLogger())(rec, req, errors.New("unexpected response type: <nil>"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, "internal_error", body["error"])
	assert.Equal(t, "Internal server error", body["message"])
	assert.NotContains(t, rec.Body.String(), "unexpected response type")
}
