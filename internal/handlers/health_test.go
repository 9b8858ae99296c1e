package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zenka/payments/internal/api"
	"github.com/zenka/payments/internal/service/mocks"
)

func TestGetHealth(t *testing.T) {
	tests := []struct {
		pingErr        error
		name           string
		expectedBody   string
		expectedStatus int
	}{
		{name: "database reachable", expectedStatus: http.StatusOK, expectedBody: `{"status":"healthy"}`},
		{name: "database down", pingErr: errors.New("dial tcp: refused"), expectedStatus: http.StatusServiceUnavailable, expectedBody: `{"status":"unhealthy"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := mocks.NewMockHealthChecker(t)
			checker.On("PingContext", mock.Anything).Return(tt.pingErr)
			handler := NewHandler(nil, nil, checker, testLogger())

			resp, err := handler.GetHealth(context.Background(), api.GetHealthRequestObject{})
			require.NoError(t, err)

			rec := httptest.NewRecorder()
			require.NoError(t, resp.VisitGetHealthResponse(rec))
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}
