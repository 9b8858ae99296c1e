package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zenka/payments/internal/config"
	"github.com/zenka/payments/internal/models"
	"github.com/zenka/payments/internal/provider"
	providermocks "github.com/zenka/payments/internal/provider/mocks"
	"github.com/zenka/payments/internal/repository/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPaymentConfig() config.PaymentConfig {
	return config.PaymentConfig{
		CallbackURL:        "https://pay.example.com/api/mpesa-callback",
		ReferencePrefix:    "ZENKA",
		DefaultDescription: "Loan Processing Fee",
		DefaultLoanAmount:  5000,
	}
}

func newTestPaymentService(t *testing.T) (*PaymentService, *providermocks.MockClient, *mocks.MockTransactionRepository) {
	t.Helper()

	client := providermocks.NewMockClient(t)
	client.On("Name").Return("pesaflux").Maybe()
	txRepo := mocks.NewMockTransactionRepository(t)

	svc := NewPaymentService(client, txRepo, testPaymentConfig(), testLogger())
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	svc.suffix = func() int { return 42 }

	return svc, client, txRepo
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func amountIs(want string) any {
	return mock.MatchedBy(func(req provider.STKPushRequest) bool {
		return req.Amount.Equal(decimal.RequireFromString(want))
	})
}

func TestPaymentService_InitiatePayment_Success(t *testing.T) {
	svc, client, txRepo := newTestPaymentService(t)
	ctx := context.Background()

	client.On("InitiateSTKPush", ctx, mock.MatchedBy(func(req provider.STKPushRequest) bool {
		return req.Amount.Equal(decimal.NewFromInt(99)) &&
			req.PhoneNumber == "254712345678" &&
			req.Reference == "ZENKA-1700000000000-42" &&
			req.Description == "Loan Processing Fee" &&
			req.CallbackURL == "https://pay.example.com/api/mpesa-callback"
	})).Return(&provider.STKPushResult{Accepted: true, ProviderRequestID: "TRX-1"}, nil).Once()

	txRepo.On("Create", ctx, mock.MatchedBy(func(tx *models.Transaction) bool {
		return tx.TransactionRequestID == "TRX-1" &&
			tx.Status == models.TransactionStatusPending &&
			tx.PhoneNumber == "254712345678" &&
			tx.Reference == "ZENKA-1700000000000-42" &&
			tx.Amount.Equal(decimal.NewFromInt(99))
	})).Return(nil).Once()

	result, err := svc.InitiatePayment(ctx, InitiateRequest{PhoneNumber: "0712345678"})
	require.NoError(t, err)

	assert.Equal(t, "TRX-1", result.ProviderRequestID)
	assert.Equal(t, "ZENKA-1700000000000-42", result.Reference)
	assert.Equal(t, "254712345678", result.PhoneNumber)
	assert.Equal(t, "Payment initiated successfully", result.Message)
	assert.True(t, decimal.NewFromInt(99).Equal(result.Amount))
}

func TestPaymentService_InitiatePayment_AmountResolution(t *testing.T) {
	tests := []struct {
		req        InitiateRequest
		name       string
		wantAmount string
	}{
		{name: "explicit amount wins", req: InitiateRequest{Amount: decPtr("250"), LoanAmount: decPtr("20000")}, wantAmount: "250"},
		{name: "fee of loan amount", req: InitiateRequest{LoanAmount: decPtr("5001")}, wantAmount: "135"},
		{name: "zero amount falls back to fee", req: InitiateRequest{Amount: decPtr("0"), LoanAmount: decPtr("26000")}, wantAmount: "350"},
		{name: "default loan amount", req: InitiateRequest{}, wantAmount: "99"},
		{name: "zero loan amount uses default", req: InitiateRequest{LoanAmount: decPtr("0")}, wantAmount: "99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, client, txRepo := newTestPaymentService(t)

			client.On("InitiateSTKPush", mock.Anything, amountIs(tt.wantAmount)).
				Return(&provider.STKPushResult{Accepted: true, ProviderRequestID: "TRX-1"}, nil).Once()
			txRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

			req := tt.req
			req.PhoneNumber = "+254712345678"

			result, err := svc.InitiatePayment(context.Background(), req)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.wantAmount).Equal(result.Amount))
		})
	}
}

func TestPaymentService_InitiatePayment_CustomDescription(t *testing.T) {
	svc, client, txRepo := newTestPaymentService(t)

	client.On("InitiateSTKPush", mock.Anything, mock.MatchedBy(func(req provider.STKPushRequest) bool {
		return req.Description == "Withdrawal Fee"
	})).Return(&provider.STKPushResult{Accepted: true, ProviderRequestID: "TRX-1"}, nil).Once()
	txRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := svc.InitiatePayment(context.Background(), InitiateRequest{PhoneNumber: "0712345678", Description: "Withdrawal Fee"})
	require.NoError(t, err)
}

func TestPaymentService_InitiatePayment_InvalidInput(t *testing.T) {
	tests := []struct {
		req      InitiateRequest
		name     string
		wantCode string
	}{
		{name: "missing phone", req: InitiateRequest{}, wantCode: ErrCodeInvalidPhoneNumber},
		{name: "blank phone", req: InitiateRequest{PhoneNumber: "   "}, wantCode: ErrCodeInvalidPhoneNumber},
		{name: "bad phone", req: InitiateRequest{PhoneNumber: "12345"}, wantCode: ErrCodeInvalidPhoneNumber},
		{name: "negative amount", req: InitiateRequest{PhoneNumber: "0712345678", Amount: decPtr("-5")}, wantCode: ErrCodeInvalidAmount},
		{name: "negative loan amount", req: InitiateRequest{PhoneNumber: "0712345678", LoanAmount: decPtr("-5000")}, wantCode: ErrCodeInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, client, _ := newTestPaymentService(t)

			_, err := svc.InitiatePayment(context.Background(), tt.req)

			var svcErr *ServiceError
			require.True(t, errors.As(err, &svcErr))
			assert.Equal(t, tt.wantCode, svcErr.Code)
			client.AssertNotCalled(t, "InitiateSTKPush", mock.Anything, mock.Anything)
		})
	}
}

func TestPaymentService_InitiatePayment_ProviderFailures(t *testing.T) {
	tests := []struct {
		providerErr error
		name        string
		wantCode    string
		wantMessage string
	}{
		{
			name:        "rejected",
			providerErr: &provider.RejectedError{Provider: "pesaflux", StatusCode: 200, Message: "Invalid phone number"},
			wantCode:    ErrCodeUpstreamRejected,
			wantMessage: "Invalid phone number",
		},
		{
			name:        "malformed",
			providerErr: provider.ErrUpstreamMalformed,
			wantCode:    ErrCodeUpstreamMalformed,
			wantMessage: "Invalid response from payment service",
		},
		{
			name:        "unavailable",
			providerErr: provider.ErrUpstreamUnavailable,
			wantCode:    ErrCodeUpstreamUnavailable,
			wantMessage: "Payment service unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, client, txRepo := newTestPaymentService(t)

			client.On("InitiateSTKPush", mock.Anything, mock.Anything).Return(nil, tt.providerErr).Once()

			_, err := svc.InitiatePayment(context.Background(), InitiateRequest{PhoneNumber: "0712345678"})

			var svcErr *ServiceError
			require.True(t, errors.As(err, &svcErr))
			assert.Equal(t, tt.wantCode, svcErr.Code)
			assert.Equal(t, tt.wantMessage, svcErr.Message)
			txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestPaymentService_InitiatePayment_PersistenceFailureStillSucceeds(t *testing.T) {
	svc, client, txRepo := newTestPaymentService(t)

	client.On("InitiateSTKPush", mock.Anything, mock.Anything).
		Return(&provider.STKPushResult{Accepted: true, ProviderRequestID: "TRX-9"}, nil).Once()
	txRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

	result, err := svc.InitiatePayment(context.Background(), InitiateRequest{PhoneNumber: "0712345678"})
	require.NoError(t, err)
	assert.Equal(t, "TRX-9", result.ProviderRequestID)
}

func TestPaymentService_InitiatePayment_ReusedProviderIDIsLoggedDistinctly(t *testing.T) {
	svc, client, txRepo := newTestPaymentService(t)
	var logs bytes.Buffer
	svc.logger = slog.New(slog.NewJSONHandler(&logs, nil))

	client.On("InitiateSTKPush", mock.Anything, mock.Anything).
		Return(&provider.STKPushResult{Accepted: true, ProviderRequestID: "TRX-9"}, nil).Once()
	txRepo.On("Create", mock.Anything, mock.Anything).
		Return(fmt.Errorf("transaction_request_id TRX-9: %w", models.ErrDuplicateTransaction)).Once()

	result, err := svc.InitiatePayment(context.Background(), InitiateRequest{PhoneNumber: "0712345678"})
	require.NoError(t, err)
	assert.Equal(t, "TRX-9", result.ProviderRequestID)
	assert.Contains(t, logs.String(), "provider reused a transaction request id")
	assert.NotContains(t, logs.String(), "persistence failure")
}

func TestPaymentService_InitiatePayment_IndependentDuplicates(t *testing.T) {
	svc, client, txRepo := newTestPaymentService(t)

	client.On("InitiateSTKPush", mock.Anything, mock.Anything).
		Return(&provider.STKPushResult{Accepted: true, ProviderRequestID: "TRX-A"}, nil).Once()
	client.On("InitiateSTKPush", mock.Anything, mock.Anything).
		Return(&provider.STKPushResult{Accepted: true, ProviderRequestID: "TRX-B"}, nil).Once()
	txRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()

	req := InitiateRequest{PhoneNumber: "0712345678"}
	first, err := svc.InitiatePayment(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.InitiatePayment(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, first.ProviderRequestID, second.ProviderRequestID)
}

func TestNewPaymentService_ReferenceFormat(t *testing.T) {
	client := providermocks.NewMockClient(t)
	client.On("Name").Return("pesaflux")
	txRepo := mocks.NewMockTransactionRepository(t)

	var sent provider.STKPushRequest
	client.On("InitiateSTKPush", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(provider.STKPushRequest) }).
		Return(&provider.STKPushResult{Accepted: true, ProviderRequestID: "TRX-1"}, nil).Once()
	txRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewPaymentService(client, txRepo, testPaymentConfig(), testLogger())
	_, err := svc.InitiatePayment(context.Background(), InitiateRequest{PhoneNumber: "0712345678"})
	require.NoError(t, err)

	assert.Regexp(t, `^ZENKA-\d{13}-\d{1,3}$`, sent.Reference)
}
