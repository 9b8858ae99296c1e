package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenka/payments/internal/config"
	"github.com/zenka/payments/internal/models"
	"github.com/zenka/payments/internal/provider"
	"github.com/zenka/payments/internal/repository"
)

const initiatedMessage = "Payment initiated successfully"

// InitiateRequest is a caller's request to start a payment.
// A positive Amount is charged as is; otherwise the fee for LoanAmount is charged.
type InitiateRequest struct {
	Amount      *decimal.Decimal
	LoanAmount  *decimal.Decimal
	PhoneNumber string
	Description string
}

// InitiateResult identifies an accepted payment for later status checks.
type InitiateResult struct {
	Amount            decimal.Decimal
	ProviderRequestID string
	Reference         string
	PhoneNumber       string
	Message           string
}

// PaymentService orchestrates STK push initiation
type PaymentService struct {
	provider provider.Client
	txRepo   repository.TransactionRepository
	logger   *slog.Logger
	now      func() time.Time
	suffix   func() int
	cfg      config.PaymentConfig
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	client provider.Client,
	txRepo repository.TransactionRepository,
	cfg config.PaymentConfig,
	logger *slog.Logger,
) *PaymentService {
	return &PaymentService{
		provider: client,
		txRepo:   txRepo,
		logger:   logger,
		now:      time.Now,
		suffix:   func() int { return rand.IntN(1000) },
		cfg:      cfg,
	}
}

// InitiatePayment validates input, makes exactly one provider call and records
// the accepted payment as pending.
func (s *PaymentService) InitiatePayment(ctx context.Context, req InitiateRequest) (*InitiateResult, error) {
	if strings.TrimSpace(req.PhoneNumber) == "" {
		return nil, &ServiceError{Code: ErrCodeInvalidPhoneNumber, Message: "Phone number is required"}
	}

	phone, err := NormalizePhone(req.PhoneNumber)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidPhoneNumber, Message: "Invalid phone number format", Err: err}
	}

	amount, err := s.chargeAmount(req)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = s.cfg.DefaultDescription
	}

	reference := fmt.Sprintf("%s-%d-%d", s.cfg.ReferencePrefix, s.now().UnixMilli(), s.suffix())

	logger := s.logger.With("reference", reference, "provider", s.provider.Name())

	result, err := s.provider.InitiateSTKPush(ctx, provider.STKPushRequest{
		Amount:      amount,
		PhoneNumber: phone,
		Reference:   reference,
		Description: description,
		CallbackURL: s.cfg.CallbackURL,
	})
	if err != nil {
		logger.Warn("stk push not accepted", "error", err)
		return nil, providerError(err)
	}

	logger = logger.With("transaction_request_id", result.ProviderRequestID)

	tx := &models.Transaction{
		TransactionRequestID: result.ProviderRequestID,
		Amount:               amount,
		PhoneNumber:          phone,
		Status:               models.TransactionStatusPending,
		Reference:            reference,
	}
	// The push is already in flight; a failed insert is logged only.
	switch err := s.txRepo.Create(ctx, tx); {
	case errors.Is(err, models.ErrDuplicateTransaction):
		logger.Error("provider reused a transaction request id", "error", err)
	case err != nil:
		logger.Error("persistence failure after stk push accepted", "error", err)
	default:
		logger.Info("payment initiated", "amount", amount.String())
	}

	return &InitiateResult{
		Amount:            amount,
		ProviderRequestID: result.ProviderRequestID,
		Reference:         reference,
		PhoneNumber:       phone,
		Message:           initiatedMessage,
	}, nil
}

// chargeAmount resolves the amount to push: an explicit positive amount,
// else the fee for the loan amount, else the fee for the default loan amount.
func (s *PaymentService) chargeAmount(req InitiateRequest) (decimal.Decimal, error) {
	if err := ValidateAmount(req.Amount); err != nil {
		return decimal.Zero, &ServiceError{Code: ErrCodeInvalidAmount, Message: "Amount cannot be negative", Err: err}
	}
	if err := ValidateAmount(req.LoanAmount); err != nil {
		return decimal.Zero, &ServiceError{Code: ErrCodeInvalidAmount, Message: "Loan amount cannot be negative", Err: err}
	}

	if req.Amount != nil && req.Amount.IsPositive() {
		return *req.Amount, nil
	}

	loanAmount := decimal.NewFromInt(s.cfg.DefaultLoanAmount)
	if req.LoanAmount != nil && req.LoanAmount.IsPositive() {
		loanAmount = *req.LoanAmount
	}

	return TransactionFee(loanAmount), nil
}

// providerError maps provider failures onto the service error taxonomy.
func providerError(err error) error {
	if rejected, ok := provider.IsRejected(err); ok {
		return &ServiceError{Code: ErrCodeUpstreamRejected, Message: rejected.Message, Err: err}
	}
	if errors.Is(err, provider.ErrUpstreamMalformed) {
		return &ServiceError{Code: ErrCodeUpstreamMalformed, Message: MessageUpstreamMalformed, Err: err}
	}
	if errors.Is(err, provider.ErrUpstreamUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return &ServiceError{Code: ErrCodeUpstreamUnavailable, Message: MessageUpstreamUnavailable, Err: err}
	}
	return &ServiceError{Code: ErrCodeInternalError, Message: "Internal server error", Err: err}
}
