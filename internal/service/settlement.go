package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenka/payments/internal/events"
	"github.com/zenka/payments/internal/models"
	"github.com/zenka/payments/internal/provider"
	"github.com/zenka/payments/internal/repository"
)

// SettlementOutcome describes what a settlement signal did to the store.
type SettlementOutcome string

const (
	// OutcomeApplied means a pending transaction moved to a terminal state.
	OutcomeApplied SettlementOutcome = "applied"
	// OutcomeAlreadySettled means the transaction was already terminal; nothing changed.
	OutcomeAlreadySettled SettlementOutcome = "already_settled"
	// OutcomeNotFound means no transaction matched; nothing was inserted.
	OutcomeNotFound SettlementOutcome = "not_found"
)

// PaymentStatus is the caller-facing view of a payment.
type PaymentStatus struct {
	ResultCode *int
	Status     models.TransactionStatus
	Receipt    string
	ResultDesc string
}

// SettlementService applies callbacks, webhook events and polled provider
// statuses to stored transactions.
type SettlementService struct {
	provider  provider.Client
	txRepo    repository.TransactionRepository
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewSettlementService creates a new SettlementService. A nil publisher disables events.
func NewSettlementService(
	client provider.Client,
	txRepo repository.TransactionRepository,
	publisher events.Publisher,
	logger *slog.Logger,
) *SettlementService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &SettlementService{
		provider:  client,
		txRepo:    txRepo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// HandleCallback applies a provider callback. ResultCode 0 is success, anything else is failure.
func (s *SettlementService) HandleCallback(ctx context.Context, cb models.STKCallback) (SettlementOutcome, error) {
	if cb.CheckoutRequestID == "" {
		return "", &ServiceError{Code: ErrCodeInvalidRequest, Message: "Missing CheckoutRequestID"}
	}

	status := models.TransactionStatusFailed
	if cb.ResultCode == ResultCodeSuccess {
		status = models.TransactionStatusSuccess
	}

	code := cb.ResultCode
	update := models.SettlementUpdate{
		TransactionRequestID: cb.CheckoutRequestID,
		Status:               status,
		ResultCode:           &code,
		ResultDescription:    describe(cb.ResultDesc, &code),
		Amount:               positive(cb.Amount),
		PhoneNumber:          canonicalPhone(cb.PhoneNumber),
	}
	if status == models.TransactionStatusSuccess {
		update.Receipt = cb.Receipt
	}

	return s.UpdateStatus(ctx, update)
}

// HandleWebhookEvent applies an aggregator event such as "payment.success".
func (s *SettlementService) HandleWebhookEvent(ctx context.Context, event models.WebhookEvent) (SettlementOutcome, error) {
	if event.Data.TransactionRequestID == "" {
		return "", &ServiceError{Code: ErrCodeInvalidRequest, Message: "Missing transaction_request_id"}
	}

	var status models.TransactionStatus
	switch event.Event {
	case models.EventPaymentSuccess:
		status = models.TransactionStatusSuccess
	case models.EventPaymentFailed:
		status = models.TransactionStatusFailed
	default:
		return "", &ServiceError{Code: ErrCodeInvalidRequest, Message: "Unsupported event: " + event.Event}
	}

	update := models.SettlementUpdate{
		TransactionRequestID: event.Data.TransactionRequestID,
		Status:               status,
		ResultCode:           event.Data.ResultCode,
		ResultDescription:    describe(event.Data.ResultDesc, event.Data.ResultCode),
		Amount:               positive(event.Data.Amount),
		PhoneNumber:          canonicalPhone(optional(event.Data.Phone)),
	}
	if status == models.TransactionStatusSuccess {
		update.Receipt = optional(event.Data.Receipt)
	}

	return s.UpdateStatus(ctx, update)
}

// CheckStatus answers a poll. Locally settled transactions are answered from
// the store; otherwise the provider is asked and a terminal answer is applied.
func (s *SettlementService) CheckStatus(ctx context.Context, transactionRequestID string) (*PaymentStatus, error) {
	if transactionRequestID == "" {
		return nil, &ServiceError{Code: ErrCodeInvalidRequest, Message: "Checkout ID is required"}
	}

	logger := s.logger.With("transaction_request_id", transactionRequestID)

	known := true
	existing, err := s.txRepo.FindByRequestID(ctx, transactionRequestID)
	switch {
	case errors.Is(err, models.ErrNotFound):
		known = false
	case err != nil:
		logger.Error("failed to load transaction", "error", err)
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "Failed to load transaction", Err: err}
	case existing.Status.IsTerminal():
		return statusFromTransaction(existing), nil
	}

	result, err := s.provider.QueryStatus(ctx, transactionRequestID)
	if err != nil {
		logger.Warn("status query failed", "error", err)
		return nil, providerError(err)
	}

	if !known {
		logger.Warn("status query for unknown transaction", "status", result.Status)
	} else if result.Status.IsTerminal() {
		update := models.SettlementUpdate{
			TransactionRequestID: transactionRequestID,
			Status:               result.Status,
			ResultCode:           result.ResultCode,
			ResultDescription:    describe(result.ResultDesc, result.ResultCode),
			Amount:               positive(result.Amount),
			PhoneNumber:          canonicalPhone(optional(result.Phone)),
		}
		if result.Status == models.TransactionStatusSuccess {
			update.Receipt = optional(result.Receipt)
		}
		if _, err := s.UpdateStatus(ctx, update); err != nil {
			logger.Error("failed to record polled status", "error", err)
		}
	}

	status := &PaymentStatus{
		Status:     result.Status,
		ResultCode: result.ResultCode,
		ResultDesc: result.ResultDesc,
	}
	if result.Status == models.TransactionStatusSuccess {
		status.Receipt = result.Receipt
	}
	if status.ResultDesc == "" && status.ResultCode != nil {
		status.ResultDesc = DescribeResultCode(*status.ResultCode)
	}

	return status, nil
}

// UpdateStatus moves a pending transaction to a terminal state exactly once.
// Unknown ids and already settled transactions are reported, never inserted or overwritten.
func (s *SettlementService) UpdateStatus(ctx context.Context, update models.SettlementUpdate) (SettlementOutcome, error) {
	logger := s.logger.With(
		"transaction_request_id", update.TransactionRequestID,
		"status", update.Status,
	)

	applied, err := s.txRepo.UpdateStatus(ctx, update)
	if err != nil {
		logger.Error("failed to update transaction", "error", err)
		return "", &ServiceError{Code: ErrCodeInternalError, Message: "Failed to update transaction", Err: err}
	}

	if applied {
		logger.Info("transaction settled")
		s.publish(ctx, update)
		return OutcomeApplied, nil
	}

	existing, err := s.txRepo.FindByRequestID(ctx, update.TransactionRequestID)
	if errors.Is(err, models.ErrNotFound) {
		logger.Warn("settlement for unknown transaction")
		return OutcomeNotFound, nil
	}
	if err != nil {
		logger.Error("failed to load transaction", "error", err)
		return "", &ServiceError{Code: ErrCodeInternalError, Message: "Failed to update transaction", Err: err}
	}

	if existing.Status.IsTerminal() {
		logger.Info("transaction already settled", "current_status", existing.Status)
		return OutcomeAlreadySettled, nil
	}

	// Still pending: the row appeared between the update and the read.
	applied, err = s.txRepo.UpdateStatus(ctx, update)
	if err != nil {
		logger.Error("failed to update transaction", "error", err)
		return "", &ServiceError{Code: ErrCodeInternalError, Message: "Failed to update transaction", Err: err}
	}
	if !applied {
		return OutcomeAlreadySettled, nil
	}

	logger.Info("transaction settled")
	s.publish(ctx, update)
	return OutcomeApplied, nil
}

func (s *SettlementService) publish(ctx context.Context, update models.SettlementUpdate) {
	name := models.EventPaymentFailed
	if update.Status == models.TransactionStatusSuccess {
		name = models.EventPaymentSuccess
	}

	event := models.WebhookEvent{
		Event: name,
		Data: models.WebhookEventData{
			TransactionRequestID: update.TransactionRequestID,
			Amount:               update.Amount,
			ResultCode:           update.ResultCode,
			Timestamp:            s.now().UTC().Format(time.RFC3339),
		},
	}
	if update.Receipt != nil {
		event.Data.Receipt = *update.Receipt
	}
	if update.PhoneNumber != nil {
		event.Data.Phone = *update.PhoneNumber
	}
	if update.ResultDescription != nil {
		event.Data.ResultDesc = *update.ResultDescription
	}

	if err := s.publisher.PublishSettlement(ctx, event); err != nil {
		s.logger.Error("failed to publish settlement event",
			"transaction_request_id", update.TransactionRequestID,
			"error", err,
		)
	}
}

func statusFromTransaction(tx *models.Transaction) *PaymentStatus {
	status := &PaymentStatus{
		Status:     tx.Status,
		ResultCode: tx.ResultCode,
	}
	if tx.MpesaReceiptNumber != nil {
		status.Receipt = *tx.MpesaReceiptNumber
	}
	if tx.ResultDescription != nil {
		status.ResultDesc = *tx.ResultDescription
	}
	return status
}

// describe prefers the provider's text and falls back to the known code description.
func describe(desc string, code *int) *string {
	if desc == "" && code != nil {
		desc = DescribeResultCode(*code)
	}
	return optional(desc)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// canonicalPhone returns the normalized MSISDN, or nil when the value is not a
// Kenyan mobile number so the stored phone is left alone.
func canonicalPhone(phone *string) *string {
	if phone == nil {
		return nil
	}
	normalized, err := NormalizePhone(*phone)
	if err != nil {
		return nil
	}
	return &normalized
}

// positive drops zero and negative amounts reported by a settlement signal.
func positive(amount *decimal.Decimal) *decimal.Decimal {
	if amount == nil || !amount.IsPositive() {
		return nil
	}
	return amount
}
