package service

import (
	"context"

	"github.com/zenka/payments/internal/models"
)

// HealthChecker validates system health.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// PaymentInitiator starts STK push payments
type PaymentInitiator interface {
	InitiatePayment(ctx context.Context, req InitiateRequest) (*InitiateResult, error)
}

// SettlementHandler reconciles asynchronous settlement signals with stored transactions
type SettlementHandler interface {
	HandleCallback(ctx context.Context, callback models.STKCallback) (SettlementOutcome, error)
	HandleWebhookEvent(ctx context.Context, event models.WebhookEvent) (SettlementOutcome, error)
	CheckStatus(ctx context.Context, transactionRequestID string) (*PaymentStatus, error)
}

// Ensure concrete types implement interfaces
var (
	_ PaymentInitiator  = (*PaymentService)(nil)
	_ SettlementHandler = (*SettlementService)(nil)
)
