// Package provider adapts the upstream STK push services behind one interface.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/zenka/payments/internal/models"
)

// Client initiates STK pushes and queries their settlement status.
type Client interface {
	Name() string
	InitiateSTKPush(ctx context.Context, req STKPushRequest) (*STKPushResult, error)
	QueryStatus(ctx context.Context, providerRequestID string) (*StatusResult, error)
}

// STKPushRequest is a normalized initiation request.
// PhoneNumber must already be a canonical 12-digit MSISDN.
type STKPushRequest struct {
	Amount      decimal.Decimal
	PhoneNumber string
	Reference   string
	Description string
	CallbackURL string
}

// STKPushResult is the uniform outcome of an accepted initiation.
type STKPushResult struct {
	ProviderRequestID string
	RawMessage        string
	Accepted          bool
}

// StatusResult is the provider's current view of a payment.
type StatusResult struct {
	Amount     *decimal.Decimal
	ResultCode *int
	Status     models.TransactionStatus
	Receipt    string
	ResultDesc string
	Phone      string
}

var (
	// ErrUpstreamMalformed indicates the provider answered with a body that could not be understood.
	ErrUpstreamMalformed = errors.New("malformed upstream response")

	// ErrUpstreamUnavailable indicates the provider could not be reached.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// RejectedError is an explicit decline from the provider.
type RejectedError struct {
	Provider   string
	Message    string
	StatusCode int
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected request (HTTP %d): %s", e.Provider, e.StatusCode, e.Message)
}

// IsRejected reports whether err is an explicit provider decline and returns it.
func IsRejected(err error) (*RejectedError, bool) {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected, true
	}
	return nil, false
}
