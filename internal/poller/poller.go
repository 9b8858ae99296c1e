// Package poller waits for a payment to reach a terminal status by polling.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zenka/payments/internal/config"
	"github.com/zenka/payments/internal/models"
)

// ErrPollTimeout means every attempt was used without a terminal status.
// It says nothing about the payment itself, which may still settle.
var ErrPollTimeout = errors.New("payment status polling timed out")

// ErrNoResult is reported for a check that returned neither a result nor an error.
var ErrNoResult = errors.New("status check returned no result")

// Result is one observation of a payment.
type Result struct {
	ResultCode *int
	Status     models.TransactionStatus
	Receipt    string
	ResultDesc string
}

// CheckFunc fetches the current status of the payment being waited on.
type CheckFunc func(ctx context.Context) (*Result, error)

// Poller bounds how long and how often a payment is polled.
type Poller struct {
	logger       *slog.Logger
	onAttempt    func(attempt int, result *Result, err error)
	MaxAttempts  int
	Interval     time.Duration
	InitialDelay time.Duration
}

// New creates a Poller from configuration.
func New(cfg config.PollConfig, logger *slog.Logger) *Poller {
	return &Poller{
		logger:       logger,
		MaxAttempts:  cfg.MaxAttempts,
		Interval:     cfg.Interval,
		InitialDelay: cfg.InitialDelay,
	}
}

// OnAttempt registers a callback invoked after every check.
func (p *Poller) OnAttempt(fn func(attempt int, result *Result, err error)) {
	p.onAttempt = fn
}

// Wait polls until the payment is terminal, attempts run out or ctx is done.
// A failed check consumes an attempt. Cancelling ctx only stops polling.
func (p *Poller) Wait(ctx context.Context, check CheckFunc) (*Result, error) {
	if p.MaxAttempts <= 0 {
		return nil, fmt.Errorf("max attempts must be positive, got %d", p.MaxAttempts)
	}

	if err := sleep(ctx, p.InitialDelay); err != nil {
		return nil, err
	}

	var last *Result
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		result, err := check(ctx)
		if err == nil && result == nil {
			err = ErrNoResult
		}
		if p.onAttempt != nil {
			p.onAttempt(attempt, result, err)
		}

		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return last, ctxErr
			}
			p.logger.Warn("status check failed", "attempt", attempt, "error", err)
		case result.Status.IsTerminal():
			return result, nil
		default:
			last = result
			p.logger.Debug("payment still pending", "attempt", attempt)
		}

		if attempt < p.MaxAttempts {
			if err := sleep(ctx, p.Interval); err != nil {
				return last, err
			}
		}
	}

	return last, fmt.Errorf("%w after %d attempts", ErrPollTimeout, p.MaxAttempts)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
