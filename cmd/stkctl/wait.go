package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zenka/payments/internal/models"
	"github.com/zenka/payments/internal/poller"
)

// errPaymentFailed is returned when the payment settles as failed.
var errPaymentFailed = errors.New("payment failed")

func waitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wait [request-id]",
		Short: "Poll a payment until it succeeds, fails or polling times out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.waitFor(cmd, args[0])
		},
	}

	cmd.Flags().Int("attempts", 0, "Maximum status checks (default from POLL_MAX_ATTEMPTS)")
	cmd.Flags().Duration("interval", 0, "Delay between checks (default from POLL_INTERVAL)")
	cmd.Flags().Duration("initial-delay", -1, "Delay before the first check (default from POLL_INITIAL_DELAY)")

	return cmd
}

func (a *app) waitFor(cmd *cobra.Command, reference string) error {
	p := poller.New(a.poll, a.logger.With("transaction_request_id", reference))
	if f := cmd.Flags().Lookup("attempts"); f != nil && f.Changed {
		p.MaxAttempts, _ = cmd.Flags().GetInt("attempts")
	}
	if f := cmd.Flags().Lookup("interval"); f != nil && f.Changed {
		p.Interval, _ = cmd.Flags().GetDuration("interval")
	}
	if f := cmd.Flags().Lookup("initial-delay"); f != nil && f.Changed {
		p.InitialDelay, _ = cmd.Flags().GetDuration("initial-delay")
	}

	out := cmd.OutOrStdout()
	p.OnAttempt(func(attempt int, result *poller.Result, err error) {
		switch {
		case err != nil:
			fmt.Fprintf(out, "[%d/%d] status check failed: %v\n", attempt, p.MaxAttempts, err)
		default:
			fmt.Fprintf(out, "[%d/%d] %s\n", attempt, p.MaxAttempts, result.Status)
		}
	})

	result, err := p.Wait(cmd.Context(), func(ctx context.Context) (*poller.Result, error) {
		s, err := a.api.Status(ctx, reference)
		if err != nil || s == nil {
			return nil, err
		}
		return &poller.Result{
			Status:     models.TransactionStatus(s.Status),
			Receipt:    valueOf(s.Receipt),
			ResultCode: s.ResultCode,
			ResultDesc: valueOf(s.ResultDesc),
		}, nil
	})
	if err != nil {
		if errors.Is(err, poller.ErrPollTimeout) {
			return fmt.Errorf("%w; the payment may still complete, check again with: stkctl status %s", err, reference)
		}
		return err
	}

	if result.Status == models.TransactionStatusFailed {
		desc := result.ResultDesc
		if desc == "" {
			desc = "no description"
		}
		return fmt.Errorf("%w: %s", errPaymentFailed, desc)
	}

	fmt.Fprintf(out, "Payment successful. Receipt: %s\n", valueOr(result.Receipt, "n/a"))
	return nil
}

func valueOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
