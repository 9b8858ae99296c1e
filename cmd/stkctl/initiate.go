package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/zenka/payments/internal/client"
)

func initiateCmd(a *app) *cobra.Command {
	var (
		phone, amount, loanAmount string
		description, idemKey      string
		wait                      bool
	)

	cmd := &cobra.Command{
		Use:   "initiate",
		Short: "Send an STK push prompt to a phone",
		Long: `Send an STK push prompt to a phone.

With --amount the amount is charged as is. Otherwise the processing fee for
--loan-amount (or the server's default loan amount) is charged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := client.InitiateRequest{
				PhoneNumber:    phone,
				Description:    description,
				IdempotencyKey: idemKey,
			}

			var err error
			if req.Amount, err = parseOptionalDecimal("amount", amount); err != nil {
				return err
			}
			if req.LoanAmount, err = parseOptionalDecimal("loan-amount", loanAmount); err != nil {
				return err
			}

			resp, err := a.api.Initiate(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, resp.Message)
			fmt.Fprintf(out, "  Request ID: %s\n", resp.Data.ExternalReference)
			if resp.Data.Reference != "" {
				fmt.Fprintf(out, "  Reference:  %s\n", resp.Data.Reference)
			}
			fmt.Fprintf(out, "  Amount:     KES %s\n", resp.Data.Amount.String())
			if resp.Replayed {
				fmt.Fprintln(out, "  (replayed from an earlier request with the same idempotency key)")
			}

			if !wait {
				return nil
			}
			return a.waitFor(cmd, resp.Data.ExternalReference)
		},
	}

	cmd.Flags().StringVarP(&phone, "phone", "p", "", "Phone number (07XXXXXXXX, 254XXXXXXXXX or +254XXXXXXXXX)")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount to charge in KES")
	cmd.Flags().StringVar(&loanAmount, "loan-amount", "", "Loan amount used to compute the fee")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Transaction description")
	cmd.Flags().StringVar(&idemKey, "idempotency-key", "", "Idempotency-Key header value")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "Wait for the payment to settle")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}

func parseOptionalDecimal(name, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return &d, nil
}
