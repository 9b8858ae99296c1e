package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/zenka/payments/internal/service"
)

func feeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fee [loan-amount]",
		Short: "Show the processing fee for a loan amount, or the whole fee table",
		Args:  cobra.MaximumNArgs(1),
		// Runs offline; skip the API setup.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				amount, err := decimal.NewFromString(args[0])
				if err != nil {
					return fmt.Errorf("invalid loan amount %q: %w", args[0], err)
				}
				if amount.IsNegative() {
					return fmt.Errorf("loan amount cannot be negative")
				}
				fmt.Fprintf(out, "KES %s\n", service.TransactionFee(amount).String())
				return nil
			}

			tiers, ceiling := service.FeeSchedule()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "LOAN AMOUNT\tFEE")
			for _, tier := range tiers {
				fmt.Fprintf(tw, "up to %s\t%s\n", tier.UpTo.String(), tier.Fee.String())
			}
			fmt.Fprintf(tw, "above %s\t%s\n", tiers[len(tiers)-1].UpTo.String(), ceiling.String())
			return tw.Flush()
		},
	}
}
