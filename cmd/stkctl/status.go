package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zenka/payments/internal/client"
)

func statusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status [request-id]",
		Short: "Show the current status of a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := a.api.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), status)
			return nil
		},
	}
}

func printStatus(w io.Writer, s *client.PaymentStatus) {
	fmt.Fprintf(w, "Status:      %s\n", s.Status)
	if s.Receipt != nil {
		fmt.Fprintf(w, "Receipt:     %s\n", *s.Receipt)
	}
	if s.ResultCode != nil {
		fmt.Fprintf(w, "Result code: %d\n", *s.ResultCode)
	}
	if s.ResultDesc != nil {
		fmt.Fprintf(w, "Description: %s\n", *s.ResultDesc)
	}
}
