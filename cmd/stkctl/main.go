// Command stkctl initiates and tracks STK push payments through the payments API.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/zenka/payments/internal/client"
	"github.com/zenka/payments/internal/config"
)

var Version = "dev"

const defaultAPIURL = "http://localhost:8080"

// app is the state shared by subcommands once flags are parsed.
type app struct {
	api     *client.Client
	logger  *slog.Logger
	poll    config.PollConfig
	apiURL  string
	timeout time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "stkctl",
		Short:         "Initiate and track M-Pesa STK push payments",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	apiURL := os.Getenv("PAYMENTS_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api-url", apiURL, "Payments API base URL (env PAYMENTS_API_URL)")
	rootCmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 30*time.Second, "Per-request timeout")

	rootCmd.AddCommand(initiateCmd(a))
	rootCmd.AddCommand(statusCmd(a))
	rootCmd.AddCommand(waitCmd(a))
	rootCmd.AddCommand(feeCmd())

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	poll, logCfg, err := config.LoadClient(nil)
	if err != nil {
		return err
	}

	a.poll = poll
	a.logger = logCfg.NewLoggerTo(cmd.ErrOrStderr())
	a.api = client.New(a.apiURL, &http.Client{Timeout: a.timeout})

	return nil
}
