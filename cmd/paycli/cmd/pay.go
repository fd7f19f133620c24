package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/cassiomorais/checkout/internal/bootstrap"
	"github.com/cassiomorais/checkout/internal/config"
	"github.com/cassiomorais/checkout/internal/controller"
	"github.com/cassiomorais/checkout/internal/payclient"
	"github.com/cassiomorais/checkout/internal/session"
	"github.com/spf13/cobra"
)

func newPayCmd() *cobra.Command {
	var (
		amount   string
		authCode string
	)

	c := &cobra.Command{
		Use:     "pay",
		Short:   "Send one payment to the backend",
		Example: `  CHECKOUT_API_URL=http://localhost:3000 paycli pay --amount 100 --auth-code abc123`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			app, err := bootstrap.NewFromConfig(ctx, cfg, "checkout-cli", "checkout_cli",
				bootstrap.Options{LogOutput: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer app.Close(context.Background())

			if authCode == "" {
				authCode = app.Config.Checkout.AuthCode
			}
			return runPay(ctx, cmd.OutOrStdout(), app.Client, app.Store, amount, authCode)
		},
	}

	c.Flags().StringVar(&amount, "amount", "", "payment amount")
	c.Flags().StringVar(&authCode, "auth-code", "", "authorization code (defaults to checkout.auth_code)")
	_ = c.MarkFlagRequired("amount")
	return c
}

// runPay mirrors the web submit flow: the raw amount lands in the store before
// the request and the outcome text lands there after it.
func runPay(ctx context.Context, out io.Writer, client controller.PaymentSubmitter, store *session.Store, rawAmount, authCode string) error {
	store.SetAmount(rawAmount)

	value, err := controller.ParseSubmission(rawAmount, authCode)
	if err != nil {
		store.SetPaymentStatus(err.Error())
		return err
	}

	var result payclient.Result
	result, err = client.SubmitPayment(ctx, value, authCode)
	if err != nil {
		store.SetPaymentStatus(err.Error())
	} else {
		store.SetPaymentStatus(controller.StatusSucceeded)
	}

	snap := store.Snapshot()
	fmt.Fprintf(out, "amount: %s\n", snap.Amount)
	fmt.Fprintf(out, "status: %s\n", snap.PaymentStatus)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "result: %s\n", result.String())
	return nil
}
