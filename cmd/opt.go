package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/ledger-guard/internal/domain"
)

func newOptCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "opt",
		Short: "Walk accounts through delayed policy opt-in and opt-out",
	}

	cmd.AddCommand(
		newOptOutRequestCmd(app),
		newOptOutActivateCmd(app),
		newOptInRequestCmd(app),
		newOptInActivateCmd(app),
	)

	return cmd
}

func newOptOutRequestCmd(app *app) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "out-request",
		Short: "Stamp an opt-out request for the account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account := domain.AccountID(accountID)
			if err := app.limiter.RequestOptOut(cmd.Context(), account); err != nil {
				return err
			}

			readyAt := optReadyAt(app, account, app.limiter.PendingOptOut(account))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: opt-out requested, activation opens after %s\n",
				accountID, readyAt.Format(time.RFC3339))

			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func newOptOutActivateCmd(app *app) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "out-activate",
		Short: "Activate a matured opt-out request",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.limiter.ActivateOptOut(cmd.Context(), domain.AccountID(accountID)); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: opted out of rate limiting\n", accountID)

			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func newOptInRequestCmd(app *app) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "in-request",
		Short: "Stamp an opt-in request for the account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account := domain.AccountID(accountID)
			if err := app.limiter.RequestOptIn(cmd.Context(), account); err != nil {
				return err
			}

			readyAt := optReadyAt(app, account, app.limiter.PendingOptIn(account))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: opt-in requested, activation opens after %s\n",
				accountID, readyAt.Format(time.RFC3339))

			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func newOptInActivateCmd(app *app) *cobra.Command {
	var (
		accountID string
		window    time.Duration
		limit     int64
	)

	cmd := &cobra.Command{
		Use:   "in-activate",
		Short: "Activate a matured opt-in request with a custom policy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account := domain.AccountID(accountID)
			if err := app.limiter.ActivateOptIn(cmd.Context(), account, window, domain.Amount(limit)); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: opted in, %d per %s\n", accountID, limit, window)

			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	cmd.Flags().DurationVar(&window, "window", 0, "Window length for the account's own policy")
	cmd.Flags().Int64Var(&limit, "limit", 0, "Cumulative volume limit per window")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("window")
	_ = cmd.MarkFlagRequired("limit")

	return cmd
}

// optReadyAt mirrors the limiter's activation delay: an opted-in account
// waits out its own window, everyone else waits out the default one.
func optReadyAt(app *app, account domain.AccountID, requestedAt time.Time) time.Time {
	delay := app.limiter.DefaultPolicy().Window
	if row := app.limiter.AccountPolicy(account); row.Status.Normalize() == domain.StatusOptIn {
		delay = row.Window
	}

	return requestedAt.Add(delay)
}
