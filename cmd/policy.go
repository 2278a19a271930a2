package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/ledger-guard/internal/domain"
)

func newPolicyCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect and set transfer quota policies",
	}

	cmd.AddCommand(
		newPolicyShowCmd(app),
		newPolicySetDefaultCmd(app),
		newPolicySetAccountCmd(app),
		newPolicyResetAccountCmd(app),
	)

	return cmd
}

func newPolicyShowCmd(app *app) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the default policy, or one account's policy row",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			def := app.limiter.DefaultPolicy()
			_, _ = fmt.Fprintf(out, "default: %d per %s\n", def.Limit, def.Window)

			if accountID == "" {
				return nil
			}

			row := app.limiter.AccountPolicy(domain.AccountID(accountID))
			if row == (domain.AccountPolicy{}) {
				_, _ = fmt.Fprintf(out, "%s: no policy row, default applies\n", accountID)
				return nil
			}

			_, _ = fmt.Fprintf(out, "%s: %s, %d per %s\n", accountID, row.Status.Label(), row.Limit, row.Window)

			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")

	return cmd
}

func newPolicySetDefaultCmd(app *app) *cobra.Command {
	var (
		window time.Duration
		limit  int64
	)

	cmd := &cobra.Command{
		Use:   "set-default",
		Short: "Overwrite the process-wide default policy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			policy := domain.Policy{Window: window, Limit: domain.Amount(limit)}
			if err := app.limiter.SetDefaultPolicy(cmd.Context(), app.caller, policy); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "default policy set: %d per %s\n", policy.Limit, policy.Window)

			return nil
		},
	}

	cmd.Flags().DurationVar(&window, "window", 24*time.Hour, "Window length")
	cmd.Flags().Int64Var(&limit, "limit", 0, "Cumulative volume limit per window")
	_ = cmd.MarkFlagRequired("limit")

	return cmd
}

func newPolicySetAccountCmd(app *app) *cobra.Command {
	var (
		accountID string
		window    time.Duration
		limit     int64
		status    string
	)

	cmd := &cobra.Command{
		Use:   "set-account",
		Short: "Overwrite an account's policy row, overriding any opt state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := parseAccountStatus(status)
			if err != nil {
				return err
			}

			account := domain.AccountID(accountID)
			row := domain.AccountPolicy{Window: window, Limit: domain.Amount(limit), Status: parsed}
			if err := app.limiter.SetAccountPolicy(cmd.Context(), app.caller, account, row); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, %d per %s\n", accountID, row.Status.Label(), row.Limit, row.Window)

			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	cmd.Flags().DurationVar(&window, "window", 0, "Window length")
	cmd.Flags().Int64Var(&limit, "limit", 0, "Cumulative volume limit per window")
	cmd.Flags().StringVar(&status, "status", string(domain.StatusOptInOverride), "Account status (default, opt_in, opt_out, opt_in_override, opt_out_override)")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func newPolicyResetAccountCmd(app *app) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "reset-account",
		Short: "Delete an account's policy row so the default applies again",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.limiter.ResetAccountPolicy(cmd.Context(), app.caller, domain.AccountID(accountID)); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: policy row deleted\n", accountID)

			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func parseAccountStatus(raw string) (domain.AccountStatus, error) {
	status := domain.AccountStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("unknown account status %q", raw)
	}

	return status.Normalize(), nil
}
