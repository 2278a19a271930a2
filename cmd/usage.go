package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/ledger-guard/internal/domain"
)

func newUsageCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Inspect and set per-account usage records",
	}

	cmd.AddCommand(newUsageShowCmd(app), newUsageSetCmd(app))

	return cmd
}

func newUsageShowCmd(app *app) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show an account's counted usage and remaining headroom",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account := domain.AccountID(accountID)
			out := cmd.OutOrStdout()

			record := app.limiter.Usage(account)
			available := app.limiter.AvailableToTransfer(account)

			_, _ = fmt.Fprintf(out, "usage: %d (window %d)\n", record.Total, record.WindowID)
			_, _ = fmt.Fprintf(out, "available: %s\n", available.Label())
			_, _ = fmt.Fprintf(out, "next window: %s\n", app.limiter.NextWindowStart(account).Format(time.RFC3339))

			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func newUsageSetCmd(app *app) *cobra.Command {
	var (
		accountID string
		total     int64
		windowID  int64
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Overwrite an account's usage record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			record := domain.UsageRecord{Total: domain.Amount(total), WindowID: windowID}
			if err := app.limiter.SetUsage(cmd.Context(), app.caller, domain.AccountID(accountID), record); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: usage %d in window %d\n", accountID, record.Total, record.WindowID)

			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	cmd.Flags().Int64Var(&total, "total", 0, "Cumulative volume already counted")
	cmd.Flags().Int64Var(&windowID, "window-id", 0, "Window the total belongs to")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}
