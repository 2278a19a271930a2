package cmd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/bnema/ledger-guard/internal/domain"
)

func newLedgerCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect and seed account balances",
	}

	cmd.AddCommand(newLedgerSetBalanceCmd(app), newLedgerBalancesCmd(app))

	return cmd
}

func newLedgerSetBalanceCmd(app *app) *cobra.Command {
	var (
		accountID string
		amount    int64
	)

	cmd := &cobra.Command{
		Use:   "set-balance",
		Short: "Overwrite an account's balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account := domain.AccountID(accountID)
			if err := app.ledger.SetBalance(cmd.Context(), app.caller, account, domain.Amount(amount)); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: balance %d\n", accountID, amount)

			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	cmd.Flags().Int64Var(&amount, "amount", 0, "New balance")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func newLedgerBalancesCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "List all account balances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			balances := app.ledger.Balances()
			if len(balances) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no balances recorded")
				return nil
			}

			for _, account := range slices.Sorted(maps.Keys(balances)) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", account, balances[account])
			}

			return nil
		},
	}
}
