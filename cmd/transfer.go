package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/ledger-guard/internal/domain"
)

func newTransferCmd(app *app) *cobra.Command {
	var (
		from   string
		to     string
		amount int64
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move funds between accounts through the guard chain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			transfer := domain.Transfer{
				Sender:    domain.AccountID(from),
				Recipient: domain.AccountID(to),
				Amount:    domain.Amount(amount),
			}

			if err := app.ledger.Transfer(cmd.Context(), transfer); err != nil {
				// A denied transfer still grew the journal; persist it
				// before failing the command.
				if saveErr := app.persist(cmd.Context()); saveErr != nil {
					return errors.Join(err, saveErr)
				}

				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "transferred %d from %s to %s\n", amount, from, to)

			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Sender account ID")
	cmd.Flags().StringVar(&to, "to", "", "Recipient account ID")
	cmd.Flags().Int64Var(&amount, "amount", 0, "Amount to transfer")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
