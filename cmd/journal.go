package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/ledger-guard/internal/domain"
)

func newJournalCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List journaled admission decisions, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			decisions, err := app.journal.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(decisions)
			}

			if len(decisions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no decisions journaled")
				return nil
			}

			for _, decision := range decisions {
				verdict := "ALLOW"
				detail := ""
				if !decision.Allowed {
					verdict = "DENY"
					detail = "  " + denialDetail(decision)
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %-5s  %s -> %s  %d%s\n",
					decision.At.Format(time.RFC3339), verdict,
					decision.Transfer.Sender, decision.Transfer.Recipient, decision.Transfer.Amount,
					detail)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit decisions as JSON")

	return cmd
}

func denialDetail(decision domain.Decision) string {
	if decision.Module == "" {
		return decision.Reason
	}

	return fmt.Sprintf("[%s] %s", decision.Module, decision.Reason)
}
