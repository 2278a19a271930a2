package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/ledger-guard/internal/adapters/render/status"
	"github.com/bnema/ledger-guard/internal/application"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the guard chain, policies and per-account quota standing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := buildStatusView(cmd.Context(), app)
			if err != nil {
				return err
			}

			return writeStatusOutput(cmd, app, view, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output status as JSON")

	return cmd
}

// buildStatusView assembles one row per account the system knows about,
// whether from a policy row, counted usage, a pending request or a balance.
func buildStatusView(ctx context.Context, app *app) (application.StatusView, error) {
	accounts := app.limiter.KnownAccounts()
	for account := range app.ledger.Balances() {
		accounts = append(accounts, account)
	}
	slices.Sort(accounts)
	accounts = slices.Compact(accounts)

	view := application.StatusView{
		Default: app.limiter.DefaultPolicy(),
		Modules: app.dispatcher.Modules(),
	}
	for _, account := range accounts {
		quota, err := app.limiter.AccountQuota(ctx, account)
		if err != nil {
			return application.StatusView{}, fmt.Errorf("assemble status for %s: %w", account, err)
		}
		view.Accounts = append(view.Accounts, quota)
	}

	return view, nil
}

func writeStatusOutput(cmd *cobra.Command, app *app, view application.StatusView, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	rendered, err := app.statusRenderer(view, statusadapter.RenderOptions{Now: app.clock.Now()})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), rendered)

	return nil
}
