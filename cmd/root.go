package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app := &app{}

	var opts wireOptions

	rootCmd := &cobra.Command{
		Use:           "lg",
		Short:         "Ledger Guard (lg): transfer admission for a fungible ledger",
		Long:          "lg (Ledger Guard) fronts a fungible-asset ledger with an ordered chain of guard modules. It meters per-account transfer volume against windowed quotas, walks accounts through delayed opt-in and opt-out of custom policies, and journals every admission decision.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			wired, err := wireApp(opts)
			if err != nil {
				return err
			}
			*app = *wired

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return app.persist(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.caller, "as", "", "Caller identity for capability-gated commands")
	rootCmd.PersistentFlags().StringVar(&opts.at, "at", "", "Pin the clock to a fixed RFC3339 instant")

	rootCmd.AddCommand(
		newVersionCmd(),
		newStatusCmd(app),
		newTransferCmd(app),
		newPolicyCmd(app),
		newUsageCmd(app),
		newOptCmd(app),
		newLedgerCmd(app),
		newGuardCmd(app),
		newJournalCmd(app),
	)

	return rootCmd
}
