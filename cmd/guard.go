package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

func newGuardCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guard",
		Short: "Manage the ordered guard module chain",
	}

	cmd.AddCommand(newGuardListCmd(app), newGuardEnableCmd(app), newGuardDisableCmd(app))

	return cmd
}

func newGuardListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered guard modules in invocation order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			modules := app.dispatcher.Modules()
			if len(modules) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no guard modules registered")
				return nil
			}

			for i, name := range modules {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i+1, name)
			}

			return nil
		},
	}
}

func newGuardEnableCmd(app *app) *cobra.Command {
	var moduleName string

	cmd := &cobra.Command{
		Use:   "enable",
		Short: "Append a guard module to the chain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, ok := app.guards[moduleName]
			if !ok {
				return fmt.Errorf("unknown guard module %q (available: %s)",
					moduleName, strings.Join(slices.Sorted(maps.Keys(app.guards)), ", "))
			}

			if err := app.dispatcher.Register(cmd.Context(), app.caller, module); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "guard chain: %s\n", strings.Join(app.dispatcher.Modules(), " > "))

			return nil
		},
	}

	cmd.Flags().StringVar(&moduleName, "module", "", "Guard module name")
	_ = cmd.MarkFlagRequired("module")

	return cmd
}

func newGuardDisableCmd(app *app) *cobra.Command {
	var moduleName string

	cmd := &cobra.Command{
		Use:   "disable",
		Short: "Remove a guard module from the chain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.dispatcher.Deregister(cmd.Context(), app.caller, moduleName); err != nil {
				return err
			}

			chain := strings.Join(app.dispatcher.Modules(), " > ")
			if chain == "" {
				chain = "empty"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "guard chain: %s\n", chain)

			return nil
		},
	}

	cmd.Flags().StringVar(&moduleName, "module", "", "Guard module name")
	_ = cmd.MarkFlagRequired("module")

	return cmd
}
