package main

import (
	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"shell"},
		Short:   "Start the menu-driven ledger shell",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx := interrupts.HandleInterrupts(cmd.Context(), "Interrupted, exiting")

			shell := cli.NewShell(a.ledger, a.reports, a.resolver, cmd.InOrStdin(), cmd.OutOrStdout(), a.currency)
			return shell.Run(ctx)
		},
	}
}

func browseCmd() *cobra.Command {
	var period, start, end, typ, category, theme string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse transactions in a full-screen table",
		Long: `Open a scrollable, searchable table of transactions.

Press / to search, t to cycle the type filter, Enter for details and q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			var f ledger.Filter
			if f.Start, f.End, err = a.window(period, start, end); err != nil {
				return err
			}
			if f.Type, err = typeFlag(typ); err != nil {
				return err
			}
			if category != "" {
				id, err := a.categoryID(ctx, category)
				if err != nil {
					return err
				}
				f.CategoryID = &id
			}

			if theme == "" {
				theme = viper.GetString("tui.theme")
			}
			opts := []tui.Option{
				tui.WithTitle("Transactions: " + ledger.PeriodLabel(f.Start, f.End)),
				tui.WithCurrency(a.currency),
				tui.WithTheme(tui.GetTheme(theme)),
			}
			return tui.Browse(ctx, a.ledger, f, opts)
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "named period or explicit range")
	cmd.Flags().StringVar(&start, "start", "", "earliest date to include")
	cmd.Flags().StringVar(&end, "end", "", "latest date to include")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "only expense or income")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category id or exact name")
	cmd.Flags().StringVar(&theme, "theme", "", "color theme (default, catppuccin-mocha)")

	return cmd
}
