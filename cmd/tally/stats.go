package main

import (
	"fmt"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/dates"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			stats, err := a.store.Stats(cmd.Context())
			if err != nil {
				return err
			}

			span := "no transactions"
			if stats.EarliestDate != nil && stats.LatestDate != nil {
				span = dates.ISO(*stats.EarliestDate) + " to " + dates.ISO(*stats.LatestDate)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle("Ledger statistics"))
			fmt.Fprintf(out, "Database:       %s (%s)\n", stats.Path, formatFileSize(stats.FileSize))
			fmt.Fprintf(out, "Schema version: %d\n", stats.SchemaVersion)
			fmt.Fprintf(out, "Transactions:   %d (%d uncategorized)\n", stats.Transactions, stats.UncategorizedTxn)
			fmt.Fprintf(out, "Categories:     %d\n", stats.Categories)
			fmt.Fprintf(out, "Date range:     %s\n", span)
			return nil
		},
	}
}
