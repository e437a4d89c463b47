package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/report"
	"github.com/Veraticus/tally/internal/sheets"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export reports to external services",
	}

	cmd.AddCommand(exportSheetsCmd())

	return cmd
}

func exportSheetsCmd() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "sheets <kind>",
		Short: "Write a report to Google Sheets",
		Long: fmt.Sprintf(`Generate a report and write it to its own tab of the configured spreadsheet.

Report kinds: %s. Report flags work as in 'tally report'.
Authenticate first with 'tally auth sheets', or configure a service account
with sheets.service_account_path.`, kindNames()),
		Example: `  tally export sheets monthly --date 2024-03-01`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kind, err := report.ParseKind(args[0])
			if err != nil {
				return err
			}

			sheetsConfig, err := config.LoadSheetsConfig()
			if err != nil {
				return fmt.Errorf("google sheets is not configured: %w", err)
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			req, err := flags.request(cmd, a, kind)
			if err != nil {
				return err
			}
			r, err := a.reports.Generate(ctx, req)
			if err != nil {
				return err
			}

			writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
			if errors.Is(err, sheets.ErrNoAuth) {
				return common.NewUserError("Google Sheets is not configured; run 'tally auth sheets' first",
					fmt.Errorf("%w: %w", common.ErrMissingConfig, err))
			}
			if err != nil {
				return err
			}
			result, err := writer.Export(ctx, r)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Wrote %d rows to tab %q", result.Rows, result.Tab)))
			fmt.Fprintf(cmd.OutOrStdout(), "https://docs.google.com/spreadsheets/d/%s\n", result.SpreadsheetID)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
