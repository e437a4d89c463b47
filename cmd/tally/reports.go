package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/report"
	"github.com/spf13/cobra"
)

type reportFlags struct {
	date         string
	category     string
	start        string
	end          string
	compareStart string
	compareEnd   string
	format       string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "date inside the reported period (default: today)")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "category id or exact name (category reports)")
	cmd.Flags().StringVar(&f.start, "start", "", "window start (category and comparison reports)")
	cmd.Flags().StringVar(&f.end, "end", "", "window end (category and comparison reports)")
	cmd.Flags().StringVar(&f.compareStart, "compare-start", "", "second period start (comparison reports)")
	cmd.Flags().StringVar(&f.compareEnd, "compare-end", "", "second period end (comparison reports)")
}

// request turns the flags into a generator request for kind.
func (f *reportFlags) request(cmd *cobra.Command, a *app, kind report.Kind) (report.Request, error) {
	req := report.Request{Kind: kind}
	var err error

	if req.Date, err = a.optionalDate(f.date, "date", true); err != nil {
		return req, err
	}
	if req.Start, err = a.optionalDate(f.start, "start", true); err != nil {
		return req, err
	}
	if req.End, err = a.optionalDate(f.end, "end", true); err != nil {
		return req, err
	}
	if req.CompareStart, err = a.optionalDate(f.compareStart, "compare-start", true); err != nil {
		return req, err
	}
	if req.CompareEnd, err = a.optionalDate(f.compareEnd, "compare-end", true); err != nil {
		return req, err
	}
	if f.category != "" {
		if req.CategoryID, err = a.categoryID(cmd.Context(), f.category); err != nil {
			return req, err
		}
	}
	return req, nil
}

func reportCmd() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "report <daily|weekly|monthly|yearly|category|comparison>",
		Short: "Generate a report",
		Long: `Generate a report over the ledger.

Daily, weekly, monthly and yearly reports cover the period containing --date.
Weeks run Monday to Sunday. Category reports need --category and accept an
optional --start/--end window. Comparison reports need --start, --end,
--compare-start and --compare-end.`,
		Example: `  tally report monthly --date 2024-03-15
  tally report category --category "Food & Dining" --start 2024-01-01 --end 2024-03-31
  tally report compare --start 2024-01-01 --end 2024-01-31 --compare-start 2024-02-01 --compare-end 2024-02-29`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"daily", "weekly", "monthly", "yearly", "category", "comparison", "compare"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kind, err := report.ParseKind(args[0])
			if err != nil {
				return err
			}
			if flags.format != "text" && flags.format != "json" {
				return fmt.Errorf("unknown format %q: use text or json", flags.format)
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

			out := cmd.OutOrStdout()
			if flags.format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			return report.Render(out, r, report.WithCurrency(a.currency))
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "output format (text, json)")

	return cmd
}

func summaryCmd() *cobra.Command {
	var period, start, end, typ string
	var top int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income, expenses and top categories",
		Example: `  tally summary
  tally summary --period "last month"
  tally summary --start 2024-01-01 --end 2024-06-30 --type expense`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			startDate, endDate, err := a.window(period, start, end)
			if err != nil {
				return err
			}
			categoryType, err := typeFlag(typ)
			if err != nil {
				return err
			}

			summary, err := a.ledger.Summarize(ctx, startDate, endDate)
			if err != nil {
				return err
			}
			categories, err := a.ledger.CategorySummary(ctx, startDate, endDate, categoryType)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSummary(out, ledger.PeriodLabel(startDate, endDate), summary, a.currency)

			if len(categories) == 0 {
				return nil
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, cli.BoldStyle.Render(cli.FolderIcon+" Top categories"))
			if top > 0 && len(categories) > top {
				categories = categories[:top]
			}
			for _, c := range categories {
				fmt.Fprintln(out, "  "+report.FormatCategory(c, report.WithCurrency(a.currency)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "", `named period ("this month") or explicit range`)
	cmd.Flags().StringVar(&start, "start", "", "earliest date to include")
	cmd.Flags().StringVar(&end, "end", "", "latest date to include")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "limit categories to expense or income")
	cmd.Flags().IntVar(&top, "top", 5, "number of categories to show (0 for all)")

	return cmd
}

func kindNames() string {
	names := make([]string, 0, len(report.Kinds))
	for _, k := range report.Kinds {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}
