package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/dates"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/validation"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	var date, category string

	cmd := &cobra.Command{
		Use:   "add <expense|income> <amount> [description...]",
		Short: "Record an expense or income",
		Example: `  tally add expense 12.50 "Lunch" --category "Food & Dining"
  tally add income 2500 March salary --date 2024-03-01 --category Salary
  tally add expense 40 --date yesterday`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			typ, err := validation.ParseType(args[0])
			if err != nil {
				return err
			}
			amount, err := validation.ParseAmount(args[1])
			if err != nil {
				return err
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			in := ledger.NewTransaction{
				Type:        typ,
				Amount:      amount,
				Description: strings.Join(args[2:], " "),
			}
			if in.Date, err = a.optionalDate(date, "date", false); err != nil {
				return err
			}
			if category != "" {
				id, err := a.categoryID(ctx, category)
				if err != nil {
					return err
				}
				in.CategoryID = &id
			}

			id, err := a.ledger.Add(ctx, in)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Transaction added successfully (ID: %d)", id)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "transaction date (default: today)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category id or exact name")

	return cmd
}

func listCmd() *cobra.Command {
	var (
		date, start, end, period, typ, category string
		limit, offset                           int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long: `List transactions, newest first.

With no flags every transaction is listed. --date shows a single day,
--period accepts "this week", "last month", "2024-01-01 to 2024-01-31" and similar.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			f := ledger.Filter{Limit: limit, Offset: offset}
			if date != "" {
				period = date
			}
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
			if limit != 0 {
				if _, err := validation.CheckLimit(limit, validation.MaxLimit); err != nil {
					return err
				}
			}

			txns, err := a.ledger.List(ctx, f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle("Transactions: "+ledger.PeriodLabel(f.Start, f.End)))
			printTransactions(out, txns, a.currency)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "show a single day")
	cmd.Flags().StringVar(&period, "period", "", "named period or explicit range")
	cmd.Flags().StringVar(&start, "start", "", "earliest date to include")
	cmd.Flags().StringVar(&end, "end", "", "latest date to include")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "only expense or income")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category id or exact name")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of transactions (0 for all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of transactions to skip")

	return cmd
}

func updateCmd() *cobra.Command {
	var (
		typ, amount, description, date, category string
		clearCategory                            bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a transaction",
		Example: `  tally update 42 --amount 15.75
  tally update 42 --type income --category Salary
  tally update 42 --clear-category`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()

			id, err := validation.ParseID(args[0], "Transaction ID")
			if err != nil {
				return err
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			var u ledger.TransactionUpdate
			if flags.Changed("type") {
				parsed, err := validation.ParseType(typ)
				if err != nil {
					return err
				}
				u.Type = &parsed
			}
			if flags.Changed("amount") {
				parsed, err := validation.ParseAmount(amount)
				if err != nil {
					return err
				}
				u.Amount = &parsed
			}
			if flags.Changed("description") {
				u.Description = &description
			}
			if flags.Changed("date") {
				if u.Date, err = a.optionalDate(date, "date", false); err != nil {
					return err
				}
				if u.Date == nil {
					return validation.New(validation.DateRequired, "date", "Date is required")
				}
			}
			if flags.Changed("category") {
				categoryID, err := a.categoryID(ctx, category)
				if err != nil {
					return err
				}
				u.CategoryID = &categoryID
			}
			u.ClearCategory = clearCategory

			if err := a.ledger.Update(ctx, id, u); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Transaction updated successfully"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "", "expense or income")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "new amount")
	cmd.Flags().StringVar(&description, "description", "", "new description (empty removes it)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "new date")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category id or exact name")
	cmd.Flags().BoolVar(&clearCategory, "clear-category", false, "detach the category")
	cmd.MarkFlagsMutuallyExclusive("category", "clear-category")

	return cmd
}

func deleteCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			id, err := validation.ParseID(args[0], "Transaction ID")
			if err != nil {
				return err
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			tx, err := a.ledger.Get(ctx, id)
			if err != nil {
				return err
			}
			if tx == nil {
				return ledger.ErrTransactionNotFound
			}

			fmt.Fprintf(out, "%s  %s  %s\n", dates.ISO(tx.Date), cli.FormatAmount(tx.Amount, tx.Type, a.currency), tx.Description)
			ok, err := confirmed(cmd, confirm, "Delete this transaction?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, cli.SubtleStyle.Render("Delete canceled."))
				return nil
			}

			if err := a.ledger.Delete(ctx, id); err != nil {
				return err
			}

			fmt.Fprintln(out, cli.FormatSuccess("Transaction deleted successfully"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&confirm, "confirm", "y", false, "delete without asking")

	return cmd
}

func searchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Find transactions by description or category name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if _, err := validation.CheckLimit(limit, validation.MaxLimit); err != nil {
				return err
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			query := strings.Join(args, " ")
			txns, err := a.ledger.Search(ctx, query, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%s Results for %q", cli.SearchIcon, query)))
			printTransactions(out, txns, a.currency)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of results")

	return cmd
}

// typeFlag parses an optional --type value.
func typeFlag(s string) (*model.TransactionType, error) {
	if s == "" {
		return nil, nil
	}
	typ, err := validation.ParseType(s)
	if err != nil {
		return nil, err
	}
	return &typ, nil
}
