package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/dates"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/report"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/Veraticus/tally/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app bundles the ledger and everything built on top of it for one command run.
type app struct {
	store    *storage.SQLiteStorage
	ledger   *ledger.Ledger
	reports  *report.Generator
	resolver *dates.Resolver
	currency string
}

// openApp opens and migrates the configured database.
func openApp(ctx context.Context) (*app, error) {
	store, err := openStorage(ctx)
	if err != nil {
		return nil, err
	}

	l := ledger.New(store)
	return &app{
		store:    store,
		ledger:   l,
		reports:  report.NewGenerator(l),
		resolver: dates.NewResolver(),
		currency: currency(),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		slog.Warn("failed to close database", "error", err)
	}
}

func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.DatabasePath(viper.GetViper())

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("opened ledger", "path", dbPath)
	return store, nil
}

func currency() string {
	if symbol := viper.GetString("currency.symbol"); symbol != "" {
		return symbol
	}
	return "$"
}

// optionalDate resolves a date flag, returning nil when the flag is empty.
func (a *app) optionalDate(value, flag string, allowFuture bool) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	d, err := a.resolver.ParseDate(value, allowFuture)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", flag, err)
	}
	return &d, nil
}

// window resolves --start/--end, or a --period expression such as "last month".
// At most one of the two forms may be given.
func (a *app) window(period, start, end string) (*time.Time, *time.Time, error) {
	if period != "" {
		if start != "" || end != "" {
			return nil, nil, fmt.Errorf("--period cannot be combined with --start or --end")
		}
		rng, err := a.resolver.ResolveWindow(period)
		if err != nil {
			return nil, nil, err
		}
		return &rng.Start, &rng.End, nil
	}

	if start != "" && end != "" {
		rng, err := a.resolver.ParseRange(start, end)
		if err != nil {
			return nil, nil, err
		}
		return &rng.Start, &rng.End, nil
	}

	s, err := a.optionalDate(start, "start", true)
	if err != nil {
		return nil, nil, err
	}
	e, err := a.optionalDate(end, "end", true)
	if err != nil {
		return nil, nil, err
	}
	return s, e, nil
}

// categoryID resolves a category flag given as an id or an exact name.
func (a *app) categoryID(ctx context.Context, value string) (int64, error) {
	value = strings.TrimSpace(value)
	if id, err := validation.ParseID(value, "Category ID"); err == nil {
		return id, nil
	}

	category, err := a.ledger.GetCategoryByName(ctx, value)
	if err != nil {
		return 0, err
	}
	if category == nil {
		return 0, ledger.ErrCategoryNotFound
	}
	return category.ID, nil
}

func printTransactions(w io.Writer, txns []model.Transaction, symbol string) {
	if len(txns) == 0 {
		fmt.Fprintln(w, cli.SubtleStyle.Render(cli.EmptyIcon+" No transactions found."))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join([]string{
		cli.BoldStyle.Render("ID"),
		cli.BoldStyle.Render("DATE"),
		cli.BoldStyle.Render("AMOUNT"),
		cli.BoldStyle.Render("CATEGORY"),
		cli.BoldStyle.Render("DESCRIPTION"),
	}, "\t"))

	for _, tx := range txns {
		category := tx.CategoryName
		if category == "" {
			category = "Uncategorized"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			tx.ID,
			dates.ISO(tx.Date),
			cli.FormatAmount(tx.Amount, tx.Type, symbol),
			category,
			tx.Description)
	}
	_ = tw.Flush()
}

func printSummary(w io.Writer, label string, s *model.TransactionSummary, symbol string) {
	fmt.Fprintln(w, cli.FormatTitle("Summary: "+label))
	fmt.Fprintf(w, "Income:       %s\n", cli.FormatAmount(s.TotalIncome, model.TransactionTypeIncome, symbol))
	fmt.Fprintf(w, "Expenses:     %s\n", cli.FormatAmount(s.TotalExpenses, model.TransactionTypeExpense, symbol))
	fmt.Fprintf(w, "Net:          %s\n", signedMoney(s.NetBalance, symbol))
	fmt.Fprintf(w, "Transactions: %d\n", s.TransactionCount)
}

func signedMoney(amount decimal.Decimal, symbol string) string {
	if amount.IsNegative() {
		return "-" + symbol + amount.Abs().StringFixed(2)
	}
	return symbol + amount.StringFixed(2)
}

func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

// confirmed asks on the command's own streams unless --confirm was passed.
func confirmed(cmd *cobra.Command, skip bool, question string) (bool, error) {
	if skip {
		return true, nil
	}
	return cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).Confirm(cmd.Context(), question)
}
