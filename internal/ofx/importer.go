package ofx

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
)

// Adder stores a single transaction.
type Adder interface {
	Add(ctx context.Context, in ledger.NewTransaction) (int64, error)
}

// ImportOptions controls how entries land in the ledger.
type ImportOptions struct {
	// OnEntry runs after each entry is handled, added or not.
	OnEntry func(Entry)
	// Categorize picks a category for an entry. Entries it declines fall
	// back to ExpenseCategory or IncomeCategory.
	Categorize      func(Entry) (int64, bool)
	ExpenseCategory *int64
	IncomeCategory  *int64
	DryRun          bool
}

// ImportResult counts what happened during an import.
type ImportResult struct {
	Failures []ImportFailure
	Added    int
	Skipped  int
}

// ImportFailure records an entry the ledger rejected.
type ImportFailure struct {
	Err   error
	Entry Entry
}

// Import adds entries to the ledger one by one. Rejected entries are
// collected in the result and do not stop the import.
func Import(ctx context.Context, adder Adder, entries []Entry, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("import canceled: %w", err)
		}

		if opts.DryRun {
			result.Skipped++
		} else if _, err := adder.Add(ctx, toNewTransaction(entry, opts)); err != nil {
			slog.Warn("Failed to import entry", "fitid", entry.FITID, "error", err)
			result.Failures = append(result.Failures, ImportFailure{Entry: entry, Err: err})
		} else {
			result.Added++
		}

		if opts.OnEntry != nil {
			opts.OnEntry(entry)
		}
	}

	slog.Info("Imported OFX entries",
		"added", result.Added,
		"failed", len(result.Failures),
		"dry_run", opts.DryRun)

	return result, nil
}

func toNewTransaction(e Entry, opts ImportOptions) ledger.NewTransaction {
	date := e.Date
	in := ledger.NewTransaction{
		Date:        &date,
		Amount:      e.Amount,
		Type:        e.Type,
		Description: e.Description,
	}
	if opts.Categorize != nil {
		if id, ok := opts.Categorize(e); ok {
			in.CategoryID = &id
			return in
		}
	}
	switch e.Type {
	case model.TransactionTypeExpense:
		in.CategoryID = opts.ExpenseCategory
	case model.TransactionTypeIncome:
		in.CategoryID = opts.IncomeCategory
	}
	return in
}
