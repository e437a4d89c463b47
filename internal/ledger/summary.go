package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/dates"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// Summarize totals income and expenses between the optional inclusive bounds.
func (l *Ledger) Summarize(ctx context.Context, start, end *time.Time) (*model.TransactionSummary, error) {
	where, args := dateBounds("transaction_date", start, end)

	rows, err := l.store.Query(ctx, `SELECT type, COUNT(*), COALESCE(SUM(amount), 0)
		FROM transactions`+where+` GROUP BY type`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var (
		income, expenses          = decimal.Zero, decimal.Zero
		incomeCount, expenseCount int
	)
	for rows.Next() {
		var (
			typ   model.TransactionType
			count int
			total decimal.Decimal
		)
		if err := rows.Scan(&typ, &count, &total); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		switch typ {
		case model.TransactionTypeIncome:
			income, incomeCount = total.Round(2), count
		case model.TransactionTypeExpense:
			expenses, expenseCount = total.Round(2), count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summary: %w", err)
	}

	summary := model.NewTransactionSummary(PeriodLabel(start, end), income, expenses, incomeCount, expenseCount)
	return &summary, nil
}

// CategorySummary aggregates categorized transactions per category, largest total first.
func (l *Ledger) CategorySummary(ctx context.Context, start, end *time.Time, typ *model.TransactionType) ([]model.CategorySummary, error) {
	where, args := dateBounds("t.transaction_date", start, end)
	if typ != nil {
		if where == "" {
			where = " WHERE t.type = ?"
		} else {
			where += " AND t.type = ?"
		}
		args = append(args, string(*typ))
	}

	rows, err := l.store.Query(ctx, `SELECT c.id, c.name, c.type, COUNT(t.id), SUM(t.amount), AVG(t.amount)
		FROM transactions t JOIN categories c ON t.category_id = c.id`+where+`
		GROUP BY c.id, c.name, c.type
		ORDER BY SUM(t.amount) DESC, c.name`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize categories: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var summaries []model.CategorySummary
	for rows.Next() {
		var s model.CategorySummary
		if err := rows.Scan(&s.CategoryID, &s.Name, &s.Type, &s.TransactionCount, &s.TotalAmount, &s.AverageAmount); err != nil {
			return nil, fmt.Errorf("failed to scan category summary: %w", err)
		}
		s.TotalAmount = s.TotalAmount.Round(2)
		s.AverageAmount = s.AverageAmount.Round(2)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category summary: %w", err)
	}

	return summaries, nil
}

// PeriodLabel describes an optional window the way summaries label it.
func PeriodLabel(start, end *time.Time) string {
	switch {
	case start != nil && end != nil && dates.Day(*start).Equal(dates.Day(*end)):
		return dates.ISO(*start)
	case start != nil && end != nil:
		return dates.ISO(*start) + " to " + dates.ISO(*end)
	case start != nil:
		return "From " + dates.ISO(*start)
	case end != nil:
		return "Until " + dates.ISO(*end)
	default:
		return "All time"
	}
}

func dateBounds(column string, start, end *time.Time) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if start != nil {
		clauses = append(clauses, column+" >= ?")
		args = append(args, dates.ISO(*start))
	}
	if end != nil {
		clauses = append(clauses, column+" <= ?")
		args = append(args, dates.ISO(*end))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
