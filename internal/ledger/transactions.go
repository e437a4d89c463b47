package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/dates"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
	"github.com/Veraticus/tally/internal/validation"
	"github.com/shopspring/decimal"
)

// DefaultSearchLimit caps search results when the caller gives no limit.
const DefaultSearchLimit = 50

// NewTransaction holds the fields of a transaction to add.
type NewTransaction struct {
	Date        *time.Time // nil means today
	CategoryID  *int64     // nil or 0 means uncategorized
	Amount      decimal.Decimal
	Type        model.TransactionType
	Description string
}

// TransactionUpdate lists the fields to change. Nil fields are left alone.
type TransactionUpdate struct {
	Type        *model.TransactionType
	Amount      *decimal.Decimal
	Description *string // an empty string removes the description
	Date        *time.Time
	// CategoryID attaches a category. A value <= 0 is a sentinel that clears
	// the category, the same as ClearCategory.
	CategoryID *int64
	// ClearCategory detaches the category. It takes precedence over CategoryID.
	ClearCategory bool
}

// IsEmpty reports whether the update changes nothing.
func (u TransactionUpdate) IsEmpty() bool {
	return u.Type == nil && u.Amount == nil && u.Description == nil &&
		u.Date == nil && u.CategoryID == nil && !u.ClearCategory
}

func (u TransactionUpdate) clearsCategory() bool {
	return u.ClearCategory || (u.CategoryID != nil && *u.CategoryID <= 0)
}

// Order selects the sort order of List.
type Order int

// Supported orders.
const (
	OrderDateDesc Order = iota
	OrderDateAsc
	OrderCreatedDesc
	OrderAmountDesc
	OrderAmountAsc
)

var orderClauses = map[Order]string{
	OrderDateDesc:    "t.transaction_date DESC, t.id DESC",
	OrderDateAsc:     "t.transaction_date ASC, t.id ASC",
	OrderCreatedDesc: "t.created_at DESC, t.id DESC",
	OrderAmountDesc:  "t.amount DESC, t.id DESC",
	OrderAmountAsc:   "t.amount ASC, t.id ASC",
}

// Filter narrows List results. All set fields must match.
type Filter struct {
	Start      *time.Time
	End        *time.Time
	Type       *model.TransactionType
	CategoryID *int64
	Limit      int // 0 returns every match
	Offset     int
	OrderBy    Order
}

// Add validates and stores a transaction, returning its id.
func (l *Ledger) Add(ctx context.Context, in NewTransaction) (int64, error) {
	typ, err := validation.ParseType(string(in.Type))
	if err != nil {
		return 0, err
	}
	amount, err := validation.CheckAmount(in.Amount)
	if err != nil {
		return 0, err
	}
	description, err := validation.CheckDescription(in.Description)
	if err != nil {
		return 0, err
	}

	date := l.today()
	if in.Date != nil {
		date = dates.Day(*in.Date)
	}

	var id int64
	err = l.store.WithTx(ctx, func(q service.Querier) error {
		if categoryID := nullableID(in.CategoryID); categoryID.Valid {
			if _, err := requireCategory(ctx, q, categoryID.Int64, typ); err != nil {
				return err
			}
		}

		var insertErr error
		id, insertErr = q.Insert(ctx,
			`INSERT INTO transactions (type, amount, category_id, description, transaction_date)
			 VALUES (?, ?, ?, ?, ?)`,
			string(typ), amount, nullableID(in.CategoryID), nullableString(description), dates.ISO(date))
		if insertErr != nil {
			return fmt.Errorf("failed to add transaction: %w", insertErr)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("Added transaction", "id", id, "type", typ, "amount", amount.StringFixed(2), "date", dates.ISO(date))
	return id, nil
}

// Get returns the transaction with the given id, or nil if there is none.
func (l *Ledger) Get(ctx context.Context, id int64) (*model.Transaction, error) {
	return getTransaction(ctx, l.store, id)
}

func getTransaction(ctx context.Context, q service.Querier, id int64) (*model.Transaction, error) {
	row := q.QueryRow(ctx, `SELECT `+transactionColumns+` `+transactionFrom+` WHERE t.id = ?`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// Update applies a partial update. Only the supplied fields change and
// updated_at is refreshed. Changing the type re-checks the attached category.
func (l *Ledger) Update(ctx context.Context, id int64, u TransactionUpdate) error {
	var (
		sets []string
		args []any
		typ  model.TransactionType
	)

	if u.Type != nil {
		parsed, err := validation.ParseType(string(*u.Type))
		if err != nil {
			return err
		}
		typ = parsed
		sets = append(sets, "type = ?")
		args = append(args, string(typ))
	}

	if u.Amount != nil {
		amount, err := validation.CheckAmount(*u.Amount)
		if err != nil {
			return err
		}
		sets = append(sets, "amount = ?")
		args = append(args, amount)
	}

	if u.Description != nil {
		description, err := validation.CheckDescription(*u.Description)
		if err != nil {
			return err
		}
		sets = append(sets, "description = ?")
		args = append(args, nullableString(description))
	}

	if u.Date != nil {
		sets = append(sets, "transaction_date = ?")
		args = append(args, dates.ISO(*u.Date))
	}

	err := l.store.WithTx(ctx, func(q service.Querier) error {
		existing, err := getTransaction(ctx, q, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrTransactionNotFound
		}
		if u.IsEmpty() {
			return ErrNoUpdates
		}

		checkType := existing.Type
		if u.Type != nil {
			checkType = typ
		}

		switch {
		case u.clearsCategory():
			sets = append(sets, "category_id = NULL")
		case u.CategoryID != nil:
			if _, err := requireCategory(ctx, q, *u.CategoryID, checkType); err != nil {
				return err
			}
			sets = append(sets, "category_id = ?")
			args = append(args, *u.CategoryID)
		case existing.CategoryID != nil && checkType != existing.Type:
			if _, err := requireCategory(ctx, q, *existing.CategoryID, checkType); err != nil {
				return err
			}
		}

		sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
		args = append(args, id)

		// #nosec G202 - sets only contains fixed column assignments
		n, err := q.Update(ctx, `UPDATE transactions SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
		if err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		if n == 0 {
			return ErrTransactionNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Updated transaction", "id", id, "fields", len(sets)-1)
	return nil
}

// Delete removes a transaction permanently.
func (l *Ledger) Delete(ctx context.Context, id int64) error {
	err := l.store.WithTx(ctx, func(q service.Querier) error {
		n, err := q.Update(ctx, `DELETE FROM transactions WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}
		if n == 0 {
			return ErrTransactionNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Deleted transaction", "id", id)
	return nil
}

// List returns the transactions matching f.
func (l *Ledger) List(ctx context.Context, f Filter) ([]model.Transaction, error) {
	var (
		where []string
		args  []any
	)

	if f.Start != nil {
		where = append(where, "t.transaction_date >= ?")
		args = append(args, dates.ISO(*f.Start))
	}
	if f.End != nil {
		where = append(where, "t.transaction_date <= ?")
		args = append(args, dates.ISO(*f.End))
	}
	if f.Type != nil {
		where = append(where, "t.type = ?")
		args = append(args, string(*f.Type))
	}
	if f.CategoryID != nil {
		where = append(where, "t.category_id = ?")
		args = append(args, *f.CategoryID)
	}

	order, ok := orderClauses[f.OrderBy]
	if !ok {
		order = orderClauses[OrderDateDesc]
	}

	query := `SELECT ` + transactionColumns + ` ` + transactionFrom
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY ` + order

	switch {
	case f.Limit > 0:
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	case f.Offset > 0:
		query += ` LIMIT -1 OFFSET ?`
		args = append(args, f.Offset)
	}

	slog.Debug("listing transactions", "filters", len(where), "limit", f.Limit, "offset", f.Offset)

	rows, err := l.store.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	return scanTransactions(rows)
}

// ListByDate returns the transactions of a single day, most recently entered first.
func (l *Ledger) ListByDate(ctx context.Context, date time.Time) ([]model.Transaction, error) {
	day := dates.Day(date)
	return l.List(ctx, Filter{Start: &day, End: &day, OrderBy: OrderCreatedDesc})
}

// Recent returns the n most recently entered transactions.
func (l *Ledger) Recent(ctx context.Context, n int) ([]model.Transaction, error) {
	return l.List(ctx, Filter{Limit: n, OrderBy: OrderCreatedDesc})
}

// Search finds transactions whose description or category name contains query,
// ignoring case. A limit <= 0 uses DefaultSearchLimit.
func (l *Ledger) Search(ctx context.Context, query string, limit int) ([]model.Transaction, error) {
	q, err := validation.CheckSearchQuery(query)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	pattern := "%" + escapeLike(q) + "%"
	rows, err := l.store.Query(ctx, `SELECT `+transactionColumns+` `+transactionFrom+`
		WHERE t.description LIKE ? ESCAPE '\' OR c.name LIKE ? ESCAPE '\'
		ORDER BY t.transaction_date DESC, t.id DESC
		LIMIT ?`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search transactions: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	return scanTransactions(rows)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
