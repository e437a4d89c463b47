package ledger

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/dates"
	"github.com/Veraticus/tally/internal/model"
)

// sqlTime accepts both the driver's parsed time values and raw text columns.
type sqlTime struct {
	Time  time.Time
	Valid bool
}

var storedTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999-07:00",
	dates.ISOLayout,
}

func (s *sqlTime) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		s.Time, s.Valid = time.Time{}, false
		return nil
	case time.Time:
		s.Time, s.Valid = v, true
		return nil
	case []byte:
		return s.parse(string(v))
	case string:
		return s.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into time", value)
	}
}

func (s *sqlTime) parse(v string) error {
	v = strings.TrimSpace(v)
	for _, layout := range storedTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			s.Time, s.Valid = t, true
			return nil
		}
	}
	return fmt.Errorf("unrecognized time value %q", v)
}

const transactionColumns = `t.id, t.type, t.amount, t.category_id, t.description,
	t.transaction_date, t.created_at, t.updated_at, c.name`

const transactionFrom = `FROM transactions t LEFT JOIN categories c ON t.category_id = c.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var (
		txn          model.Transaction
		categoryID   sql.NullInt64
		description  sql.NullString
		categoryName sql.NullString
		date         sqlTime
		createdAt    sqlTime
		updatedAt    sqlTime
	)

	if err := row.Scan(&txn.ID, &txn.Type, &txn.Amount, &categoryID, &description,
		&date, &createdAt, &updatedAt, &categoryName); err != nil {
		return nil, err
	}

	if categoryID.Valid {
		id := categoryID.Int64
		txn.CategoryID = &id
	}
	txn.Amount = txn.Amount.Round(2)
	txn.Description = description.String
	txn.CategoryName = categoryName.String
	txn.Date = dates.Day(date.Time)
	txn.CreatedAt = createdAt.Time
	txn.UpdatedAt = updatedAt.Time

	return &txn, nil
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

func scanCategory(row rowScanner) (*model.Category, error) {
	var (
		category  model.Category
		createdAt sqlTime
	)
	if err := row.Scan(&category.ID, &category.Name, &category.Type, &createdAt); err != nil {
		return nil, err
	}
	category.CreatedAt = createdAt.Time
	return &category, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil || *id == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
