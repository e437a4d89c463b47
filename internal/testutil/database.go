// Package testutil provides database helpers shared by package tests.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/Veraticus/tally/internal/storage"
)

// NewStorage creates a migrated SQLite database in a temporary directory.
// The database is closed when the test finishes.
func NewStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// CategoryID looks up a seeded category by name or fails the test.
func CategoryID(t *testing.T, store *storage.SQLiteStorage, name string) int64 {
	t.Helper()

	var id int64
	err := store.QueryRow(context.Background(), "SELECT id FROM categories WHERE name = ?", name).Scan(&id)
	if err != nil {
		t.Fatalf("category %q not found: %v", name, err)
	}
	return id
}

// Row is a transaction inserted directly into the store, bypassing ledger validation.
type Row struct {
	CategoryID  *int64
	Type        string
	Amount      string
	Description string
	Date        string // YYYY-MM-DD
}

// InsertRows writes rows straight into the transactions table and returns their ids.
func InsertRows(t *testing.T, store *storage.SQLiteStorage, rows ...Row) []int64 {
	t.Helper()

	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		var category sql.NullInt64
		if r.CategoryID != nil {
			category = sql.NullInt64{Int64: *r.CategoryID, Valid: true}
		}

		id, err := store.Insert(context.Background(),
			`INSERT INTO transactions (type, amount, category_id, description, transaction_date) VALUES (?, ?, ?, ?, ?)`,
			r.Type, r.Amount, category, r.Description, r.Date)
		if err != nil {
			t.Fatalf("failed to insert row %+v: %v", r, err)
		}
		ids = append(ids, id)
	}
	return ids
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
