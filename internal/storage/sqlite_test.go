package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Veraticus/tally/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestNewSQLiteStorage_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "ledger.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
}

func TestSQLiteStorage_InsertQueryUpdate(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	id, err := store.Insert(ctx, `INSERT INTO categories (name, type) VALUES (?, ?)`, "Coffee", "expense")
	require.NoError(t, err)
	assert.Positive(t, id)

	var name string
	require.NoError(t, store.QueryRow(ctx, `SELECT name FROM categories WHERE id = ?`, id).Scan(&name))
	assert.Equal(t, "Coffee", name)

	n, err := store.Update(ctx, `UPDATE categories SET name = ? WHERE id = ?`, "Coffee Shops", id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.Update(ctx, `DELETE FROM categories WHERE id = ?`, id+1000)
	require.NoError(t, err)
	assert.Zero(t, n)

	rows, err := store.Query(ctx, `SELECT name FROM categories WHERE name LIKE ?`, "Coffee%")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"Coffee Shops"}, names)
}

func TestSQLiteStorage_WithTxCommitsAndRollsBack(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	err := store.WithTx(ctx, func(q service.Querier) error {
		_, err := q.Insert(ctx, `INSERT INTO categories (name, type) VALUES (?, ?)`, "Committed", "income")
		return err
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.WithTx(ctx, func(q service.Querier) error {
		if _, err := q.Insert(ctx, `INSERT INTO categories (name, type) VALUES (?, ?)`, "Rolled Back", "income"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, store.QueryRow(ctx,
		`SELECT COUNT(*) FROM categories WHERE name IN ('Committed', 'Rolled Back')`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSQLiteStorage_Constraints(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		name string
		stmt string
		args []any
	}{
		{
			name: "non positive amount",
			stmt: `INSERT INTO transactions (type, amount, transaction_date) VALUES (?, ?, ?)`,
			args: []any{"expense", 0, "2024-01-01"},
		},
		{
			name: "unknown type",
			stmt: `INSERT INTO transactions (type, amount, transaction_date) VALUES (?, ?, ?)`,
			args: []any{"transfer", 5, "2024-01-01"},
		},
		{
			name: "missing category reference",
			stmt: `INSERT INTO transactions (type, amount, category_id, transaction_date) VALUES (?, ?, ?, ?)`,
			args: []any{"expense", 5, 9999, "2024-01-01"},
		},
		{
			name: "duplicate category name",
			stmt: `INSERT INTO categories (name, type) VALUES (?, ?)`,
			args: []any{"Salary", "income"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Insert(ctx, tt.stmt, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestSQLiteStorage_Stats(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Transactions)
	assert.Equal(t, 16, stats.Categories)
	assert.Nil(t, stats.EarliestDate)
	assert.Equal(t, ExpectedSchemaVersion, stats.SchemaVersion)

	for _, d := range []string{"2024-02-10", "2024-01-05", "2024-03-01"} {
		_, err := store.Insert(ctx,
			`INSERT INTO transactions (type, amount, transaction_date) VALUES ('expense', 10, ?)`, d)
		require.NoError(t, err)
	}

	stats, err = store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Transactions)
	assert.Equal(t, 3, stats.UncategorizedTxn)
	require.NotNil(t, stats.EarliestDate)
	require.NotNil(t, stats.LatestDate)
	assert.Equal(t, "2024-01-05", stats.EarliestDate.Format("2006-01-02"))
	assert.Equal(t, "2024-03-01", stats.LatestDate.Format("2006-01-02"))
}
