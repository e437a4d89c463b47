package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/tally/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_ReachesExpectedVersion(t *testing.T) {
	store := createTestStorage(t)

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
	assert.Equal(t, len(migrations), ExpectedSchemaVersion)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		store, err := NewSQLiteStorage(dbPath)
		require.NoError(t, err)
		require.NoError(t, store.Migrate(ctx))
		require.NoError(t, store.Close())
	}

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	var count int
	require.NoError(t, store.QueryRow(ctx, "SELECT COUNT(*) FROM categories").Scan(&count))
	assert.Equal(t, len(model.DefaultCategories), count)
}

func TestMigrate_SeedsDefaultCategories(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	rows, err := store.Query(ctx, "SELECT name, type FROM categories ORDER BY id")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var got []model.DefaultCategory
	for rows.Next() {
		var c model.DefaultCategory
		require.NoError(t, rows.Scan(&c.Name, &c.Type))
		got = append(got, c)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, model.DefaultCategories, got)
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	store := createTestStorage(t)

	for _, index := range []string{"idx_transactions_date", "idx_transactions_type", "idx_transactions_category"} {
		t.Run(index, func(t *testing.T) {
			var n int
			err := store.db.QueryRow(
				`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = ?`, index).Scan(&n)
			require.NoError(t, err)
			assert.Equal(t, 1, n)
		})
	}
}
