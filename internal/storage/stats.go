package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"
)

// Stats describes the contents of the database file.
type Stats struct {
	EarliestDate     *time.Time
	LatestDate       *time.Time
	Path             string
	Transactions     int
	Categories       int
	FileSize         int64
	SchemaVersion    int
	UncategorizedTxn int
}

// Stats collects row counts, the span of transaction dates and the file size.
func (s *SQLiteStorage) Stats(ctx context.Context) (*Stats, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	stats := &Stats{Path: s.dbPath}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&stats.Transactions); err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&stats.Categories); err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions WHERE category_id IS NULL").Scan(&stats.UncategorizedTxn); err != nil {
		return nil, fmt.Errorf("failed to count uncategorized transactions: %w", err)
	}

	// MIN/MAX lose the column's declared type, so they come back as text.
	var earliest, latest sql.NullString
	if err := s.db.QueryRowContext(ctx,
		"SELECT MIN(transaction_date), MAX(transaction_date) FROM transactions").Scan(&earliest, &latest); err != nil {
		return nil, fmt.Errorf("failed to get date range: %w", err)
	}
	stats.EarliestDate = parseStoredDate(earliest)
	stats.LatestDate = parseStoredDate(latest)

	version, err := s.SchemaVersion(ctx)
	if err != nil {
		return nil, err
	}
	stats.SchemaVersion = version

	if info, err := os.Stat(s.dbPath); err == nil {
		stats.FileSize = info.Size()
	}

	return stats, nil
}

func parseStoredDate(v sql.NullString) *time.Time {
	if !v.Valid || len(v.String) < len("2006-01-02") {
		return nil
	}
	d, err := time.Parse("2006-01-02", v.String[:10])
	if err != nil {
		return nil
	}
	return &d
}
