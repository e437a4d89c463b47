package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/tally/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements service.Store on top of a SQLite database file.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage opens (creating if needed) the database at dbPath.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection serializes writers; SQLite gains nothing from more.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Path returns the database file location.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// NewCheckpointManager creates a new checkpoint manager for this storage instance.
func (s *SQLiteStorage) NewCheckpointManager() (*CheckpointManager, error) {
	return NewCheckpointManager(s.db, s.dbPath)
}

// Query implements service.Querier.
func (s *SQLiteStorage) Query(ctx context.Context, stmt string, args ...any) (*sql.Rows, error) {
	return query(ctx, s.db, stmt, args...)
}

// QueryRow implements service.Querier.
func (s *SQLiteStorage) QueryRow(ctx context.Context, stmt string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, stmt, args...)
}

// Insert implements service.Querier.
func (s *SQLiteStorage) Insert(ctx context.Context, stmt string, args ...any) (int64, error) {
	return insert(ctx, s.db, stmt, args...)
}

// Update implements service.Querier.
func (s *SQLiteStorage) Update(ctx context.Context, stmt string, args ...any) (int64, error) {
	return update(ctx, s.db, stmt, args...)
}

// WithTx implements service.Store.
func (s *SQLiteStorage) WithTx(ctx context.Context, fn func(q service.Querier) error) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			slog.Error("failed to rollback transaction", "error", rbErr)
		}
	}()

	if err := fn(&sqliteTransaction{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// sqliteTransaction exposes a sql.Tx as a service.Querier.
type sqliteTransaction struct {
	tx *sql.Tx
}

func (t *sqliteTransaction) Query(ctx context.Context, stmt string, args ...any) (*sql.Rows, error) {
	return query(ctx, t.tx, stmt, args...)
}

func (t *sqliteTransaction) QueryRow(ctx context.Context, stmt string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, stmt, args...)
}

func (t *sqliteTransaction) Insert(ctx context.Context, stmt string, args ...any) (int64, error) {
	return insert(ctx, t.tx, stmt, args...)
}

func (t *sqliteTransaction) Update(ctx context.Context, stmt string, args ...any) (int64, error) {
	return update(ctx, t.tx, stmt, args...)
}

// queryable is satisfied by both *sql.DB and *sql.Tx.
type queryable interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func query(ctx context.Context, q queryable, stmt string, args ...any) (*sql.Rows, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	slog.Debug("executing query", "statement", stmt, "args", len(args))
	return q.QueryContext(ctx, stmt, args...)
}

func insert(ctx context.Context, q queryable, stmt string, args ...any) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	result, err := q.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return id, nil
}

func update(ctx context.Context, q queryable, stmt string, args ...any) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	result, err := q.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
