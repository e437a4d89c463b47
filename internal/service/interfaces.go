// Package service defines the contracts shared between the ledger and its collaborators.
package service

import (
	"context"
	"database/sql"
	"time"
)

// Querier is the relational capability set the ledger needs from a store.
type Querier interface {
	// Query returns the rows produced by a statement.
	Query(ctx context.Context, stmt string, args ...any) (*sql.Rows, error)
	// QueryRow returns at most one row.
	QueryRow(ctx context.Context, stmt string, args ...any) *sql.Row
	// Insert executes an insert and returns the generated id.
	Insert(ctx context.Context, stmt string, args ...any) (int64, error)
	// Update executes a statement and returns the number of affected rows.
	Update(ctx context.Context, stmt string, args ...any) (int64, error)
}

// Store is a Querier that can also run a group of statements atomically.
type Store interface {
	Querier
	// WithTx runs fn inside a transaction. The transaction is committed when fn
	// returns nil and rolled back otherwise.
	WithTx(ctx context.Context, fn func(q Querier) error) error
}

// RetryOptions configures retry behavior for calls to external services.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
