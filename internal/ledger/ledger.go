// Package ledger records transactions and categories and answers aggregate queries over them.
//
// Every mutating operation validates its input and then runs inside a single store
// transaction, so a failed call never leaves partial state behind.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/tally/internal/dates"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
)

// Ledger errors. Validation failures are reported as *validation.Error instead.
var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryInUse        = errors.New("category is being used by transactions and cannot be deleted")
	ErrCategoryExists       = errors.New("category name already exists")
	ErrCategoryTypeMismatch = errors.New("category type doesn't match transaction type")
	ErrNoUpdates            = errors.New("no updates provided")
)

// CategoryMismatchError reports an attempt to attach a category of the other type.
type CategoryMismatchError struct {
	CategoryType    model.TransactionType
	TransactionType model.TransactionType
}

func (e *CategoryMismatchError) Error() string {
	return fmt.Sprintf("category type (%s) doesn't match transaction type (%s)", e.CategoryType, e.TransactionType)
}

func (e *CategoryMismatchError) Unwrap() error {
	return ErrCategoryTypeMismatch
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the clock used to default transaction dates.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// Ledger owns reads and writes of transactions and categories.
type Ledger struct {
	store service.Store
	now   func() time.Time
}

// New creates a ledger backed by store.
func New(store service.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Ledger) today() time.Time {
	return dates.Day(l.now())
}
