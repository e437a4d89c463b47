package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single recorded expense or income.
type Transaction struct {
	Date         time.Time       `json:"date"` // calendar date, time component is always midnight
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	CategoryID   *int64          `json:"category_id,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Type         TransactionType `json:"type"`
	CategoryName string          `json:"category_name,omitempty"`
	Description  string          `json:"description,omitempty"`
	ID           int64           `json:"id"`
}

// HasCategory reports whether the transaction is attached to a category.
func (t *Transaction) HasCategory() bool {
	return t.CategoryID != nil
}

// SignedAmount returns the amount negated for expenses.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
