package model

import "time"

// TransactionType indicates which side of the ledger a transaction or category belongs to.
type TransactionType string

const (
	// TransactionTypeExpense represents money leaving the ledger.
	TransactionTypeExpense TransactionType = "expense"
	// TransactionTypeIncome represents money entering the ledger.
	TransactionTypeIncome TransactionType = "income"
)

// TransactionTypes lists the valid types in display order.
var TransactionTypes = []TransactionType{TransactionTypeExpense, TransactionTypeIncome}

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

func (t TransactionType) String() string {
	return string(t)
}

// Category groups transactions of a single type. The type is fixed at creation.
type Category struct {
	CreatedAt time.Time       `json:"created_at"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	ID        int64           `json:"id"`
}

// DefaultCategory describes a category seeded into a fresh database.
type DefaultCategory struct {
	Name string
	Type TransactionType
}

// DefaultCategories are created by the initial migrations.
var DefaultCategories = []DefaultCategory{
	{Name: "Food & Dining", Type: TransactionTypeExpense},
	{Name: "Transportation", Type: TransactionTypeExpense},
	{Name: "Shopping", Type: TransactionTypeExpense},
	{Name: "Entertainment", Type: TransactionTypeExpense},
	{Name: "Bills & Utilities", Type: TransactionTypeExpense},
	{Name: "Healthcare", Type: TransactionTypeExpense},
	{Name: "Education", Type: TransactionTypeExpense},
	{Name: "Travel", Type: TransactionTypeExpense},
	{Name: "Personal Care", Type: TransactionTypeExpense},
	{Name: "Other Expenses", Type: TransactionTypeExpense},
	{Name: "Salary", Type: TransactionTypeIncome},
	{Name: "Freelance", Type: TransactionTypeIncome},
	{Name: "Business", Type: TransactionTypeIncome},
	{Name: "Investment", Type: TransactionTypeIncome},
	{Name: "Gift", Type: TransactionTypeIncome},
	{Name: "Other Income", Type: TransactionTypeIncome},
}
