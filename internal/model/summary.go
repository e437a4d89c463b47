package model

import "github.com/shopspring/decimal"

// TransactionSummary aggregates a date window by transaction type.
type TransactionSummary struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	NetBalance       decimal.Decimal `json:"net_balance"`
	Period           string          `json:"period"`
	IncomeCount      int             `json:"income_count"`
	ExpenseCount     int             `json:"expense_count"`
	TransactionCount int             `json:"transaction_count"`
}

// NewTransactionSummary builds a summary and derives the net balance and total count.
func NewTransactionSummary(period string, income, expenses decimal.Decimal, incomeCount, expenseCount int) TransactionSummary {
	return TransactionSummary{
		Period:           period,
		TotalIncome:      income,
		TotalExpenses:    expenses,
		NetBalance:       income.Sub(expenses),
		IncomeCount:      incomeCount,
		ExpenseCount:     expenseCount,
		TransactionCount: incomeCount + expenseCount,
	}
}

// CategorySummary aggregates the transactions of one category over a window.
type CategorySummary struct {
	Name             string          `json:"name"`
	Type             TransactionType `json:"type"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	AverageAmount    decimal.Decimal `json:"average_amount"`
	CategoryID       int64           `json:"category_id"`
	TransactionCount int             `json:"transaction_count"`
}
