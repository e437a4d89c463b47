package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_Summarize(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()

	testutil.InsertRows(t, store,
		testutil.Row{Type: "expense", Amount: "25.00", Date: "2024-03-01"},
		testutil.Row{Type: "expense", Amount: "15.00", Date: "2024-03-02"},
		testutil.Row{Type: "income", Amount: "100.00", Date: "2024-03-02"},
		testutil.Row{Type: "expense", Amount: "99.99", Date: "2024-04-01"},
	)

	summary, err := l.Summarize(ctx, testutil.Ptr(day("2024-03-01")), testutil.Ptr(day("2024-03-31")))
	require.NoError(t, err)

	assert.Equal(t, "40.00", summary.TotalExpenses.StringFixed(2))
	assert.Equal(t, "100.00", summary.TotalIncome.StringFixed(2))
	assert.Equal(t, "60.00", summary.NetBalance.StringFixed(2))
	assert.Equal(t, 2, summary.ExpenseCount)
	assert.Equal(t, 1, summary.IncomeCount)
	assert.Equal(t, 3, summary.TransactionCount)
	assert.Equal(t, "2024-03-01 to 2024-03-31", summary.Period)

	empty, err := l.Summarize(ctx, testutil.Ptr(day("2023-01-01")), testutil.Ptr(day("2023-01-01")))
	require.NoError(t, err)
	assert.True(t, empty.TotalIncome.IsZero())
	assert.True(t, empty.NetBalance.IsZero())
	assert.Equal(t, 0, empty.TransactionCount)
	assert.Equal(t, "2023-01-01", empty.Period)

	all, err := l.Summarize(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "139.99", all.TotalExpenses.StringFixed(2))
	assert.Equal(t, "All time", all.Period)
}

func TestLedger_CategorySummary(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()
	food := testutil.CategoryID(t, store, "Food & Dining")
	travel := testutil.CategoryID(t, store, "Travel")
	salary := testutil.CategoryID(t, store, "Salary")

	testutil.InsertRows(t, store,
		testutil.Row{Type: "expense", Amount: "10.00", CategoryID: &food, Date: "2024-03-01"},
		testutil.Row{Type: "expense", Amount: "20.00", CategoryID: &food, Date: "2024-03-02"},
		testutil.Row{Type: "expense", Amount: "5.00", CategoryID: &travel, Date: "2024-03-02"},
		testutil.Row{Type: "income", Amount: "1000.00", CategoryID: &salary, Date: "2024-03-03"},
		testutil.Row{Type: "expense", Amount: "7.00", Date: "2024-03-03"},
	)

	summaries, err := l.CategorySummary(ctx, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "Salary", summaries[0].Name)
	assert.Equal(t, "Food & Dining", summaries[1].Name)
	assert.Equal(t, 2, summaries[1].TransactionCount)
	assert.Equal(t, "30.00", summaries[1].TotalAmount.StringFixed(2))
	assert.Equal(t, "15.00", summaries[1].AverageAmount.StringFixed(2))

	expense := model.TransactionTypeExpense
	expenses, err := l.CategorySummary(ctx, testutil.Ptr(day("2024-03-02")), nil, &expense)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, "Food & Dining", expenses[0].Name)
	assert.Equal(t, "20.00", expenses[0].TotalAmount.StringFixed(2))
	assert.Equal(t, "Travel", expenses[1].Name)
}

func TestPeriodLabel(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "All time", PeriodLabel(nil, nil))
	assert.Equal(t, "2024-01-01", PeriodLabel(&start, &start))
	assert.Equal(t, "2024-01-01 to 2024-01-31", PeriodLabel(&start, &end))
	assert.Equal(t, "From 2024-01-01", PeriodLabel(&start, nil))
	assert.Equal(t, "Until 2024-01-31", PeriodLabel(nil, &end))
}
