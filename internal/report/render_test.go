package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFormatSummary(t *testing.T) {
	s := model.NewTransactionSummary("2024-03-01 to 2024-03-31", dec("100"), dec("40"), 1, 2)

	want := strings.Join([]string{
		"Summary for: 2024-03-01 to 2024-03-31",
		"Total Income: +$100.00 (1 transactions)",
		"Total Expenses: -$40.00 (2 transactions)",
		"Net Balance: $+60.00",
		"Total Transactions: 3",
	}, "\n")
	assert.Equal(t, want, FormatSummary(s))

	negative := model.NewTransactionSummary("", dec("0"), dec("12.5"), 0, 1)
	assert.Contains(t, FormatSummary(negative, WithCurrency("€")), "Net Balance: €-12.50")
	assert.NotContains(t, FormatSummary(negative), "Summary for:")
}

func TestFormatTransaction(t *testing.T) {
	tests := []struct {
		name string
		txn  model.Transaction
		want string
	}{
		{
			name: "expense with category and description",
			txn: model.Transaction{
				Date: day("2024-03-13"), Type: model.TransactionTypeExpense, Amount: dec("12.5"),
				CategoryName: "Food & Dining", Description: "Lunch",
			},
			want: "2024-03-13 | -$12.50 (Food & Dining) - Lunch",
		},
		{
			name: "bare income",
			txn:  model.Transaction{Date: day("2024-03-01"), Type: model.TransactionTypeIncome, Amount: dec("2500")},
			want: "2024-03-01 | +$2500.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTransaction(tt.txn))
		})
	}
}

func TestFormatCategory(t *testing.T) {
	c := model.CategorySummary{
		Name: "Travel", Type: model.TransactionTypeExpense,
		TotalAmount: dec("300"), AverageAmount: dec("100"), TransactionCount: 3,
	}
	assert.Equal(t, "Travel: -$300.00 (3 transactions, avg: $100.00)", FormatCategory(c))
}

func TestRender_Daily(t *testing.T) {
	r := &Daily{
		Date:    day("2024-03-13"),
		Summary: model.NewTransactionSummary("2024-03-13", dec("0"), dec("12.50"), 0, 1),
		Transactions: []model.Transaction{{
			Date: day("2024-03-13"), Type: model.TransactionTypeExpense, Amount: dec("12.50"), Description: "Lunch",
		}},
		TransactionCount: 1,
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(t, "📅 Daily Report - Wednesday, March 13, 2024", lines[0])
	assert.Equal(t, strings.Repeat("=", 50), lines[1])
	assert.Contains(t, buf.String(), "📋 Transactions:\n"+strings.Repeat("-", 30)+"\n2024-03-13 | -$12.50 - Lunch")
	assert.NotContains(t, buf.String(), "Category Breakdown")
}

func TestRender_Weekly(t *testing.T) {
	r := &Weekly{Start: day("2024-03-11"), End: day("2024-03-17")}
	for i := range r.Days {
		d := r.Start.AddDate(0, 0, i)
		r.Days[i] = DayBreakdown{Date: d, DayName: d.Weekday().String()}
	}
	r.Days[2].Summary = model.NewTransactionSummary("", dec("5"), dec("7.25"), 1, 1)

	text := Text(r)
	assert.Contains(t, text, "📅 Weekly Report - 2024-03-11 to 2024-03-17")
	assert.Contains(t, text, "03/13/24: Income: +$5.00, Expenses: -$7.25, Net: $-2.25")
	assert.Contains(t, text, "03/11/24: Income: +$0.00, Expenses: -$0.00, Net: $+0.00")
}

func TestRender_MonthlyTopCategories(t *testing.T) {
	r := &Monthly{
		Start: day("2024-02-01"), End: day("2024-02-29"), Year: 2024, Month: time.February,
		Weeks: []WeekBreakdown{{Number: 5, Start: day("2024-02-29"), End: day("2024-02-29")}},
	}
	for i := 0; i < 12; i++ {
		r.Categories = append(r.Categories, model.CategorySummary{
			Name: "Cat" + string(rune('A'+i)), Type: model.TransactionTypeExpense,
		})
	}

	text := Text(r)
	assert.Contains(t, text, "📅 Monthly Report - February 2024")
	assert.Contains(t, text, "Week 5 (02/29/24 - 02/29/24): Net: $+0.00")
	assert.Contains(t, text, "CatJ:")
	assert.NotContains(t, text, "CatK:")
}

func TestRender_Yearly(t *testing.T) {
	r := &Yearly{Year: 2024}
	for i := range r.Months {
		r.Months[i].Month = time.Month(i + 1)
	}
	r.Months[11].Summary = model.NewTransactionSummary("", dec("500"), dec("0"), 1, 0)

	text := Text(r)
	assert.Contains(t, text, "📅 Yearly Report - 2024")
	assert.Contains(t, text, "January: Net: $+0.00")
	assert.Contains(t, text, "December: Net: $+500.00")
}

func TestRender_Category(t *testing.T) {
	assert.Equal(t, "❌ Error: Category not found", Text(&CategoryReport{}))

	r := &CategoryReport{
		Found:            true,
		Category:         &model.Category{Name: "Salary", Type: model.TransactionTypeIncome},
		TotalAmount:      dec("3000"),
		AverageAmount:    dec("1500"),
		TransactionCount: 2,
		DateRange:        "All time",
	}
	text := Text(r)
	assert.Contains(t, text, "📊 Category Report - Salary (Income)")
	assert.Contains(t, text, "Total Amount: $3000.00\nTransaction Count: 2\nAverage Amount: $1500.00\nDate Range: All time")
}

func TestRender_Comparison(t *testing.T) {
	r := &Comparison{
		Period1: PeriodData{Start: day("2024-01-01"), End: day("2024-01-31")},
		Period2: PeriodData{Start: day("2024-02-01"), End: day("2024-02-29")},
		Changes: Changes{
			IncomeChange:         dec("200"),
			ExpenseChange:        dec("-25"),
			NetChange:            dec("225"),
			IncomeChangePercent:  decimal.Zero,
			ExpenseChangePercent: dec("-33.333"),
		},
	}

	text := Text(r)
	assert.Contains(t, text, "Period 1: 2024-01-01 to 2024-01-31")
	assert.Contains(t, text, "Income Change: $+200.00 (+0.0%)")
	assert.Contains(t, text, "Expense Change: $-25.00 (-33.3%)")
	assert.Contains(t, text, "Net Change: $+225.00")
}
