package report

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/dates"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/Veraticus/tally/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)

func newTestGenerator(t *testing.T) (*Generator, *storage.SQLiteStorage) {
	t.Helper()
	store := testutil.NewStorage(t)
	clock := func() time.Time { return fixedNow }
	l := ledger.New(store, ledger.WithClock(clock))
	return NewGenerator(l, WithClock(clock)), store
}

func day(s string) time.Time {
	d, err := dates.ParseISO(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestGenerator_Daily(t *testing.T) {
	g, store := newTestGenerator(t)
	food := testutil.CategoryID(t, store, "Food & Dining")

	testutil.InsertRows(t, store,
		testutil.Row{Type: "expense", Amount: "12.50", CategoryID: &food, Description: "Lunch", Date: "2024-03-13"},
		testutil.Row{Type: "income", Amount: "40.00", Description: "Refund", Date: "2024-03-13"},
		testutil.Row{Type: "expense", Amount: "99.00", Date: "2024-03-12"},
	)

	r, err := g.Daily(context.Background(), day("2024-03-13"))
	require.NoError(t, err)

	assert.Equal(t, KindDaily, r.Kind())
	assert.Equal(t, 2, r.TransactionCount)
	assert.Len(t, r.Transactions, 2)
	assert.Equal(t, "12.50", r.Summary.TotalExpenses.StringFixed(2))
	assert.Equal(t, "40.00", r.Summary.TotalIncome.StringFixed(2))
	require.Len(t, r.Categories, 1)
	assert.Equal(t, "Food & Dining", r.Categories[0].Name)
}

func TestGenerator_Weekly(t *testing.T) {
	g, store := newTestGenerator(t)

	testutil.InsertRows(t, store,
		testutil.Row{Type: "expense", Amount: "10.00", Date: "2024-03-11"},
		testutil.Row{Type: "expense", Amount: "5.00", Date: "2024-03-17"},
		testutil.Row{Type: "expense", Amount: "7.00", Date: "2024-03-18"},
	)

	r, err := g.Weekly(context.Background(), day("2024-03-13"))
	require.NoError(t, err)

	assert.Equal(t, day("2024-03-11"), r.Start)
	assert.Equal(t, day("2024-03-17"), r.End)
	assert.Len(t, r.Days, 7)
	assert.Equal(t, "Monday", r.Days[0].DayName)
	assert.Equal(t, "Sunday", r.Days[6].DayName)
	assert.Equal(t, 1, r.Days[0].TransactionCount)
	assert.Equal(t, 0, r.Days[3].TransactionCount)
	assert.Equal(t, "5.00", r.Days[6].Summary.TotalExpenses.StringFixed(2))
	assert.Equal(t, "15.00", r.Summary.TotalExpenses.StringFixed(2))
	assert.Len(t, r.Transactions, 2)
}

func TestGenerator_MonthlyWeeks(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		weeks    int
		lastFrom string
		lastTo   string
	}{
		{name: "leap february", date: "2024-02-10", weeks: 5, lastFrom: "2024-02-29", lastTo: "2024-02-29"},
		{name: "plain february", date: "2023-02-10", weeks: 4, lastFrom: "2023-02-22", lastTo: "2023-02-28"},
		{name: "thirty one days", date: "2024-03-13", weeks: 5, lastFrom: "2024-03-29", lastTo: "2024-03-31"},
		{name: "thirty days", date: "2024-04-30", weeks: 5, lastFrom: "2024-04-29", lastTo: "2024-04-30"},
	}

	g, _ := newTestGenerator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := g.Monthly(context.Background(), day(tt.date))
			require.NoError(t, err)
			require.Len(t, r.Weeks, tt.weeks)

			for i, w := range r.Weeks {
				assert.Equal(t, i+1, w.Number)
				assert.False(t, w.End.After(r.End))
				assert.LessOrEqual(t, int(w.End.Sub(w.Start).Hours()/24), 6)
			}
			assert.Equal(t, r.Start, r.Weeks[0].Start)

			last := r.Weeks[len(r.Weeks)-1]
			assert.Equal(t, day(tt.lastFrom), last.Start)
			assert.Equal(t, day(tt.lastTo), last.End)
		})
	}
}

func TestGenerator_MonthlyTotals(t *testing.T) {
	g, store := newTestGenerator(t)

	testutil.InsertRows(t, store,
		testutil.Row{Type: "income", Amount: "100.00", Date: "2024-03-01"},
		testutil.Row{Type: "expense", Amount: "30.00", Date: "2024-03-08"},
		testutil.Row{Type: "expense", Amount: "20.00", Date: "2024-03-31"},
		testutil.Row{Type: "expense", Amount: "1.00", Date: "2024-04-01"},
	)

	r, err := g.Monthly(context.Background(), day("2024-03-13"))
	require.NoError(t, err)

	assert.Equal(t, 2024, r.Year)
	assert.Equal(t, time.March, r.Month)
	assert.Equal(t, "50.00", r.Summary.TotalExpenses.StringFixed(2))
	assert.Equal(t, "100.00", r.Weeks[0].Summary.NetBalance.StringFixed(2))
	assert.Equal(t, 1, r.Weeks[1].TransactionCount)
	assert.Equal(t, "-20.00", r.Weeks[4].Summary.NetBalance.StringFixed(2))
}

func TestGenerator_Yearly(t *testing.T) {
	g, store := newTestGenerator(t)

	testutil.InsertRows(t, store,
		testutil.Row{Type: "expense", Amount: "10.00", Date: "2024-01-31"},
		testutil.Row{Type: "expense", Amount: "20.00", Date: "2024-02-01"},
		testutil.Row{Type: "income", Amount: "500.00", Date: "2024-12-31"},
		testutil.Row{Type: "income", Amount: "1.00", Date: "2025-01-01"},
	)

	r, err := g.Yearly(context.Background(), day("2024-06-15"))
	require.NoError(t, err)

	assert.Equal(t, 2024, r.Year)
	assert.Len(t, r.Months, 12)
	assert.Equal(t, time.January, r.Months[0].Month)
	assert.Equal(t, time.December, r.Months[11].Month)
	assert.Equal(t, day("2024-02-29"), r.Months[1].End)
	assert.Equal(t, day("2024-12-31"), r.Months[11].End)
	assert.Equal(t, 1, r.Months[0].TransactionCount)
	assert.Equal(t, 1, r.Months[1].TransactionCount)
	assert.Equal(t, "500.00", r.Months[11].Summary.TotalIncome.StringFixed(2))
	assert.Equal(t, "470.00", r.Summary.NetBalance.StringFixed(2))
}

func TestGenerator_Category(t *testing.T) {
	g, store := newTestGenerator(t)
	ctx := context.Background()
	food := testutil.CategoryID(t, store, "Food & Dining")
	travel := testutil.CategoryID(t, store, "Travel")

	testutil.InsertRows(t, store,
		testutil.Row{Type: "expense", Amount: "10.00", CategoryID: &food, Date: "2024-03-01"},
		testutil.Row{Type: "expense", Amount: "5.00", CategoryID: &food, Date: "2024-03-01"},
		testutil.Row{Type: "expense", Amount: "15.00", CategoryID: &food, Date: "2024-03-05"},
	)

	t.Run("not found", func(t *testing.T) {
		r, err := g.Category(ctx, 9999, nil, nil)
		require.NoError(t, err)
		assert.False(t, r.Found)
		assert.Nil(t, r.Category)
	})

	t.Run("no matching transactions", func(t *testing.T) {
		r, err := g.Category(ctx, travel, nil, nil)
		require.NoError(t, err)
		assert.True(t, r.Found)
		assert.Equal(t, "Travel", r.Category.Name)
		assert.True(t, r.TotalAmount.IsZero())
		assert.True(t, r.AverageAmount.IsZero())
		assert.Equal(t, 0, r.TransactionCount)
		assert.Empty(t, r.DailyTotals)
		assert.Equal(t, "All time", r.DateRange)
	})

	t.Run("totals and trend", func(t *testing.T) {
		r, err := g.Category(ctx, food, nil, nil)
		require.NoError(t, err)
		assert.True(t, r.Found)
		assert.Equal(t, 3, r.TransactionCount)
		assert.Equal(t, "30.00", r.TotalAmount.StringFixed(2))
		assert.Equal(t, "10.00", r.AverageAmount.StringFixed(2))
		assert.Equal(t, []string{"2024-03-01", "2024-03-05"}, r.TrendDays())
		assert.Equal(t, "15.00", r.DailyTotals["2024-03-01"].StringFixed(2))
	})

	t.Run("window", func(t *testing.T) {
		start, end := day("2024-03-02"), day("2024-03-31")
		r, err := g.Category(ctx, food, &start, &end)
		require.NoError(t, err)
		assert.Equal(t, 1, r.TransactionCount)
		assert.Equal(t, "2024-03-02 to 2024-03-31", r.DateRange)
	})
}

func TestGenerator_Compare(t *testing.T) {
	g, store := newTestGenerator(t)

	testutil.InsertRows(t, store,
		testutil.Row{Type: "expense", Amount: "50.00", Date: "2024-01-10"},
		testutil.Row{Type: "expense", Amount: "75.00", Date: "2024-02-10"},
		testutil.Row{Type: "income", Amount: "200.00", Date: "2024-02-15"},
	)

	r, err := g.Compare(context.Background(),
		dates.NewRange(day("2024-01-01"), day("2024-01-31")),
		dates.NewRange(day("2024-02-01"), day("2024-02-29")))
	require.NoError(t, err)

	assert.Equal(t, KindComparison, r.Kind())
	assert.Equal(t, "25.00", r.Changes.ExpenseChange.StringFixed(2))
	assert.Equal(t, "50.00", r.Changes.ExpenseChangePercent.StringFixed(2))
	assert.Equal(t, "200.00", r.Changes.IncomeChange.StringFixed(2))
	assert.True(t, r.Changes.IncomeChangePercent.IsZero(), "zero baseline gives a zero percentage")
	assert.Equal(t, "175.00", r.Changes.NetChange.StringFixed(2))
}

func TestGenerator_Generate(t *testing.T) {
	g, _ := newTestGenerator(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     Request
		kind    Kind
		wantErr error
	}{
		{name: "daily defaults to today", req: Request{Kind: KindDaily}, kind: KindDaily},
		{name: "weekly", req: Request{Kind: KindWeekly}, kind: KindWeekly},
		{name: "monthly", req: Request{Kind: KindMonthly, Date: testutil.Ptr(day("2024-01-05"))}, kind: KindMonthly},
		{name: "yearly", req: Request{Kind: KindYearly}, kind: KindYearly},
		{name: "category without id", req: Request{Kind: KindCategory}, wantErr: ErrMissingCategory},
		{name: "comparison missing dates", req: Request{Kind: KindComparison, Start: testutil.Ptr(day("2024-01-01"))}, wantErr: ErrMissingPeriods},
		{
			name: "comparison",
			req: Request{
				Kind:         KindComparison,
				Start:        testutil.Ptr(day("2024-01-01")),
				End:          testutil.Ptr(day("2024-01-31")),
				CompareStart: testutil.Ptr(day("2024-02-01")),
				CompareEnd:   testutil.Ptr(day("2024-02-29")),
			},
			kind: KindComparison,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := g.Generate(ctx, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, r.Kind())
		})
	}

	daily, err := g.Generate(ctx, Request{Kind: KindDaily})
	require.NoError(t, err)
	assert.Equal(t, day("2024-03-13"), daily.(*Daily).Date)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Monthly")
	require.NoError(t, err)
	assert.Equal(t, KindMonthly, k)

	k, err = ParseKind("compare")
	require.NoError(t, err)
	assert.Equal(t, KindComparison, k)

	_, err = ParseKind("hourly")
	assert.Error(t, err)
}
