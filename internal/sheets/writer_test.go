package sheets

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLayout_Monthly(t *testing.T) {
	r := &report.Monthly{
		Start:   date("2024-02-01"),
		End:     date("2024-02-29"),
		Year:    2024,
		Month:   time.February,
		Summary: model.NewTransactionSummary("2024-02-01 to 2024-02-29", decimal.NewFromInt(100), decimal.NewFromInt(40), 1, 2),
		Weeks: []report.WeekBreakdown{
			{Number: 1, Start: date("2024-02-01"), End: date("2024-02-07")},
			{Number: 5, Start: date("2024-02-29"), End: date("2024-02-29")},
		},
		Categories: []model.CategorySummary{{
			Name: "Travel", Type: model.TransactionTypeExpense,
			TotalAmount: decimal.NewFromInt(40), AverageAmount: decimal.NewFromInt(20), TransactionCount: 2,
		}},
	}

	sheet := Layout(r)
	assert.Equal(t, "Monthly 2024-02", sheet.Title)
	assert.Equal(t, []any{"Monthly Report", "February 2024"}, sheet.Values[0])
	assert.Contains(t, sheet.Values, []any{"Net Balance", "", "60.00"})
	assert.Contains(t, sheet.Values, []any{"Week 5 (02/29/24 - 02/29/24)", "0.00", "0.00", "0.00", 0})
	assert.Contains(t, sheet.Values, []any{"Travel", "expense", "40.00", 2, "20.00"})

	for _, idx := range sheet.Sections {
		require.Less(t, idx, len(sheet.Values))
		assert.Len(t, sheet.Values[idx], 1, "section rows hold only a heading")
	}
}

func TestLayout_Comparison(t *testing.T) {
	r := &report.Comparison{
		Period1: report.PeriodData{Start: date("2024-01-01"), End: date("2024-01-31")},
		Period2: report.PeriodData{Start: date("2024-02-01"), End: date("2024-02-29")},
		Changes: report.Changes{IncomeChangePercent: decimal.Zero, ExpenseChangePercent: decimal.RequireFromString("12.345")},
	}

	sheet := Layout(r)
	assert.Equal(t, "Compare 2024-01-01 vs 2024-02-01", sheet.Title)
	assert.Contains(t, sheet.Values, []any{"Expenses", "0.00", "0.00", "0.00", "12.3"})
}

func TestLayout_CategoryNotFound(t *testing.T) {
	sheet := Layout(&report.CategoryReport{})
	assert.Equal(t, [][]any{{"Category not found"}}, sheet.Values)
}

func TestFormattingRequests(t *testing.T) {
	sheet := Sheet{Values: make([][]any, 10), Sections: []int{2, 6}}

	requests := formattingRequests(42, sheet, "$#,##0.00")
	require.Len(t, requests, 5)
	assert.Equal(t, int64(42), requests[0].RepeatCell.Range.SheetId)
	assert.Equal(t, int64(6), requests[2].RepeatCell.Range.StartRowIndex)
	assert.Equal(t, "CURRENCY", requests[3].RepeatCell.Cell.UserEnteredFormat.NumberFormat.Type)
	assert.NotNil(t, requests[4].AutoResizeDimensions)

	assert.Len(t, formattingRequests(1, sheet, ""), 4)
}

func TestA1(t *testing.T) {
	assert.Equal(t, "'Daily 2024-03-13'!A1", a1("Daily 2024-03-13", "A1"))
	assert.Equal(t, "'Category Kid''s Stuff'!A:Z", a1("Category Kid's Stuff", "A:Z"))
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	token := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer"}

	require.NoError(t, SaveToken(path, token))

	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "refresh", loaded.RefreshToken)
	assert.Equal(t, "access", loaded.AccessToken)

	_, err = LoadToken(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	plain := errors.New("connection reset")
	assert.Equal(t, plain, classify(plain))
	assert.NoError(t, classify(nil))

	throttled := classify(fmt.Errorf("write: %w", &googleapi.Error{Code: http.StatusTooManyRequests}))
	assert.ErrorIs(t, throttled, common.ErrRateLimit)
	assert.True(t, common.IsRetryable(throttled))

	forbidden := classify(&googleapi.Error{Code: http.StatusForbidden})
	var retryable *common.RetryableError
	require.ErrorAs(t, forbidden, &retryable)
	assert.False(t, retryable.Retryable)

	unavailable := &googleapi.Error{Code: http.StatusServiceUnavailable}
	assert.Equal(t, error(unavailable), classify(unavailable))
}
