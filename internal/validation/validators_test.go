package validation

import (
	"strings"
	"testing"

	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		wantCode Code
		wantMsg  string
	}{
		{name: "plain", input: "12.5", want: "12.5"},
		{name: "currency and commas", input: "$1,234.56", want: "1234.56"},
		{name: "euro with spaces", input: " € 20 ", want: "20"},
		{name: "rounds to cents", input: "10.005", want: "10.01"},
		{name: "upper bound inclusive", input: "1000000", want: "1000000"},
		{name: "missing", input: "", wantCode: AmountRequired, wantMsg: "Amount is required"},
		{name: "only symbols", input: "$ ,", wantCode: AmountEmpty, wantMsg: "Amount cannot be empty"},
		{name: "not a number", input: "twelve", wantCode: AmountInvalid, wantMsg: "Invalid amount format. Please enter a valid number."},
		{name: "zero", input: "0", wantCode: AmountNotPositive, wantMsg: "Amount must be greater than zero"},
		{name: "negative", input: "-5", wantCode: AmountNotPositive, wantMsg: "Amount must be greater than zero"},
		{name: "too large", input: "1000000.01", wantCode: AmountTooLarge, wantMsg: "Amount cannot exceed $1,000,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantCode != "" {
				require.Error(t, err)
				verr, ok := As(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantCode, verr.Code)
				assert.Equal(t, tt.wantMsg, err.Error())
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParseType(t *testing.T) {
	got, err := ParseType("  Expense ")
	require.NoError(t, err)
	assert.Equal(t, model.TransactionTypeExpense, got)

	got, err = ParseType("INCOME")
	require.NoError(t, err)
	assert.Equal(t, model.TransactionTypeIncome, got)

	_, err = ParseType("")
	assert.True(t, HasCode(err, TypeRequired))

	_, err = ParseType("transfer")
	assert.True(t, HasCode(err, TypeInvalid))
	assert.Equal(t, "Transaction type must be 'expense' or 'income'", err.Error())
}

func TestCheckDescription(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{name: "empty allowed", input: ""},
		{name: "normal text", input: "Lunch with team & friends"},
		{name: "exactly max length", input: strings.Repeat("a", MaxDescriptionLength)},
		{name: "too long", input: strings.Repeat("a", MaxDescriptionLength+1), wantCode: DescriptionTooLong},
		{name: "angle bracket", input: "<script>", wantCode: DescriptionInvalidChars},
		{name: "double quote", input: `say "hi"`, wantCode: DescriptionInvalidChars},
		{name: "single quote", input: "Joe's diner", wantCode: DescriptionInvalidChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CheckDescription(tt.input)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, HasCode(err, tt.wantCode), "got %v", err)
		})
	}

	_, err := CheckDescription(strings.Repeat("x", 300))
	assert.EqualError(t, err, "Description cannot exceed 255 characters")
}

func TestCheckCategoryName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		wantCode Code
	}{
		{name: "valid", input: "Food & Dining", want: "Food & Dining"},
		{name: "trimmed", input: "  Rent_2024 ", want: "Rent_2024"},
		{name: "hyphen", input: "Side-gig", want: "Side-gig"},
		{name: "missing", input: "", wantCode: CategoryNameRequired},
		{name: "too short after trim", input: " a ", wantCode: CategoryNameTooShort},
		{name: "too long", input: strings.Repeat("b", 51), wantCode: CategoryNameTooLong},
		{name: "bad characters", input: "Food!", wantCode: CategoryNameInvalidChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckCategoryName(tt.input)
			if tt.wantCode != "" {
				assert.True(t, HasCode(err, tt.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckSearchQuery(t *testing.T) {
	q, err := CheckSearchQuery("  coffee ")
	require.NoError(t, err)
	assert.Equal(t, "coffee", q)

	_, err = CheckSearchQuery("")
	assert.EqualError(t, err, "Search query cannot be empty")

	_, err = CheckSearchQuery(" c ")
	assert.EqualError(t, err, "Search query must be at least 2 characters long")

	_, err = CheckSearchQuery(strings.Repeat("q", 101))
	assert.EqualError(t, err, "Search query cannot exceed 100 characters")
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42", "Transaction ID")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseID("", "Transaction ID")
	assert.EqualError(t, err, "Transaction ID is required")

	_, err = ParseID("abc", "")
	assert.EqualError(t, err, "ID must be a valid number")

	_, err = ParseID("0", "Category ID")
	assert.EqualError(t, err, "Category ID must be greater than zero")
	assert.True(t, HasCode(err, IDNotPositive))
}

func TestParseLimit(t *testing.T) {
	limit, err := ParseLimit("", 0)
	require.NoError(t, err)
	assert.Zero(t, limit)

	limit, err = ParseLimit("25", 0)
	require.NoError(t, err)
	assert.Equal(t, 25, limit)

	_, err = ParseLimit("many", 0)
	assert.True(t, HasCode(err, LimitInvalid))

	_, err = ParseLimit("-1", 0)
	assert.True(t, HasCode(err, LimitNotPositive))

	_, err = ParseLimit("1001", 0)
	assert.EqualError(t, err, "Limit cannot exceed 1000")
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "", Sanitize(""))
	assert.Equal(t, "hello", Sanitize("  hel\x00lo  "))
	assert.Len(t, Sanitize(strings.Repeat("z", 1500)), 1000)
}

func TestWrapKeepsCode(t *testing.T) {
	err := Wrap(New(InvalidDate, "start", "bad date"), "Start date error: ")
	verr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, InvalidDate, verr.Code)
	assert.Equal(t, "Start date error: bad date", verr.Message)
}
