package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// Limits applied by the validators.
const (
	MaxDescriptionLength  = 255
	MinCategoryNameLength = 2
	MaxCategoryNameLength = 50
	MinSearchLength       = 2
	MaxSearchLength       = 100
	MaxLimit              = 1000
	maxSanitizedLength    = 1000
)

// MaxAmount is the largest amount a single transaction may carry.
var MaxAmount = decimal.NewFromInt(1_000_000)

var (
	currencyNoise     = regexp.MustCompile(`[$€£¥₹,\s]`)
	categoryNameChars = regexp.MustCompile(`^[a-zA-Z0-9\s\-_&]+$`)
)

// ParseAmount parses a user typed amount such as "$1,234.50".
func ParseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, New(AmountRequired, "amount", "Amount is required")
	}

	cleaned := currencyNoise.ReplaceAllString(strings.TrimSpace(s), "")
	if cleaned == "" {
		return decimal.Zero, New(AmountEmpty, "amount", "Amount cannot be empty")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, New(AmountInvalid, "amount", "Invalid amount format. Please enter a valid number.")
	}

	return CheckAmount(amount)
}

// CheckAmount applies the amount bounds to an already numeric value and rounds it to cents.
func CheckAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, New(AmountNotPositive, "amount", "Amount must be greater than zero")
	}
	if amount.GreaterThan(MaxAmount) {
		return decimal.Zero, New(AmountTooLarge, "amount", "Amount cannot exceed $1,000,000")
	}
	return amount.Round(2), nil
}

// ParseType normalizes a transaction type.
func ParseType(s string) (model.TransactionType, error) {
	if s == "" {
		return "", New(TypeRequired, "type", "Transaction type is required")
	}

	t := model.TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", New(TypeInvalid, "type", "Transaction type must be 'expense' or 'income'")
	}
	return t, nil
}

// CheckDescription validates an optional description and returns it trimmed.
func CheckDescription(s string) (string, error) {
	if utf8.RuneCountInString(s) > MaxDescriptionLength {
		return "", New(DescriptionTooLong, "description",
			fmt.Sprintf("Description cannot exceed %d characters", MaxDescriptionLength))
	}
	if strings.ContainsAny(s, `<>"'`) {
		return "", New(DescriptionInvalidChars, "description", "Description contains invalid characters")
	}
	return strings.TrimSpace(s), nil
}

// CheckCategoryName validates a category name and returns it trimmed.
func CheckCategoryName(s string) (string, error) {
	if s == "" {
		return "", New(CategoryNameRequired, "name", "Category name is required")
	}

	name := strings.TrimSpace(s)
	n := utf8.RuneCountInString(name)
	switch {
	case n < MinCategoryNameLength:
		return "", New(CategoryNameTooShort, "name", "Category name must be at least 2 characters long")
	case n > MaxCategoryNameLength:
		return "", New(CategoryNameTooLong, "name", "Category name cannot exceed 50 characters")
	case !categoryNameChars.MatchString(name):
		return "", New(CategoryNameInvalidChars, "name", "Category name contains invalid characters")
	}
	return name, nil
}

// CheckSearchQuery validates a search query and returns it trimmed.
func CheckSearchQuery(s string) (string, error) {
	if s == "" {
		return "", New(SearchEmpty, "query", "Search query cannot be empty")
	}

	q := strings.TrimSpace(s)
	n := utf8.RuneCountInString(q)
	if n < MinSearchLength {
		return "", New(SearchTooShort, "query", "Search query must be at least 2 characters long")
	}
	if n > MaxSearchLength {
		return "", New(SearchTooLong, "query", "Search query cannot exceed 100 characters")
	}
	return q, nil
}

// ParseID parses a positive integer identifier. field names the value in messages.
func ParseID(s, field string) (int64, error) {
	if field == "" {
		field = "ID"
	}
	if s == "" {
		return 0, New(IDRequired, field, field+" is required")
	}

	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, New(IDInvalid, field, field+" must be a valid number")
	}
	if id <= 0 {
		return 0, New(IDNotPositive, field, field+" must be greater than zero")
	}
	return id, nil
}

// CheckID validates a numeric identifier.
func CheckID(id int64, field string) (int64, error) {
	if field == "" {
		field = "ID"
	}
	if id <= 0 {
		return 0, New(IDNotPositive, field, field+" must be greater than zero")
	}
	return id, nil
}

// ParseLimit parses an optional result limit. An empty string yields 0, meaning no limit.
func ParseLimit(s string, maxLimit int) (int, error) {
	if s == "" {
		return 0, nil
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}

	limit, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, New(LimitInvalid, "limit", "Limit must be a valid number")
	}
	return CheckLimit(limit, maxLimit)
}

// CheckLimit validates a numeric result limit.
func CheckLimit(limit, maxLimit int) (int, error) {
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if limit <= 0 {
		return 0, New(LimitNotPositive, "limit", "Limit must be greater than zero")
	}
	if limit > maxLimit {
		return 0, New(LimitTooLarge, "limit", fmt.Sprintf("Limit cannot exceed %d", maxLimit))
	}
	return limit, nil
}

// Sanitize trims free text, drops NUL bytes and caps its length.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}

	out := strings.ReplaceAll(strings.TrimSpace(s), "\x00", "")
	if utf8.RuneCountInString(out) > maxSanitizedLength {
		out = string([]rune(out)[:maxSanitizedLength])
	}
	return out
}
