// Package validation checks user supplied values before they reach the ledger.
package validation

import (
	"errors"
)

// Code identifies the rule a value failed.
type Code string

// Validation codes. The message attached to each error is the human readable text.
const (
	AmountRequired           Code = "amount_required"
	AmountEmpty              Code = "amount_empty"
	AmountInvalid            Code = "amount_invalid"
	AmountNotPositive        Code = "amount_not_positive"
	AmountTooLarge           Code = "amount_too_large"
	TypeRequired             Code = "type_required"
	TypeInvalid              Code = "type_invalid"
	DescriptionTooLong       Code = "description_too_long"
	DescriptionInvalidChars  Code = "description_invalid_chars"
	CategoryNameRequired     Code = "category_name_required"
	CategoryNameTooShort     Code = "category_name_too_short"
	CategoryNameTooLong      Code = "category_name_too_long"
	CategoryNameInvalidChars Code = "category_name_invalid_chars"
	SearchEmpty              Code = "search_empty"
	SearchTooShort           Code = "search_too_short"
	SearchTooLong            Code = "search_too_long"
	IDRequired               Code = "id_required"
	IDInvalid                Code = "id_invalid"
	IDNotPositive            Code = "id_not_positive"
	DateRequired             Code = "date_required"
	InvalidDate              Code = "invalid_date"
	DateTooOld               Code = "date_too_old"
	DateInFuture             Code = "date_in_future"
	DateTooFarAhead          Code = "date_too_far_ahead"
	DateRangeInvalid         Code = "date_range_invalid"
	LimitInvalid             Code = "limit_invalid"
	LimitNotPositive         Code = "limit_not_positive"
	LimitTooLarge            Code = "limit_too_large"
)

// Error is returned by every validator. Message is suitable for showing to the user as is.
type Error struct {
	Code    Code
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a validation error.
func New(code Code, field, message string) *Error {
	return &Error{Code: code, Field: field, Message: message}
}

// Wrap prefixes the message of a validation error, keeping its code.
// Errors that are not validation errors are returned unchanged.
func Wrap(err error, prefix string) error {
	var verr *Error
	if !errors.As(err, &verr) {
		return err
	}
	return &Error{Code: verr.Code, Field: verr.Field, Message: prefix + verr.Message}
}

// As extracts a validation error from err.
func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// HasCode reports whether err is a validation error with the given code.
func HasCode(err error, code Code) bool {
	verr, ok := As(err)
	return ok && verr.Code == code
}
