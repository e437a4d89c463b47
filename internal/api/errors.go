package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/report"
	"github.com/Veraticus/tally/internal/validation"
	"github.com/gin-gonic/gin"
)

// AppError is the JSON error body returned by every endpoint.
type AppError struct {
	Internal   error  `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Error codes.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeNotFound            = "NOT_FOUND"
	CodeTransactionNotFound = "TRANSACTION_NOT_FOUND"
	CodeCategoryNotFound    = "CATEGORY_NOT_FOUND"
	CodeCategoryInUse       = "CATEGORY_IN_USE"
	CodeCategoryExists      = "CATEGORY_EXISTS"
	CodeCategoryMismatch    = "CATEGORY_TYPE_MISMATCH"
	CodeNoUpdates           = "NO_UPDATES"
	CodeInternal            = "INTERNAL_ERROR"
)

func newAppError(status int, code, message string, internal error) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: status, Internal: internal}
}

func invalidInput(message string) *AppError {
	return newAppError(http.StatusBadRequest, CodeInvalidInput, message, nil)
}

func notFound(code, message string) *AppError {
	return newAppError(http.StatusNotFound, code, message, nil)
}

// toAppError maps ledger, report and validation failures onto HTTP errors.
// Anything unrecognized becomes a 500 whose details stay in the log.
func toAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if verr, ok := validation.As(err); ok {
		return newAppError(http.StatusBadRequest, CodeValidation, verr.Message, err)
	}

	var mismatch *ledger.CategoryMismatchError
	switch {
	case errors.As(err, &mismatch):
		return newAppError(http.StatusBadRequest, CodeCategoryMismatch,
			fmt.Sprintf("Category type (%s) doesn't match transaction type (%s)",
				mismatch.CategoryType, mismatch.TransactionType), err)
	case errors.Is(err, ledger.ErrTransactionNotFound):
		return newAppError(http.StatusNotFound, CodeTransactionNotFound, "Transaction not found", err)
	case errors.Is(err, ledger.ErrCategoryNotFound):
		return newAppError(http.StatusNotFound, CodeCategoryNotFound, "Category not found", err)
	case errors.Is(err, ledger.ErrCategoryInUse):
		return newAppError(http.StatusConflict, CodeCategoryInUse,
			"Category is being used by transactions and cannot be deleted", err)
	case errors.Is(err, ledger.ErrCategoryExists):
		return newAppError(http.StatusConflict, CodeCategoryExists, "Category name already exists", err)
	case errors.Is(err, ledger.ErrNoUpdates):
		return newAppError(http.StatusBadRequest, CodeNoUpdates, "No updates provided", err)
	case errors.Is(err, report.ErrMissingCategory), errors.Is(err, report.ErrMissingPeriods):
		return newAppError(http.StatusBadRequest, CodeInvalidInput, err.Error(), err)
	}

	return newAppError(http.StatusInternalServerError, CodeInternal, "An internal error occurred", err)
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	appErr := toAppError(err)

	if appErr.StatusCode >= http.StatusInternalServerError {
		slog.Error("Request failed",
			"error", err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", requestID(c))
	} else {
		slog.Debug("Request rejected",
			"code", appErr.Code,
			"message", appErr.Message,
			"path", c.Request.URL.Path,
			"request_id", requestID(c))
	}

	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
