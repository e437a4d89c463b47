package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by request structs.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("txtype", validateTransactionType)
		}
	})
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return model.TransactionType(strings.ToLower(strings.TrimSpace(fl.Field().String()))).IsValid()
}

// bindJSON decodes the request body, translating binding failures into the
// same messages the validation layer uses.
func bindJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return bindingError(verrs[0])
	}
	return invalidInput("Invalid request body")
}

func bindingError(fe validator.FieldError) error {
	field := strings.ToLower(fe.Field())
	switch {
	case fe.Tag() == "txtype":
		return validation.New(validation.TypeInvalid, "type", "Transaction type must be 'expense' or 'income'")
	case fe.Tag() == "required" && field == "type":
		return validation.New(validation.TypeRequired, "type", "Transaction type is required")
	case fe.Tag() == "required" && field == "amount":
		return validation.New(validation.AmountRequired, "amount", "Amount is required")
	case fe.Tag() == "required" && field == "name":
		return validation.New(validation.CategoryNameRequired, "name", "Category name is required")
	}
	return invalidInput(fmt.Sprintf("Invalid value for %s", field))
}

// parseAmount accepts a JSON number or a string such as "$1,234.50".
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = string(raw)
	}
	return validation.ParseAmount(s)
}

// queryInt64 parses an optional positive id from the query string.
func queryInt64(c *gin.Context, key string) (*int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := validation.ParseID(raw, key)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, invalidInput(fmt.Sprintf("Invalid %s", key))
	}
	return n, nil
}

func pathID(c *gin.Context, field string) (int64, error) {
	return validation.ParseID(c.Param("id"), field)
}
