package pattern

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRule is wrapped by every rule validation error.
var ErrInvalidRule = errors.New("invalid rule")

// Validate checks that a rule is complete and its amount condition is usable.
func Validate(r Rule) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w %q: %s", ErrInvalidRule, r.label(), fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(r.Pattern) == "" {
		return invalid("pattern is required")
	}
	if strings.TrimSpace(r.Category) == "" {
		return invalid("category is required")
	}
	if r.Type != nil && !r.Type.IsValid() {
		return invalid("type must be 'expense' or 'income'")
	}

	switch r.Condition {
	case "", ConditionAny:
	case ConditionLessThan, ConditionLessEqual, ConditionEqual, ConditionGreaterEqual, ConditionGreaterThan:
		if r.AmountValue == nil {
			return invalid("condition %s needs an amount", r.Condition)
		}
	case ConditionRange:
		if r.AmountMin == nil && r.AmountMax == nil {
			return invalid("range needs a minimum or a maximum")
		}
		if r.AmountMin != nil && r.AmountMax != nil && r.AmountMin.GreaterThan(*r.AmountMax) {
			return invalid("range minimum is above its maximum")
		}
	default:
		return invalid("unknown amount condition %q", r.Condition)
	}

	return nil
}
