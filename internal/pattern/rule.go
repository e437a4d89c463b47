// Package pattern assigns categories to imported transactions using
// description rules.
package pattern

import (
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// Condition compares a transaction amount against a rule.
type Condition string

// Amount conditions. An empty condition behaves like ConditionAny.
const (
	ConditionAny          Condition = "any"
	ConditionLessThan     Condition = "lt"
	ConditionLessEqual    Condition = "le"
	ConditionEqual        Condition = "eq"
	ConditionGreaterEqual Condition = "ge"
	ConditionGreaterThan  Condition = "gt"
	ConditionRange        Condition = "range"
)

// Rule files transactions whose description matches Pattern under Category.
type Rule struct {
	// Type restricts the rule to one side of the ledger. Nil matches both.
	Type        *model.TransactionType
	AmountValue *decimal.Decimal
	AmountMin   *decimal.Decimal
	AmountMax   *decimal.Decimal
	Name        string
	// Pattern is compared case-insensitively. Plain patterns match when the
	// description contains them; regex patterns are matched against the
	// lowercased description.
	Pattern   string
	Category  string
	Condition Condition
	Priority  int
	IsRegex   bool
}

// Candidate is the part of a transaction rules look at.
type Candidate struct {
	Type        model.TransactionType
	Description string
	Amount      decimal.Decimal
}

func (r Rule) label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Pattern
}
