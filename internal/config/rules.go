package config

import (
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/pattern"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// importRule mirrors one entry of import.rules in config.yaml:
//
//	import:
//	  rules:
//	    - name: coffee
//	      pattern: starbucks
//	      category: Food & Dining
//	    - pattern: "^(uber|lyft)"
//	      regex: true
//	      category: Transportation
//	      condition: lt
//	      amount: "50"
type importRule struct {
	Name      string `mapstructure:"name"`
	Pattern   string `mapstructure:"pattern"`
	Category  string `mapstructure:"category"`
	Type      string `mapstructure:"type"`
	Condition string `mapstructure:"condition"`
	Amount    string `mapstructure:"amount"`
	Min       string `mapstructure:"min"`
	Max       string `mapstructure:"max"`
	Priority  int    `mapstructure:"priority"`
	Regex     bool   `mapstructure:"regex"`
}

// ImportRules reads the categorization rules applied to imported statements.
func ImportRules(v *viper.Viper) ([]pattern.Rule, error) {
	var raw []importRule
	if err := v.UnmarshalKey("import.rules", &raw); err != nil {
		return nil, fmt.Errorf("failed to read import rules: %w", err)
	}

	rules := make([]pattern.Rule, 0, len(raw))
	for i, r := range raw {
		rule := pattern.Rule{
			Name:      r.Name,
			Pattern:   r.Pattern,
			Category:  r.Category,
			Condition: pattern.Condition(strings.ToLower(strings.TrimSpace(r.Condition))),
			Priority:  r.Priority,
			IsRegex:   r.Regex,
		}

		if r.Type != "" {
			typ := model.TransactionType(strings.ToLower(strings.TrimSpace(r.Type)))
			rule.Type = &typ
		}

		var err error
		if rule.AmountValue, err = optionalDecimal(r.Amount); err != nil {
			return nil, fmt.Errorf("import rule %d: amount: %w", i+1, err)
		}
		if rule.AmountMin, err = optionalDecimal(r.Min); err != nil {
			return nil, fmt.Errorf("import rule %d: min: %w", i+1, err)
		}
		if rule.AmountMax, err = optionalDecimal(r.Max); err != nil {
			return nil, fmt.Errorf("import rule %d: max: %w", i+1, err)
		}

		if err := pattern.Validate(rule); err != nil {
			return nil, fmt.Errorf("import rule %d: %w", i+1, err)
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

func optionalDecimal(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
