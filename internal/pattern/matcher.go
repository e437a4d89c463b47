package pattern

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Matcher evaluates candidates against a fixed set of rules.
type Matcher struct {
	compiled map[int]*regexp.Regexp
	rules    []Rule
}

// NewMatcher validates rules and compiles their regex patterns.
// Rules are kept in priority order, highest first; ties keep their given order.
func NewMatcher(rules []Rule) (*Matcher, error) {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})

	m := &Matcher{rules: sorted, compiled: make(map[int]*regexp.Regexp)}
	for i, rule := range sorted {
		if err := Validate(rule); err != nil {
			return nil, err
		}
		if rule.IsRegex {
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				return nil, fmt.Errorf("rule %q: invalid regex: %w", rule.label(), err)
			}
			m.compiled[i] = re
		}
	}
	return m, nil
}

// Rules returns the rules in evaluation order.
func (m *Matcher) Rules() []Rule {
	return m.rules
}

// Match returns every rule that matches c, highest priority first.
func (m *Matcher) Match(c Candidate) []Rule {
	var matches []Rule
	for i, rule := range m.rules {
		if m.matches(i, rule, c) {
			matches = append(matches, rule)
		}
	}
	return matches
}

// Best returns the highest priority rule matching c.
func (m *Matcher) Best(c Candidate) (Rule, bool) {
	for i, rule := range m.rules {
		if m.matches(i, rule, c) {
			return rule, true
		}
	}
	return Rule{}, false
}

func (m *Matcher) matches(i int, rule Rule, c Candidate) bool {
	if rule.Type != nil && *rule.Type != c.Type {
		return false
	}
	return m.matchesDescription(i, rule, c.Description) && matchesAmount(rule, c)
}

func (m *Matcher) matchesDescription(i int, rule Rule, description string) bool {
	description = strings.ToLower(description)
	if re, ok := m.compiled[i]; ok {
		return re.MatchString(description)
	}
	return strings.Contains(description, strings.ToLower(rule.Pattern))
}

func matchesAmount(rule Rule, c Candidate) bool {
	amount := c.Amount

	switch rule.Condition {
	case "", ConditionAny:
		return true
	case ConditionLessThan:
		return rule.AmountValue != nil && amount.LessThan(*rule.AmountValue)
	case ConditionLessEqual:
		return rule.AmountValue != nil && amount.LessThanOrEqual(*rule.AmountValue)
	case ConditionEqual:
		return rule.AmountValue != nil && amount.Equal(*rule.AmountValue)
	case ConditionGreaterEqual:
		return rule.AmountValue != nil && amount.GreaterThanOrEqual(*rule.AmountValue)
	case ConditionGreaterThan:
		return rule.AmountValue != nil && amount.GreaterThan(*rule.AmountValue)
	case ConditionRange:
		if rule.AmountMin != nil && amount.LessThan(*rule.AmountMin) {
			return false
		}
		if rule.AmountMax != nil && amount.GreaterThan(*rule.AmountMax) {
			return false
		}
		return true
	}

	return false
}
