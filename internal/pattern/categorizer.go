package pattern

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tally/internal/model"
)

// CategoryLookup finds a category by name. It returns nil when there is none.
type CategoryLookup interface {
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
}

// Categorizer maps candidates to category ids through a Matcher.
type Categorizer struct {
	matcher    *Matcher
	categories map[string]model.Category
}

// NewCategorizer resolves every rule's category up front, so a rule naming a
// missing category fails here rather than halfway through an import.
func NewCategorizer(ctx context.Context, m *Matcher, lookup CategoryLookup) (*Categorizer, error) {
	c := &Categorizer{matcher: m, categories: make(map[string]model.Category)}

	for _, rule := range m.Rules() {
		if _, ok := c.categories[rule.Category]; ok {
			continue
		}
		category, err := lookup.GetCategoryByName(ctx, rule.Category)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", rule.label(), err)
		}
		if category == nil {
			return nil, fmt.Errorf("%w %q: category %q does not exist", ErrInvalidRule, rule.label(), rule.Category)
		}
		if rule.Type != nil && *rule.Type != category.Type {
			return nil, fmt.Errorf("%w %q: category %q is %s but the rule only matches %s",
				ErrInvalidRule, rule.label(), category.Name, category.Type, *rule.Type)
		}
		c.categories[rule.Category] = *category
	}

	return c, nil
}

// Categorize returns the category of the best matching rule whose category
// has the candidate's type.
func (c *Categorizer) Categorize(cand Candidate) (int64, bool) {
	for _, rule := range c.matcher.Match(cand) {
		category := c.categories[rule.Category]
		if category.Type != cand.Type {
			continue
		}
		slog.Debug("rule matched", "rule", rule.label(), "category", category.Name, "description", cand.Description)
		return category.ID, true
	}
	return 0, false
}
