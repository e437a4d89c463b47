package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/tally/internal/dates"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

const (
	topMonthlyCategories = 10
	topYearlyCategories  = 15
	recentCategoryTxns   = 10
)

var (
	rule      = strings.Repeat("=", 50)
	thinRule  = strings.Repeat("-", 30)
	shortRule = strings.Repeat("-", 20)
)

// RenderOption configures text rendering.
type RenderOption func(*renderer)

// WithCurrency sets the currency symbol. The default is "$".
func WithCurrency(symbol string) RenderOption {
	return func(r *renderer) {
		r.currency = symbol
	}
}

type renderer struct {
	lines    []string
	currency string
}

// Render writes r as text to w.
func Render(w io.Writer, r Report, opts ...RenderOption) error {
	_, err := io.WriteString(w, Text(r, opts...)+"\n")
	return err
}

// Text formats r as text.
func Text(r Report, opts ...RenderOption) string {
	p := newRenderer(opts)

	switch r := r.(type) {
	case *Daily:
		p.daily(r)
	case *Weekly:
		p.weekly(r)
	case *Monthly:
		p.monthly(r)
	case *Yearly:
		p.yearly(r)
	case *CategoryReport:
		p.category(r)
	case *Comparison:
		p.comparison(r)
	default:
		return "Unknown report type"
	}
	return strings.Join(p.lines, "\n")
}

func (p *renderer) add(lines ...string) {
	p.lines = append(p.lines, lines...)
}

func (p *renderer) header(title string) {
	p.add(title, rule, "")
}

func (p *renderer) section(title string) {
	p.add(title, thinRule)
}

func (p *renderer) daily(r *Daily) {
	p.header("📅 Daily Report - " + dates.Long(r.Date))
	p.add(p.summary(r.Summary), "")

	if len(r.Transactions) > 0 {
		p.section("📋 Transactions:")
		for _, txn := range r.Transactions {
			p.add(p.transaction(txn))
		}
		p.add("")
	}
	p.categories("📊 Category Breakdown:", r.Categories, 0)
}

func (p *renderer) weekly(r *Weekly) {
	p.header("📅 Weekly Report - " + dates.ISO(r.Start) + " to " + dates.ISO(r.End))
	p.add(p.summary(r.Summary), "")

	p.section("📊 Daily Breakdown:")
	for _, d := range r.Days {
		p.add(fmt.Sprintf("%s: Income: +%s, Expenses: -%s, Net: %s",
			dates.Short(d.Date),
			p.money(d.Summary.TotalIncome),
			p.money(d.Summary.TotalExpenses),
			p.signed(d.Summary.NetBalance)))
	}
	p.add("")
	p.categories("📊 Category Breakdown:", r.Categories, 0)
}

func (p *renderer) monthly(r *Monthly) {
	p.header("📅 Monthly Report - " + dates.MonthLabel(r.Start))
	p.add(p.summary(r.Summary), "")

	if len(r.Weeks) > 0 {
		p.section("📊 Weekly Breakdown:")
		for _, w := range r.Weeks {
			p.add(fmt.Sprintf("Week %d (%s - %s): Net: %s",
				w.Number, dates.Short(w.Start), dates.Short(w.End), p.signed(w.Summary.NetBalance)))
		}
		p.add("")
	}
	p.categories("📊 Top Categories:", r.Categories, topMonthlyCategories)
}

func (p *renderer) yearly(r *Yearly) {
	p.header(fmt.Sprintf("📅 Yearly Report - %d", r.Year))
	p.add(p.summary(r.Summary), "")

	p.section("📊 Monthly Breakdown:")
	for _, m := range r.Months {
		p.add(fmt.Sprintf("%s: Net: %s", m.Month, p.signed(m.Summary.NetBalance)))
	}
	p.add("")
	p.categories("📊 Top Categories:", r.Categories, topYearlyCategories)
}

func (p *renderer) category(r *CategoryReport) {
	if !r.Found {
		p.add("❌ Error: Category not found")
		return
	}

	p.header(fmt.Sprintf("📊 Category Report - %s (%s)", r.Category.Name, titleCase(string(r.Category.Type))))
	p.add(
		"Total Amount: "+p.money(r.TotalAmount),
		fmt.Sprintf("Transaction Count: %d", r.TransactionCount),
		"Average Amount: "+p.money(r.AverageAmount),
		"Date Range: "+r.DateRange,
		"",
	)

	if len(r.Transactions) > 0 {
		p.section("📋 Recent Transactions:")
		txns := r.Transactions
		if len(txns) > recentCategoryTxns {
			txns = txns[:recentCategoryTxns]
		}
		for _, txn := range txns {
			p.add(p.transaction(txn))
		}
	}
}

func (p *renderer) comparison(r *Comparison) {
	c := r.Changes
	p.header("📊 Comparison Report")
	p.add(
		"Period 1: "+dates.ISO(r.Period1.Start)+" to "+dates.ISO(r.Period1.End),
		p.summary(r.Period1.Summary),
		"",
		"Period 2: "+dates.ISO(r.Period2.Start)+" to "+dates.ISO(r.Period2.End),
		p.summary(r.Period2.Summary),
		"",
		"📈 Changes:",
		shortRule,
		fmt.Sprintf("Income Change: %s (%s%%)", p.signed(c.IncomeChange), signedFixed(c.IncomeChangePercent, 1)),
		fmt.Sprintf("Expense Change: %s (%s%%)", p.signed(c.ExpenseChange), signedFixed(c.ExpenseChangePercent, 1)),
		"Net Change: "+p.signed(c.NetChange),
	)
}

func (p *renderer) categories(title string, categories []model.CategorySummary, limit int) {
	if len(categories) == 0 {
		return
	}
	if limit > 0 && len(categories) > limit {
		categories = categories[:limit]
	}
	p.section(title)
	for _, c := range categories {
		p.add(p.categoryLine(c))
	}
}

func (p *renderer) summary(s model.TransactionSummary) string {
	var lines []string
	if s.Period != "" {
		lines = append(lines, "Summary for: "+s.Period)
	}
	lines = append(lines,
		fmt.Sprintf("Total Income: +%s (%d transactions)", p.money(s.TotalIncome), s.IncomeCount),
		fmt.Sprintf("Total Expenses: -%s (%d transactions)", p.money(s.TotalExpenses), s.ExpenseCount),
		"Net Balance: "+p.signed(s.NetBalance),
		fmt.Sprintf("Total Transactions: %d", s.TransactionCount),
	)
	return strings.Join(lines, "\n")
}

// transaction formats one transaction as "date | -$amount (category) - description".
func (p *renderer) transaction(t model.Transaction) string {
	sign := "+"
	if t.Type == model.TransactionTypeExpense {
		sign = "-"
	}
	line := dates.ISO(t.Date) + " | " + sign + p.money(t.Amount)
	if t.CategoryName != "" {
		line += " (" + t.CategoryName + ")"
	}
	if t.Description != "" {
		line += " - " + t.Description
	}
	return line
}

func (p *renderer) categoryLine(c model.CategorySummary) string {
	sign := "+"
	if c.Type == model.TransactionTypeExpense {
		sign = "-"
	}
	return fmt.Sprintf("%s: %s%s (%d transactions, avg: %s)",
		c.Name, sign, p.money(c.TotalAmount), c.TransactionCount, p.money(c.AverageAmount))
}

func (p *renderer) money(d decimal.Decimal) string {
	return p.currency + d.StringFixed(2)
}

// signed formats d as "$+1.00" or "$-1.00".
func (p *renderer) signed(d decimal.Decimal) string {
	return p.currency + signedFixed(d, 2)
}

func signedFixed(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return s
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatSummary formats a summary block the way reports print it.
func FormatSummary(s model.TransactionSummary, opts ...RenderOption) string {
	return newRenderer(opts).summary(s)
}

// FormatTransaction formats a transaction line the way reports print it.
func FormatTransaction(t model.Transaction, opts ...RenderOption) string {
	return newRenderer(opts).transaction(t)
}

// FormatCategory formats a category summary line the way reports print it.
func FormatCategory(c model.CategorySummary, opts ...RenderOption) string {
	return newRenderer(opts).categoryLine(c)
}

func newRenderer(opts []RenderOption) *renderer {
	p := &renderer{currency: "$"}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
