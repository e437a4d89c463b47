// Package report composes read-only reports over the ledger and renders them as text.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// Kind identifies a report shape.
type Kind string

// Report kinds.
const (
	KindDaily      Kind = "daily"
	KindWeekly     Kind = "weekly"
	KindMonthly    Kind = "monthly"
	KindYearly     Kind = "yearly"
	KindCategory   Kind = "category"
	KindComparison Kind = "comparison"
)

// Kinds lists every report kind in display order.
var Kinds = []Kind{KindDaily, KindWeekly, KindMonthly, KindYearly, KindCategory, KindComparison}

// ParseKind resolves a report name. "compare" is accepted for comparison reports.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "compare" {
		return KindComparison, nil
	}
	for _, k := range Kinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown report type %q", s)
}

// Report is implemented by every generated report.
type Report interface {
	Kind() Kind
}

// Daily covers a single date.
type Daily struct {
	Date             time.Time                `json:"date"`
	Summary          model.TransactionSummary `json:"summary"`
	Transactions     []model.Transaction      `json:"transactions"`
	Categories       []model.CategorySummary  `json:"category_breakdown"`
	TransactionCount int                      `json:"transaction_count"`
}

// DayBreakdown is one day of a weekly report.
type DayBreakdown struct {
	Date             time.Time                `json:"date"`
	DayName          string                   `json:"day_name"`
	Summary          model.TransactionSummary `json:"summary"`
	TransactionCount int                      `json:"transaction_count"`
}

// Weekly covers a Monday to Sunday week.
type Weekly struct {
	Start        time.Time                `json:"start_date"`
	End          time.Time                `json:"end_date"`
	Summary      model.TransactionSummary `json:"summary"`
	Transactions []model.Transaction      `json:"transactions"`
	Categories   []model.CategorySummary  `json:"category_breakdown"`
	Days         [7]DayBreakdown          `json:"daily_breakdown"`
}

// WeekBreakdown is one week of a monthly report. Weeks are counted from the
// first of the month, so the last one may be shorter than seven days.
type WeekBreakdown struct {
	Start            time.Time                `json:"start_date"`
	End              time.Time                `json:"end_date"`
	Summary          model.TransactionSummary `json:"summary"`
	Number           int                      `json:"week_number"`
	TransactionCount int                      `json:"transaction_count"`
}

// Monthly covers one calendar month.
type Monthly struct {
	Start        time.Time                `json:"start_date"`
	End          time.Time                `json:"end_date"`
	Summary      model.TransactionSummary `json:"summary"`
	Transactions []model.Transaction      `json:"transactions"`
	Categories   []model.CategorySummary  `json:"category_breakdown"`
	Weeks        []WeekBreakdown          `json:"weekly_breakdown"`
	Month        time.Month               `json:"month"`
	Year         int                      `json:"year"`
}

// MonthBreakdown is one month of a yearly report.
type MonthBreakdown struct {
	Start            time.Time                `json:"start_date"`
	End              time.Time                `json:"end_date"`
	Summary          model.TransactionSummary `json:"summary"`
	Month            time.Month               `json:"month"`
	TransactionCount int                      `json:"transaction_count"`
}

// Yearly covers one calendar year.
type Yearly struct {
	Start        time.Time                `json:"start_date"`
	End          time.Time                `json:"end_date"`
	Summary      model.TransactionSummary `json:"summary"`
	Transactions []model.Transaction      `json:"transactions"`
	Categories   []model.CategorySummary  `json:"category_breakdown"`
	Months       [12]MonthBreakdown       `json:"monthly_breakdown"`
	Year         int                      `json:"year"`
}

// CategoryReport covers one category over an optional window.
// Found is false when the category does not exist.
type CategoryReport struct {
	Start            *time.Time                 `json:"start_date,omitempty"`
	End              *time.Time                 `json:"end_date,omitempty"`
	Category         *model.Category            `json:"category,omitempty"`
	DailyTotals      map[string]decimal.Decimal `json:"daily_totals"`
	DateRange        string                     `json:"date_range"`
	Transactions     []model.Transaction        `json:"transactions"`
	TotalAmount      decimal.Decimal            `json:"total_amount"`
	AverageAmount    decimal.Decimal            `json:"average_amount"`
	TransactionCount int                        `json:"transaction_count"`
	Found            bool                       `json:"found"`
}

// TrendDays returns the keys of DailyTotals in ascending date order.
func (r *CategoryReport) TrendDays() []string {
	days := make([]string, 0, len(r.DailyTotals))
	for d := range r.DailyTotals {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// PeriodData is one side of a comparison.
type PeriodData struct {
	Start      time.Time                `json:"start_date"`
	End        time.Time                `json:"end_date"`
	Summary    model.TransactionSummary `json:"summary"`
	Categories []model.CategorySummary  `json:"categories"`
}

// Changes holds the deltas from the first period to the second. Percentages
// are 0 when the first period's total is 0.
type Changes struct {
	IncomeChange         decimal.Decimal `json:"income_change"`
	ExpenseChange        decimal.Decimal `json:"expense_change"`
	NetChange            decimal.Decimal `json:"net_change"`
	IncomeChangePercent  decimal.Decimal `json:"income_pct_change"`
	ExpenseChangePercent decimal.Decimal `json:"expense_pct_change"`
}

// Comparison compares two independent windows.
type Comparison struct {
	Period1 PeriodData `json:"period1"`
	Period2 PeriodData `json:"period2"`
	Changes Changes    `json:"changes"`
}

func (*Daily) Kind() Kind          { return KindDaily }
func (*Weekly) Kind() Kind         { return KindWeekly }
func (*Monthly) Kind() Kind        { return KindMonthly }
func (*Yearly) Kind() Kind         { return KindYearly }
func (*CategoryReport) Kind() Kind { return KindCategory }
func (*Comparison) Kind() Kind     { return KindComparison }

// percentChange returns change as a percentage of base, or 0 when base is not positive.
func percentChange(change, base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	return change.Div(base).Mul(decimal.NewFromInt(100)).Round(2)
}
