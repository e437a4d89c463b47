package sheets

import (
	"fmt"

	"github.com/Veraticus/tally/internal/dates"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/report"
	"github.com/shopspring/decimal"
)

// Sheet is a report laid out as spreadsheet rows.
type Sheet struct {
	Title string
	// Sections holds the zero-based indexes of section heading rows.
	Sections []int
	Values   [][]any
}

type sheetBuilder struct {
	sheet Sheet
}

func (b *sheetBuilder) row(cells ...any) {
	b.sheet.Values = append(b.sheet.Values, cells)
}

func (b *sheetBuilder) blank() {
	b.row()
}

func (b *sheetBuilder) section(title string) {
	b.sheet.Sections = append(b.sheet.Sections, len(b.sheet.Values))
	b.row(title)
}

func (b *sheetBuilder) summary(s model.TransactionSummary) {
	b.section("Summary")
	if s.Period != "" {
		b.row("Period", s.Period)
	}
	b.row("Total Income", "", amount(s.TotalIncome), s.IncomeCount)
	b.row("Total Expenses", "", amount(s.TotalExpenses), s.ExpenseCount)
	b.row("Net Balance", "", amount(s.NetBalance))
	b.row("Total Transactions", "", "", s.TransactionCount)
}

func (b *sheetBuilder) categories(categories []model.CategorySummary) {
	if len(categories) == 0 {
		return
	}
	b.blank()
	b.section("Category Breakdown")
	b.row("Category", "Type", "Total", "Count", "Average")
	for _, c := range categories {
		b.row(c.Name, string(c.Type), amount(c.TotalAmount), c.TransactionCount, amount(c.AverageAmount))
	}
}

func (b *sheetBuilder) transactions(txns []model.Transaction) {
	if len(txns) == 0 {
		return
	}
	b.blank()
	b.section("Transactions")
	b.row("Date", "Type", "Amount", "Category", "Description")
	for _, t := range txns {
		b.row(dates.ISO(t.Date), string(t.Type), amount(t.Amount), t.CategoryName, t.Description)
	}
}

func (b *sheetBuilder) breakdownHeader(title string) {
	b.blank()
	b.section(title)
	b.row("Period", "Income", "Expenses", "Net", "Count")
}

func (b *sheetBuilder) breakdown(label string, s model.TransactionSummary, count int) {
	b.row(label, amount(s.TotalIncome), amount(s.TotalExpenses), amount(s.NetBalance), count)
}

// Layout arranges a computed report into rows. Amounts are written as plain
// two-decimal strings so the sheet parses them as numbers.
func Layout(r report.Report) Sheet {
	b := &sheetBuilder{}

	switch r := r.(type) {
	case *report.Daily:
		b.sheet.Title = "Daily " + dates.ISO(r.Date)
		b.row("Daily Report", dates.Long(r.Date))
		b.blank()
		b.summary(r.Summary)
		b.categories(r.Categories)
		b.transactions(r.Transactions)

	case *report.Weekly:
		b.sheet.Title = "Weekly " + dates.ISO(r.Start)
		b.row("Weekly Report", dates.ISO(r.Start)+" to "+dates.ISO(r.End))
		b.blank()
		b.summary(r.Summary)
		b.breakdownHeader("Daily Breakdown")
		for _, d := range r.Days {
			b.breakdown(d.DayName+" "+dates.Short(d.Date), d.Summary, d.TransactionCount)
		}
		b.categories(r.Categories)
		b.transactions(r.Transactions)

	case *report.Monthly:
		b.sheet.Title = "Monthly " + r.Start.Format("2006-01")
		b.row("Monthly Report", dates.MonthLabel(r.Start))
		b.blank()
		b.summary(r.Summary)
		b.breakdownHeader("Weekly Breakdown")
		for _, w := range r.Weeks {
			b.breakdown(fmt.Sprintf("Week %d (%s - %s)", w.Number, dates.Short(w.Start), dates.Short(w.End)),
				w.Summary, w.TransactionCount)
		}
		b.categories(r.Categories)
		b.transactions(r.Transactions)

	case *report.Yearly:
		b.sheet.Title = fmt.Sprintf("Yearly %d", r.Year)
		b.row("Yearly Report", r.Year)
		b.blank()
		b.summary(r.Summary)
		b.breakdownHeader("Monthly Breakdown")
		for _, m := range r.Months {
			b.breakdown(m.Month.String(), m.Summary, m.TransactionCount)
		}
		b.categories(r.Categories)

	case *report.CategoryReport:
		if !r.Found {
			b.sheet.Title = "Category"
			b.row("Category not found")
			break
		}
		b.sheet.Title = "Category " + r.Category.Name
		b.row("Category Report", r.Category.Name, string(r.Category.Type))
		b.blank()
		b.section("Summary")
		b.row("Date Range", r.DateRange)
		b.row("Total Amount", "", amount(r.TotalAmount))
		b.row("Average Amount", "", amount(r.AverageAmount))
		b.row("Transaction Count", "", "", r.TransactionCount)
		if days := r.TrendDays(); len(days) > 0 {
			b.blank()
			b.section("Daily Totals")
			for _, d := range days {
				b.row(d, "", amount(r.DailyTotals[d]))
			}
		}
		b.transactions(r.Transactions)

	case *report.Comparison:
		b.sheet.Title = "Compare " + dates.ISO(r.Period1.Start) + " vs " + dates.ISO(r.Period2.Start)
		b.row("Comparison Report")
		b.blank()
		b.section("Periods")
		b.row("", "Period 1", "Period 2", "Change", "Change %")
		b.row("Range",
			dates.ISO(r.Period1.Start)+" to "+dates.ISO(r.Period1.End),
			dates.ISO(r.Period2.Start)+" to "+dates.ISO(r.Period2.End))
		b.row("Income", amount(r.Period1.Summary.TotalIncome), amount(r.Period2.Summary.TotalIncome),
			amount(r.Changes.IncomeChange), r.Changes.IncomeChangePercent.StringFixed(1))
		b.row("Expenses", amount(r.Period1.Summary.TotalExpenses), amount(r.Period2.Summary.TotalExpenses),
			amount(r.Changes.ExpenseChange), r.Changes.ExpenseChangePercent.StringFixed(1))
		b.row("Net", amount(r.Period1.Summary.NetBalance), amount(r.Period2.Summary.NetBalance),
			amount(r.Changes.NetChange))
	}

	return b.sheet
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
