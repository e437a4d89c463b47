package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/tally/internal/dates"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// ErrMissingPeriods is returned when a comparison lacks one of its four dates.
var ErrMissingPeriods = errors.New("comparison report requires both periods")

// ErrMissingCategory is returned when a category report has no category id.
var ErrMissingCategory = errors.New("category report requires a category id")

// Source is the read side of the ledger that reports are built from.
type Source interface {
	List(ctx context.Context, f ledger.Filter) ([]model.Transaction, error)
	ListByDate(ctx context.Context, date time.Time) ([]model.Transaction, error)
	Summarize(ctx context.Context, start, end *time.Time) (*model.TransactionSummary, error)
	CategorySummary(ctx context.Context, start, end *time.Time, typ *model.TransactionType) ([]model.CategorySummary, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the clock used when a report is requested without a date.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// Generator builds reports. It never writes to the ledger.
type Generator struct {
	src Source
	now func() time.Time
}

// NewGenerator creates a generator reading from src.
func NewGenerator(src Source, opts ...Option) *Generator {
	g := &Generator{src: src, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Request describes a report to generate. Unused fields are ignored.
type Request struct {
	Date         *time.Time
	Start        *time.Time
	End          *time.Time
	CompareStart *time.Time
	CompareEnd   *time.Time
	CategoryID   int64
	Kind         Kind
}

// Generate dispatches on req.Kind.
func (g *Generator) Generate(ctx context.Context, req Request) (Report, error) {
	date := g.today()
	if req.Date != nil {
		date = dates.Day(*req.Date)
	}

	switch req.Kind {
	case KindDaily:
		return g.Daily(ctx, date)
	case KindWeekly:
		return g.Weekly(ctx, date)
	case KindMonthly:
		return g.Monthly(ctx, date)
	case KindYearly:
		return g.Yearly(ctx, date)
	case KindCategory:
		if req.CategoryID <= 0 {
			return nil, ErrMissingCategory
		}
		return g.Category(ctx, req.CategoryID, req.Start, req.End)
	case KindComparison:
		if req.Start == nil || req.End == nil || req.CompareStart == nil || req.CompareEnd == nil {
			return nil, ErrMissingPeriods
		}
		return g.Compare(ctx,
			dates.NewRange(*req.Start, *req.End),
			dates.NewRange(*req.CompareStart, *req.CompareEnd))
	default:
		return nil, fmt.Errorf("unknown report type %q", req.Kind)
	}
}

// Daily reports a single date.
func (g *Generator) Daily(ctx context.Context, date time.Time) (*Daily, error) {
	day := dates.Day(date)

	transactions, err := g.src.ListByDate(ctx, day)
	if err != nil {
		return nil, err
	}
	summary, categories, err := g.window(ctx, day, day)
	if err != nil {
		return nil, err
	}

	return &Daily{
		Date:             day,
		Summary:          summary,
		Transactions:     transactions,
		Categories:       categories,
		TransactionCount: len(transactions),
	}, nil
}

// Weekly reports the Monday to Sunday week containing date.
func (g *Generator) Weekly(ctx context.Context, date time.Time) (*Weekly, error) {
	week := dates.WeekRange(date)

	r := &Weekly{Start: week.Start, End: week.End}
	if err := g.fill(ctx, week, &r.Summary, &r.Transactions, &r.Categories); err != nil {
		return nil, err
	}

	for i := range r.Days {
		day := week.Start.AddDate(0, 0, i)
		summary, err := g.summarize(ctx, day, day)
		if err != nil {
			return nil, err
		}
		r.Days[i] = DayBreakdown{
			Date:             day,
			DayName:          day.Weekday().String(),
			Summary:          summary,
			TransactionCount: summary.TransactionCount,
		}
	}

	slog.Debug("generated weekly report", "start", dates.ISO(week.Start))
	return r, nil
}

// Monthly reports the calendar month containing date.
func (g *Generator) Monthly(ctx context.Context, date time.Time) (*Monthly, error) {
	month := dates.MonthRange(date)

	r := &Monthly{
		Start: month.Start,
		End:   month.End,
		Year:  month.Start.Year(),
		Month: month.Start.Month(),
	}
	if err := g.fill(ctx, month, &r.Summary, &r.Transactions, &r.Categories); err != nil {
		return nil, err
	}

	for start, n := month.Start, 1; !start.After(month.End); n++ {
		end := start.AddDate(0, 0, 6)
		if end.After(month.End) {
			end = month.End
		}

		summary, err := g.summarize(ctx, start, end)
		if err != nil {
			return nil, err
		}
		r.Weeks = append(r.Weeks, WeekBreakdown{
			Number:           n,
			Start:            start,
			End:              end,
			Summary:          summary,
			TransactionCount: summary.TransactionCount,
		})

		start = end.AddDate(0, 0, 1)
	}

	slog.Debug("generated monthly report", "month", dates.MonthLabel(month.Start), "weeks", len(r.Weeks))
	return r, nil
}

// Yearly reports the calendar year containing date.
func (g *Generator) Yearly(ctx context.Context, date time.Time) (*Yearly, error) {
	year := dates.YearRange(date)

	r := &Yearly{Start: year.Start, End: year.End, Year: year.Start.Year()}
	if err := g.fill(ctx, year, &r.Summary, &r.Transactions, &r.Categories); err != nil {
		return nil, err
	}

	for i := range r.Months {
		month := dates.MonthRange(year.Start.AddDate(0, i, 0))
		if month.End.After(year.End) {
			month.End = year.End
		}

		summary, err := g.summarize(ctx, month.Start, month.End)
		if err != nil {
			return nil, err
		}
		r.Months[i] = MonthBreakdown{
			Month:            month.Start.Month(),
			Start:            month.Start,
			End:              month.End,
			Summary:          summary,
			TransactionCount: summary.TransactionCount,
		}
	}

	return r, nil
}

// Category reports one category. An unknown id yields a report with Found false.
func (g *Generator) Category(ctx context.Context, id int64, start, end *time.Time) (*CategoryReport, error) {
	start, end = dayPtr(start), dayPtr(end)

	r := &CategoryReport{
		Start:         start,
		End:           end,
		DailyTotals:   map[string]decimal.Decimal{},
		DateRange:     "All time",
		TotalAmount:   decimal.Zero,
		AverageAmount: decimal.Zero,
	}
	if start != nil && end != nil {
		r.DateRange = dates.ISO(*start) + " to " + dates.ISO(*end)
	}

	category, err := g.src.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return r, nil
	}
	r.Found = true
	r.Category = category

	transactions, err := g.src.List(ctx, ledger.Filter{Start: start, End: end, CategoryID: &id})
	if err != nil {
		return nil, err
	}
	r.Transactions = transactions
	r.TransactionCount = len(transactions)
	if len(transactions) == 0 {
		return r, nil
	}

	total := decimal.Zero
	for _, txn := range transactions {
		total = total.Add(txn.Amount)
		key := dates.ISO(txn.Date)
		r.DailyTotals[key] = r.DailyTotals[key].Add(txn.Amount)
	}
	r.TotalAmount = total
	r.AverageAmount = total.Div(decimal.NewFromInt(int64(len(transactions)))).Round(2)

	return r, nil
}

// Compare reports the change from base to other.
func (g *Generator) Compare(ctx context.Context, base, other dates.Range) (*Comparison, error) {
	p1, err := g.period(ctx, base)
	if err != nil {
		return nil, err
	}
	p2, err := g.period(ctx, other)
	if err != nil {
		return nil, err
	}

	incomeChange := p2.Summary.TotalIncome.Sub(p1.Summary.TotalIncome)
	expenseChange := p2.Summary.TotalExpenses.Sub(p1.Summary.TotalExpenses)

	return &Comparison{
		Period1: p1,
		Period2: p2,
		Changes: Changes{
			IncomeChange:         incomeChange,
			ExpenseChange:        expenseChange,
			NetChange:            p2.Summary.NetBalance.Sub(p1.Summary.NetBalance),
			IncomeChangePercent:  percentChange(incomeChange, p1.Summary.TotalIncome),
			ExpenseChangePercent: percentChange(expenseChange, p1.Summary.TotalExpenses),
		},
	}, nil
}

func (g *Generator) period(ctx context.Context, r dates.Range) (PeriodData, error) {
	summary, categories, err := g.window(ctx, r.Start, r.End)
	if err != nil {
		return PeriodData{}, err
	}
	return PeriodData{Start: r.Start, End: r.End, Summary: summary, Categories: categories}, nil
}

func (g *Generator) fill(ctx context.Context, r dates.Range, summary *model.TransactionSummary,
	transactions *[]model.Transaction, categories *[]model.CategorySummary,
) error {
	txns, err := g.src.List(ctx, ledger.Filter{Start: &r.Start, End: &r.End})
	if err != nil {
		return err
	}
	s, cats, err := g.window(ctx, r.Start, r.End)
	if err != nil {
		return err
	}
	*summary, *transactions, *categories = s, txns, cats
	return nil
}

func (g *Generator) window(ctx context.Context, start, end time.Time) (model.TransactionSummary, []model.CategorySummary, error) {
	summary, err := g.summarize(ctx, start, end)
	if err != nil {
		return model.TransactionSummary{}, nil, err
	}
	categories, err := g.src.CategorySummary(ctx, &start, &end, nil)
	if err != nil {
		return model.TransactionSummary{}, nil, err
	}
	return summary, categories, nil
}

func (g *Generator) summarize(ctx context.Context, start, end time.Time) (model.TransactionSummary, error) {
	summary, err := g.src.Summarize(ctx, &start, &end)
	if err != nil {
		return model.TransactionSummary{}, err
	}
	return *summary, nil
}

func (g *Generator) today() time.Time {
	return dates.Day(g.now())
}

func dayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := dates.Day(*t)
	return &d
}
