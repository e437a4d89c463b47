package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/dates"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/report"
	"github.com/Veraticus/tally/internal/validation"
)

const (
	shellSearchLimit   = 20
	shellTopCategories = 10
)

var thinRule = strings.Repeat("-", 30)

// Shell is the menu-driven interactive mode.
type Shell struct {
	ledger   *ledger.Ledger
	reports  *report.Generator
	resolver *dates.Resolver
	prompt   *Prompter
	out      io.Writer
	currency string
}

// NewShell wires a shell to an explicit ledger, report generator and date resolver.
func NewShell(l *ledger.Ledger, g *report.Generator, resolver *dates.Resolver, in io.Reader, out io.Writer, currency string) *Shell {
	if currency == "" {
		currency = "$"
	}
	return &Shell{
		ledger:   l,
		reports:  g,
		resolver: resolver,
		prompt:   NewPrompter(in, out),
		out:      out,
		currency: currency,
	}
}

type menuItem struct {
	run   func(context.Context) error
	label string
}

func (s *Shell) menu() []menuItem {
	return []menuItem{
		{label: "Exit"},
		{label: "Add expense", run: func(ctx context.Context) error { return s.addTransaction(ctx, model.TransactionTypeExpense) }},
		{label: "Add income", run: func(ctx context.Context) error { return s.addTransaction(ctx, model.TransactionTypeIncome) }},
		{label: "View today's transactions", run: s.today},
		{label: "View transactions by date", run: s.byDate},
		{label: "Generate report", run: s.generateReport},
		{label: "View categories", run: s.categories},
		{label: "Search transactions", run: s.search},
		{label: "Show summary", run: s.summary},
		{label: "Help", run: s.help},
	}
}

// Run loops over the menu until the user exits, input ends, or ctx is canceled.
func (s *Shell) Run(ctx context.Context) error {
	s.println(WalletIcon + " Welcome to Tally!")
	s.println(strings.Repeat("=", 50))

	items := s.menu()
	for {
		s.println("", "📋 What would you like to do?")
		for i := 1; i < len(items); i++ {
			s.printf("%d. %s\n", i, items[i].label)
		}
		s.printf("0. %s\n", items[0].label)

		choice, err := s.prompt.Ask(ctx, fmt.Sprintf("\n👉 Enter your choice (0-%d): ", len(items)-1))
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ErrInputCancelled) {
				s.println("", "👋 Goodbye!")
				return nil
			}
			return err
		}

		if choice == "0" {
			s.println("", "👋 Thank you for using Tally! Goodbye!")
			return nil
		}

		item, ok := pick(items, choice)
		if !ok {
			s.println(FormatError(fmt.Sprintf("Invalid choice. Please enter a number between 0-%d.", len(items)-1)))
			continue
		}

		if err := item.run(ctx); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ErrInputCancelled) {
				s.println("", "👋 Goodbye!")
				return nil
			}
			slog.Debug("shell action failed", "action", item.label, "error", err)
			s.println("", FormatError(ErrorMessage(err)))
		}
	}
}

func pick(items []menuItem, choice string) (menuItem, bool) {
	for i := 1; i < len(items); i++ {
		if choice == fmt.Sprint(i) {
			return items[i], true
		}
	}
	return menuItem{}, false
}

func (s *Shell) addTransaction(ctx context.Context, typ model.TransactionType) error {
	s.println("", fmt.Sprintf("%s Adding %s", ExpenseIcon, titleCase(string(typ))), thinRule)

	var in ledger.NewTransaction
	in.Type = typ

	for {
		raw, err := s.prompt.Ask(ctx, "💵 Enter amount: "+s.currency)
		if err != nil {
			return err
		}
		amount, err := validation.ParseAmount(raw)
		if err == nil {
			in.Amount = amount
			break
		}
		s.println(FormatError(ErrorMessage(err)))
	}

	categories, err := s.ledger.ListCategories(ctx, &typ)
	if err != nil {
		return err
	}
	if len(categories) > 0 {
		s.println("", fmt.Sprintf("%s Available %s categories:", FolderIcon, typ))
		for _, c := range categories {
			s.printf("  %2d. %s\n", c.ID, c.Name)
		}

		raw, err := s.prompt.Ask(ctx, "\n"+FolderIcon+" Select category ID (or press Enter to skip): ")
		if err != nil {
			return err
		}
		if raw != "" {
			id, err := validation.ParseID(raw, "Category ID")
			switch {
			case err != nil:
				s.println(FormatError(ErrorMessage(err)))
			case !hasCategory(categories, id):
				s.println(FormatError("Invalid category for this transaction type."))
			default:
				in.CategoryID = &id
			}
		}
	}

	description, err := s.prompt.Ask(ctx, NoteIcon+" Enter description (optional): ")
	if err != nil {
		return err
	}
	in.Description = description

	for {
		raw, err := s.prompt.Ask(ctx, CalendarIcon+" Enter date (today/yesterday/YYYY-MM-DD) [today]: ")
		if err != nil {
			return err
		}
		if raw == "" {
			raw = "today"
		}
		date, err := s.resolver.ParseDate(raw, false)
		if err == nil {
			in.Date = &date
			break
		}
		s.println(FormatError(ErrorMessage(err)))
	}

	id, err := s.ledger.Add(ctx, in)
	if err != nil {
		return err
	}

	s.println("", FormatSuccess(fmt.Sprintf("Transaction added successfully with ID %d", id)))
	if txn, err := s.ledger.Get(ctx, id); err == nil && txn != nil {
		s.println(NoteIcon + " Added: " + report.FormatTransaction(*txn, s.renderOpts()...))
	}
	return nil
}

func hasCategory(categories []model.Category, id int64) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *Shell) today(ctx context.Context) error {
	s.println("", CalendarIcon+" Today's Transactions", thinRule)

	today := s.resolver.Today()
	txns, err := s.ledger.ListByDate(ctx, today)
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		s.println(EmptyIcon + " No transactions found for today.")
		return nil
	}
	s.printTransactions(txns)

	summary, err := s.ledger.Summarize(ctx, &today, &today)
	if err != nil {
		return err
	}
	s.println("", ChartIcon+" Today's Summary:")
	s.printTotals(summary, false)
	return nil
}

func (s *Shell) byDate(ctx context.Context) error {
	s.println("", CalendarIcon+" View Transactions by Date", thinRule)

	raw, err := s.prompt.Ask(ctx, CalendarIcon+" Enter date or date range (e.g., 'yesterday', '2023-12-01', 'this week'): ")
	if err != nil {
		return err
	}
	if raw == "" {
		s.println(FormatError("Date input is required."))
		return nil
	}

	window, err := s.resolver.ResolveWindow(raw)
	if err != nil {
		s.println(FormatError("Invalid date format: " + raw))
		return nil
	}

	txns, err := s.ledger.List(ctx, ledger.Filter{Start: &window.Start, End: &window.End})
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		s.println(EmptyIcon + " No transactions found for the specified date(s).")
		return nil
	}

	s.println("", fmt.Sprintf("📋 Found %d transaction(s):", len(txns)))
	s.printTransactions(txns)

	summary, err := s.ledger.Summarize(ctx, &window.Start, &window.End)
	if err != nil {
		return err
	}
	s.println("", fmt.Sprintf("%s Summary for %s:", ChartIcon, summary.Period))
	s.printTotals(summary, true)
	return nil
}

func (s *Shell) generateReport(ctx context.Context) error {
	s.println("", ChartIcon+" Generate Report", thinRule,
		"1. Daily report", "2. Weekly report", "3. Monthly report", "4. Yearly report")

	choice, err := s.prompt.Ask(ctx, "\n👉 Select report type (1-4): ")
	if err != nil {
		return err
	}

	kinds := map[string]report.Kind{
		"1": report.KindDaily, "2": report.KindWeekly, "3": report.KindMonthly, "4": report.KindYearly,
	}

	raw, err := s.prompt.Ask(ctx, CalendarIcon+" Enter date for report (or press Enter for today): ")
	if err != nil {
		return err
	}

	req := report.Request{}
	if raw != "" {
		date, err := s.resolver.Resolve(raw)
		if err != nil {
			s.println(FormatError("Invalid date format: " + raw))
			return nil
		}
		req.Date = &date
	}

	kind, ok := kinds[choice]
	if !ok {
		s.println(FormatError("Invalid choice."))
		return nil
	}
	req.Kind = kind

	r, err := s.reports.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("error generating report: %w", err)
	}

	s.println("")
	return report.Render(s.out, r, s.renderOpts()...)
}

func (s *Shell) categories(ctx context.Context) error {
	s.println("", FolderIcon+" Categories", thinRule)

	categories, err := s.ledger.ListCategories(ctx, nil)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		s.println(EmptyIcon + " No categories found.")
		return nil
	}

	s.println(GroupCategories(categories))
	return nil
}

func (s *Shell) search(ctx context.Context) error {
	s.println("", SearchIcon+" Search Transactions", thinRule)

	query, err := s.prompt.Ask(ctx, SearchIcon+" Enter search query: ")
	if err != nil {
		return err
	}

	txns, err := s.ledger.Search(ctx, query, shellSearchLimit)
	if err != nil {
		if _, ok := validation.As(err); ok {
			s.println(FormatError(ErrorMessage(err)))
			return nil
		}
		return err
	}
	if len(txns) == 0 {
		s.println(fmt.Sprintf("%s No transactions found matching '%s'.", EmptyIcon, query))
		return nil
	}

	s.println("", fmt.Sprintf("%s Found %d transaction(s) matching '%s':", SearchIcon, len(txns), query))
	s.printTransactions(txns)
	return nil
}

func (s *Shell) summary(ctx context.Context) error {
	s.println("", ChartIcon+" Summary Statistics", thinRule)

	raw, err := s.prompt.Ask(ctx, CalendarIcon+" Enter date range (or press Enter for all time): ")
	if err != nil {
		return err
	}

	var start, end *time.Time
	if raw != "" {
		window, err := s.resolver.ResolveWindow(raw)
		if err != nil {
			s.println(FormatError("Invalid date format: " + raw))
			return nil
		}
		start, end = &window.Start, &window.End
	}

	summary, err := s.ledger.Summarize(ctx, start, end)
	if err != nil {
		return err
	}
	categories, err := s.ledger.CategorySummary(ctx, start, end, nil)
	if err != nil {
		return err
	}

	s.println("", report.FormatSummary(*summary, s.renderOpts()...))
	if len(categories) > 0 {
		s.println("", FolderIcon+" Top Categories:", thinRule)
		if len(categories) > shellTopCategories {
			categories = categories[:shellTopCategories]
		}
		for _, c := range categories {
			s.println(report.FormatCategory(c, s.renderOpts()...))
		}
	}
	return nil
}

func (s *Shell) help(context.Context) error {
	s.println("",
		"❓ Help - Tally",
		strings.Repeat("=", 50),
		"Dates accept YYYY-MM-DD, MM/DD/YYYY and friends, plus today, yesterday,",
		"tomorrow, 'N days ago', 'last week' and 'last month'.",
		"Ranges accept 'this week', 'last week', 'this month', 'last month',",
		"'this year', 'last year' or '<date> to <date>'.",
		"Every command is also available non-interactively; run 'tally --help'.",
	)
	return nil
}

func (s *Shell) printTransactions(txns []model.Transaction) {
	for _, txn := range txns {
		s.println(report.FormatTransaction(txn, s.renderOpts()...))
	}
}

func (s *Shell) printTotals(summary *model.TransactionSummary, withCounts bool) {
	income := fmt.Sprintf("Income: +%s%s", s.currency, summary.TotalIncome.StringFixed(2))
	expenses := fmt.Sprintf("Expenses: -%s%s", s.currency, summary.TotalExpenses.StringFixed(2))
	if withCounts {
		income += fmt.Sprintf(" (%d transactions)", summary.IncomeCount)
		expenses += fmt.Sprintf(" (%d transactions)", summary.ExpenseCount)
	}
	net := summary.NetBalance.StringFixed(2)
	if !strings.HasPrefix(net, "-") {
		net = "+" + net
	}
	s.println(income, expenses, "Net: "+s.currency+net)
}

func (s *Shell) renderOpts() []report.RenderOption {
	return []report.RenderOption{report.WithCurrency(s.currency)}
}

func (s *Shell) println(lines ...string) {
	for _, line := range lines {
		_, _ = fmt.Fprintln(s.out, line)
	}
}

func (s *Shell) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

// GroupCategories lists categories under expense and income headings.
func GroupCategories(categories []model.Category) string {
	var b strings.Builder
	for _, group := range []struct {
		title string
		typ   model.TransactionType
	}{
		{title: ExpenseIcon + " Expense Categories:", typ: model.TransactionTypeExpense},
		{title: WalletIcon + " Income Categories:", typ: model.TransactionTypeIncome},
	} {
		var lines []string
		for _, c := range categories {
			if c.Type == group.typ {
				lines = append(lines, fmt.Sprintf("  %2d. %s", c.ID, c.Name))
			}
		}
		if len(lines) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(group.title + "\n" + strings.Join(lines, "\n"))
	}
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
