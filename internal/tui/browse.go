// Package tui provides a read-only terminal browser for ledger transactions.
package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/dates"
	"github.com/Veraticus/tally/internal/model"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Lines used by everything around the table: title, subtitle, totals,
// search prompt, help and spacing.
const chromeHeight = 8

// Option configures a Model.
type Option func(*Model)

// WithTheme sets the color theme.
func WithTheme(t Theme) Option {
	return func(m *Model) { m.theme = t }
}

// WithTitle sets the header shown above the table.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithCurrency sets the currency symbol used for amounts.
func WithCurrency(symbol string) Option {
	return func(m *Model) { m.currency = symbol }
}

// Model is the bubbletea model of the transaction browser.
type Model struct {
	typeFilter *model.TransactionType
	keys       KeyMap
	theme      Theme
	title      string
	currency   string
	query      string
	all        []model.Transaction
	visible    []model.Transaction
	search     textinput.Model
	help       help.Model
	table      table.Model
	width      int
	height     int
	searching  bool
	detail     bool
}

// NewModel creates a browser over txs, kept in the given order.
func NewModel(txs []model.Transaction, opts ...Option) Model {
	m := Model{
		keys:     DefaultKeyMap(),
		theme:    Default,
		title:    "Transactions",
		currency: "$",
		all:      txs,
		help:     help.New(),
		width:    100,
		height:   30,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.search = textinput.New()
	m.search.Placeholder = "description or category"
	m.search.CharLimit = 100
	m.search.Prompt = "Search: "

	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(m.height-chromeHeight),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = m.theme.Selected
	m.table.SetStyles(s)

	m.applyFilters()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetColumns(m.columns())
		m.table.SetHeight(max(m.height-chromeHeight, 3))
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.searching:
			return m.updateSearch(msg)
		case m.detail:
			if key.Matches(msg, m.keys.Detail, m.keys.Quit) {
				m.detail = false
			}
			return m, nil
		}
		return m.updateNormal(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.query)
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.CycleType):
		m.typeFilter = nextType(m.typeFilter)
		m.applyFilters()
		return m, nil
	case key.Matches(msg, m.keys.ClearQuery):
		m.query = ""
		m.applyFilters()
		return m, nil
	case key.Matches(msg, m.keys.Detail):
		if len(m.visible) > 0 {
			m.detail = true
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// updateSearch filters as the user types. Enter keeps the query, Esc drops it.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.query = ""
		m.applyFilters()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.query = strings.TrimSpace(m.search.Value())
	m.applyFilters()
	return m, cmd
}

func nextType(t *model.TransactionType) *model.TransactionType {
	var next model.TransactionType
	switch {
	case t == nil:
		next = model.TransactionTypeExpense
	case *t == model.TransactionTypeExpense:
		next = model.TransactionTypeIncome
	default:
		return nil
	}
	return &next
}

func (m *Model) applyFilters() {
	query := strings.ToLower(m.query)
	m.visible = make([]model.Transaction, 0, len(m.all))
	for _, tx := range m.all {
		if m.typeFilter != nil && tx.Type != *m.typeFilter {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(tx.Description), query) &&
			!strings.Contains(strings.ToLower(tx.CategoryName), query) {
			continue
		}
		m.visible = append(m.visible, tx)
	}

	rows := make([]table.Row, 0, len(m.visible))
	for _, tx := range m.visible {
		rows = append(rows, m.row(tx))
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m Model) columns() []table.Column {
	description := max(m.width-10-9-14-20-10, 15)
	return []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Type", Width: 9},
		{Title: "Amount", Width: 14},
		{Title: "Category", Width: 20},
		{Title: "Description", Width: description},
	}
}

func (m Model) row(tx model.Transaction) table.Row {
	category := tx.CategoryName
	if category == "" {
		category = "Uncategorized"
	}
	return table.Row{
		dates.ISO(tx.Date),
		string(tx.Type),
		m.money(tx.SignedAmount()),
		category,
		tx.Description,
	}
}

func (m Model) money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + m.currency + d.Abs().StringFixed(2)
	}
	return m.currency + d.StringFixed(2)
}

// Selected returns the transaction under the cursor, if any.
func (m Model) Selected() (model.Transaction, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return model.Transaction{}, false
	}
	return m.visible[i], true
}

// Visible returns the transactions passing the current filters.
func (m Model) Visible() []model.Transaction {
	return m.visible
}

// Totals sums the visible transactions by type.
func (m Model) Totals() (income, expenses decimal.Decimal) {
	income, expenses = decimal.Zero, decimal.Zero
	for _, tx := range m.visible {
		if tx.Type == model.TransactionTypeIncome {
			income = income.Add(tx.Amount)
		} else {
			expenses = expenses.Add(tx.Amount)
		}
	}
	return income, expenses
}

// View implements tea.Model.
func (m Model) View() string {
	sections := []string{m.header()}

	if m.detail {
		sections = append(sections, m.detailView())
	} else {
		sections = append(sections, m.table.View())
	}

	if m.searching {
		sections = append(sections, m.search.View())
	}

	sections = append(sections, m.totals(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) header() string {
	status := fmt.Sprintf("Showing %d of %d", len(m.visible), len(m.all))
	if m.typeFilter != nil {
		status += " · type: " + string(*m.typeFilter)
	}
	if m.query != "" {
		status += fmt.Sprintf(" · search: %q", m.query)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(m.title),
		m.theme.Subtitle.Render(status))
}

func (m Model) totals() string {
	income, expenses := m.Totals()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		"Income ", m.theme.Income.Render(m.money(income)),
		"   Expenses ", m.theme.Expense.Render(m.money(expenses)),
		"   Net ", m.theme.Title.Render(m.money(income.Sub(expenses))))
}

func (m Model) detailView() string {
	tx, ok := m.Selected()
	if !ok {
		return ""
	}

	category := tx.CategoryName
	if category == "" {
		category = "Uncategorized"
	}
	description := tx.Description
	if description == "" {
		description = "-"
	}

	line := func(label, value string) string {
		return m.theme.Label.Render(label) + value
	}
	return m.theme.Detail.Render(lipgloss.JoinVertical(lipgloss.Left,
		line("ID", fmt.Sprintf("%d", tx.ID)),
		line("Date", dates.Long(tx.Date)),
		line("Type", string(tx.Type)),
		line("Amount", m.money(tx.Amount)),
		line("Category", category),
		line("Description", description),
		line("Created", tx.CreatedAt.Format("2006-01-02 15:04")),
	))
}
