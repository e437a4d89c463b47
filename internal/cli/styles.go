// Package cli provides styled terminal output and the interactive ledger shell.
package cli

import (
	"errors"
	"fmt"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/validation"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#5B8DEF")
	// IncomeColor marks money coming in.
	IncomeColor = lipgloss.Color("#4ECDC4")
	// ExpenseColor marks money going out.
	ExpenseColor = lipgloss.Color("#FF6B6B")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(IncomeColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ExpenseColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	incomeStyle  = lipgloss.NewStyle().Foreground(IncomeColor)
	expenseStyle = lipgloss.NewStyle().Foreground(ExpenseColor)
)

// Icons.
const (
	SuccessIcon  = "✅"
	ErrorIcon    = "❌"
	WarningIcon  = "⚠️"
	InfoIcon     = "ℹ️"
	WalletIcon   = "💰"
	ExpenseIcon  = "💸"
	ChartIcon    = "📊"
	CalendarIcon = "📅"
	FolderIcon   = "📂"
	SearchIcon   = "🔍"
	EmptyIcon    = "📭"
	NoteIcon     = "📝"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the wallet icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(WalletIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// FormatAmount renders an amount with its sign, colored by transaction type.
func FormatAmount(amount decimal.Decimal, typ model.TransactionType, currency string) string {
	if typ == model.TransactionTypeExpense {
		return expenseStyle.Render("-" + currency + amount.StringFixed(2))
	}
	return incomeStyle.Render("+" + currency + amount.StringFixed(2))
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, boxTitle, content))
}

// ErrorMessage turns a ledger or validation error into the text shown to the user.
func ErrorMessage(err error) string {
	if verr, ok := validation.As(err); ok {
		return verr.Message
	}

	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	var mismatch *ledger.CategoryMismatchError
	switch {
	case errors.As(err, &mismatch):
		return fmt.Sprintf("Category type (%s) doesn't match transaction type (%s)",
			mismatch.CategoryType, mismatch.TransactionType)
	case errors.Is(err, ledger.ErrTransactionNotFound):
		return "Transaction not found"
	case errors.Is(err, ledger.ErrCategoryNotFound):
		return "Category not found"
	case errors.Is(err, ledger.ErrCategoryInUse):
		return "Category is being used by transactions and cannot be deleted"
	case errors.Is(err, ledger.ErrCategoryExists):
		return "Category name already exists"
	case errors.Is(err, ledger.ErrNoUpdates):
		return "No updates provided"
	default:
		return err.Error()
	}
}
