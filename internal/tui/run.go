package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// Lister loads the transactions to browse.
type Lister interface {
	List(ctx context.Context, f ledger.Filter) ([]model.Transaction, error)
}

// Browse loads the transactions matching f and runs the browser until the
// user quits or ctx is canceled.
func Browse(ctx context.Context, src Lister, f ledger.Filter, opts []Option, progOpts ...tea.ProgramOption) error {
	txs, err := src.List(ctx, f)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	progOpts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, progOpts...)
	p := tea.NewProgram(NewModel(txs, opts...), progOpts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
