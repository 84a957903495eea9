package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/crepepos/backoffice/internal/model"
)

// Run opens the sales browser over the given list and blocks until the
// user quits or the context is canceled.
func Run(ctx context.Context, sales []model.Sale) error {
	program := tea.NewProgram(
		NewModel(sales),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("sales browser failed: %w", err)
	}

	return nil
}
