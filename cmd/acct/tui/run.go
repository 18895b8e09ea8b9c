package tui

import (
	"context"
	"fmt"

	"accountability/cmd/acct/ui"
	"accountability/internal/config"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive client in the alternate screen and blocks until
// the user quits. Any request still in flight is cancelled on return. updates
// may be nil; otherwise each configuration received re-themes the UI.
func Run(ctx context.Context, proc Processor, styles ui.Styles, updates <-chan *config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewModel(ctx, proc, styles).WithConfigUpdates(updates)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive session failed: %w", err)
	}
	return nil
}
