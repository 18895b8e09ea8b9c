package tui

import (
	"accountability/cmd/acct/ui"
	"accountability/internal/viewstate"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// View renders header, the body for the current state, and the footer.
func (m Model) View() string {
	width := m.layout.TerminalWidth
	height := m.layout.ContentHeight()

	var body string
	switch st := m.machine.State().(type) {
	case viewstate.Idle:
		body = lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			ui.RenderPrompt(m.input.View(), m.styles, width))

	case viewstate.Loading:
		body = lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			ui.RenderLoading(m.logLines, m.current, m.spinner.View(), m.styles, width))

	case viewstate.Failed:
		body = lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			ui.RenderErrorPanel(st.Message, m.styles, width))

	case viewstate.Result:
		button := lipgloss.PlaceHorizontal(width, lipgloss.Center, m.styles.RenderButton(ui.NewQueryLabel))
		body = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.PlaceHorizontal(width, lipgloss.Center, m.viewport.View()),
			button,
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.RenderHeader(width),
		body,
		m.styles.RenderFooter(width, m.help.ShortHelpView(m.helpBindings())),
	)
}

// helpBindings returns the keys that do something in the current state.
func (m Model) helpBindings() []key.Binding {
	switch m.machine.Kind() {
	case viewstate.KindIdle:
		return []key.Binding{m.keys.Submit, m.keys.Quit}
	case viewstate.KindFailed:
		return []key.Binding{m.keys.TryAgain, m.keys.Quit}
	case viewstate.KindResult:
		return []key.Binding{m.keys.NewQuery, m.keys.Scroll, m.keys.Quit}
	default:
		return []key.Binding{m.keys.Quit}
	}
}
