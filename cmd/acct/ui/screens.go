package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PromptLabel precedes the query input.
const PromptLabel = "user@accountability-plus:~$"

// Button labels.
const (
	TryAgainLabel = "Try Again"
	NewQueryLabel = "New Query"
)

// ErrorTitle heads the error panel.
const ErrorTitle = "Error Occurred"

// MaxLogLines caps the loading log. Each older line is 10% dimmer, so lines
// past the tenth would be invisible anyway.
const MaxLogLines = 10

// RenderPrompt renders the idle terminal window around an input view.
func RenderPrompt(inputView string, s Styles, width int) string {
	w := min(PromptWindowWidth, max(width, MinimumTerminalWidth))
	body := s.Prompt.Render(PromptLabel) + " " + inputView
	return s.Window.Width(PanelInnerWidth(w)).Render(body)
}

// RenderLoading renders the loading log (oldest first, fading with age), the
// spinner and the current status message, centered in width.
func RenderLoading(log []string, current, spinnerView string, s Styles, width int) string {
	if len(log) > MaxLogLines {
		log = log[len(log)-MaxLogLines:]
	}

	lines := make([]string, 0, len(log)+3)
	for i, line := range log {
		age := len(log) - 1 - i
		style := s.LogLine.Foreground(s.Theme.Fade(1 - float64(age)*0.1))
		lines = append(lines, style.Render(line))
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}
	lines = append(lines, spinnerView, s.LogLine.Bold(true).Render(current))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// RenderErrorPanel renders the error message with the Try Again button.
func RenderErrorPanel(message string, s Styles, width int) string {
	w := min(ErrorPanelWidth, max(width, MinimumTerminalWidth))
	inner := PanelTextWidth(w) - 4
	body := strings.Join([]string{
		s.Error.Render(ErrorTitle),
		"",
		s.Body.Width(inner).Align(lipgloss.Center).Render(message),
		"",
		s.RenderButton(TryAgainLabel),
	}, "\n")
	panel := s.ErrorPanel.Width(PanelInnerWidth(w)).Render(body)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, panel)
}
