package tui

import (
	"errors"

	"accountability/cmd/acct/ui"
	"accountability/internal/viewstate"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Update handles all messages. The view state only changes here.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case resultMsg:
		if err := m.machine.Resolve(msg.attempt, msg.result); err != nil {
			m.logDropped("result", msg.attempt, err)
			return m, nil
		}
		m.resultSeq++
		m.dashboard.Invalidate()
		m.refreshDashboard()
		m.viewport.GotoTop()
		m.logger.Info("state changed", zap.String("to", m.machine.Kind().String()), zap.String("attempt", msg.attempt))
		return m, nil

	case errorMsg:
		if err := m.machine.Fail(msg.attempt, msg.err); err != nil {
			m.logDropped("error", msg.attempt, err)
			return m, nil
		}
		m.logger.Info("state changed",
			zap.String("to", m.machine.Kind().String()),
			zap.String("attempt", msg.attempt),
			zap.Error(msg.err))
		return m, nil

	case loadingTickMsg:
		// A tick for an attempt that is no longer loading ends the ticker.
		if !m.machine.IsCurrentAttempt(msg.attempt) {
			return m, nil
		}
		m.advanceLog()
		return m, m.tickCmd(msg.attempt)

	case configReloadedMsg:
		m.applyStyles(ui.NewStyles(ui.ThemeFor(msg.cfg.UI.Theme)))
		m.logger.Info("theme applied", zap.String("theme", msg.cfg.UI.Theme))
		return m, m.waitForConfig()

	case spinner.TickMsg:
		if m.machine.Kind() != viewstate.KindLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other widget messages.
	if m.machine.Kind() == viewstate.KindIdle {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyMsg dispatches a key press according to the current view state.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.machine.Kind() {
	case viewstate.KindIdle:
		if key.Matches(msg, m.keys.Submit) {
			return m.submit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case viewstate.KindLoading:
		// Input is disabled until the request settles.
		return m, nil

	case viewstate.KindFailed:
		if key.Matches(msg, m.keys.TryAgain) {
			if err := m.machine.Acknowledge(); err == nil {
				return m, m.resetInput()
			}
		}
		return m, nil

	case viewstate.KindResult:
		if key.Matches(msg, m.keys.NewQuery) {
			if err := m.machine.NewQuery(); err == nil {
				m.viewport.SetContent("")
				return m, m.resetInput()
			}
		}
		if key.Matches(msg, m.keys.Scroll) {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	return m, nil
}

// submit moves Idle to Loading and starts the request, the loading ticker
// and the spinner. A blank query is ignored.
func (m Model) submit() (tea.Model, tea.Cmd) {
	l, err := m.machine.Submit(m.input.Value())
	if err != nil {
		if !errors.Is(err, viewstate.ErrEmptyQuery) {
			m.logger.Warn("submit rejected", zap.Error(err))
		}
		return m, nil
	}
	m.input.Blur()
	m.logLines = nil
	m.logIndex = 0
	m.current = loadingMessages[0]
	m.logger.Info("state changed", zap.String("to", m.machine.Kind().String()), zap.String("attempt", l.Attempt))

	return m, tea.Batch(m.processCmd(l), m.tickCmd(l.Attempt), m.spinner.Tick)
}

// advanceLog appends the next loading message and makes it current.
func (m *Model) advanceLog() {
	line := loadingMessages[m.logIndex]
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > ui.MaxLogLines {
		m.logLines = m.logLines[len(m.logLines)-ui.MaxLogLines:]
	}
	m.current = line
	m.logIndex = (m.logIndex + 1) % len(loadingMessages)
}

// resetInput clears and refocuses the query input.
func (m *Model) resetInput() tea.Cmd {
	m.input.Reset()
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

func (m Model) logDropped(kind, attempt string, err error) {
	m.logger.Debug("outcome dropped",
		zap.String("kind", kind),
		zap.String("attempt", attempt),
		zap.String("state", m.machine.Kind().String()),
		zap.Error(err))
}
