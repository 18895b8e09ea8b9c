// Package tui is the interactive terminal client: a bubbletea program that
// collects a query, shows the loading log while the request runs, and then
// renders either the result dashboard or the error panel.
package tui

import (
	"context"
	"time"

	"accountability/cmd/acct/ui"
	"accountability/internal/client"
	"accountability/internal/config"
	"accountability/internal/logging"
	"accountability/internal/viewstate"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Model is the bubbletea model. All state lives in machine; the widgets
// only mirror it.
type Model struct {
	ctx     context.Context
	proc    Processor
	machine viewstate.Machine

	// Widgets
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	// Rendering
	styles    ui.Styles
	layout    ui.LayoutConfig
	dashboard *ui.CachedRender
	resultSeq int

	// Loading log for the current attempt
	logLines     []string
	logIndex     int
	current      string
	tickInterval time.Duration

	configUpdates <-chan *config.Config

	logger *zap.Logger
}

// NewModel creates a Model in the Idle state. ctx bounds every request the
// model starts.
func NewModel(ctx context.Context, proc Processor, styles ui.Styles) Model {
	ti := textinput.New()
	ti.Placeholder = InputPlaceholder
	ti.Prompt = ""
	ti.TextStyle = styles.UserInput
	ti.PlaceholderStyle = styles.Placeholder
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	layout := ui.NewLayoutConfig(ui.DefaultWidth, 24)
	vp := viewport.New(layout.ContentWidth(), layout.ContentHeight())

	return Model{
		ctx:          ctx,
		proc:         proc,
		machine:      viewstate.New(),
		input:        ti,
		spinner:      sp,
		viewport:     vp,
		help:         help.New(),
		keys:         defaultKeyMap(),
		styles:       styles,
		layout:       layout,
		dashboard:    ui.NewCachedRender(ui.NewRenderCache(4)),
		tickInterval: DefaultTickInterval,
		logger:       logging.Get(logging.CategoryTUI),
	}
}

// WithConfigUpdates makes the model apply configurations received on ch.
// Only the theme takes effect without a restart.
func (m Model) WithConfigUpdates(ch <-chan *config.Config) Model {
	m.configUpdates = ch
	return m
}

// Init starts the cursor blinking and, when configured, listens for config
// reloads.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.SetWindowTitle(ui.AppTitle), m.waitForConfig())
}

// State returns the current view state.
func (m Model) State() viewstate.State {
	return m.machine.State()
}

// processCmd runs the request off the update loop. The attempt ID doubles as
// the request ID so client and TUI logs correlate.
func (m Model) processCmd(l viewstate.Loading) tea.Cmd {
	proc := m.proc
	ctx := client.WithRequestID(m.ctx, l.Attempt)
	return func() tea.Msg {
		log := logging.WithRequestID(logging.CategoryTUI, l.Attempt)
		timer := logging.StartTimer(logging.CategoryTUI, "process")
		res, err := proc.Process(ctx, l.Query)
		timer.StopWithThreshold(SlowRequestThreshold)
		if err == nil && res == nil {
			err = ErrNoResult
		}
		if err != nil {
			log.Debug("request failed", zap.Error(err))
			return errorMsg{attempt: l.Attempt, err: err}
		}
		log.Debug("request succeeded", zap.Bool("cached", res.Cached))
		return resultMsg{attempt: l.Attempt, result: res}
	}
}

// tickCmd schedules the next loading log line for attempt.
func (m Model) tickCmd(attempt string) tea.Cmd {
	return tea.Tick(m.tickInterval, func(time.Time) tea.Msg {
		return loadingTickMsg{attempt: attempt}
	})
}

// waitForConfig blocks on the next config reload.
func (m Model) waitForConfig() tea.Cmd {
	ch := m.configUpdates
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return configReloadedMsg{cfg: cfg}
	}
}

// applyStyles switches every widget to styles and re-renders the dashboard.
func (m *Model) applyStyles(styles ui.Styles) {
	m.styles = styles
	m.input.TextStyle = styles.UserInput
	m.input.PlaceholderStyle = styles.Placeholder
	m.spinner.Style = styles.Spinner
	m.dashboard.Invalidate()
	m.refreshDashboard()
}

// refreshDashboard renders the current result into the viewport.
func (m *Model) refreshDashboard() {
	res, ok := m.machine.State().(viewstate.Result)
	if !ok {
		return
	}
	width := m.layout.ContentWidth()
	content := m.dashboard.Render(
		[]interface{}{m.resultSeq, width, m.styles.Theme.IsDark},
		func() string { return ui.RenderDashboard(res.Data, m.styles, width) },
	)
	m.viewport.SetContent(content)
}

// resize applies a new terminal size.
func (m *Model) resize(width, height int) {
	m.layout = ui.NewLayoutConfig(width, height)
	m.viewport.Width = m.layout.ContentWidth()
	// Leave room for the New Query button row.
	m.viewport.Height = max(m.layout.ContentHeight()-3, 1)
	m.input.Width = ui.PromptWindowWidth - len(ui.PromptLabel) - 8
	m.help.Width = width
	m.refreshDashboard()
}
