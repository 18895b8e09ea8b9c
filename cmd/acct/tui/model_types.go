package tui

import (
	"context"
	"errors"
	"time"

	"accountability/internal/analysis"
	"accountability/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// Processor submits one query to the analysis service. *client.Client
// satisfies it.
type Processor interface {
	Process(ctx context.Context, query string) (*analysis.AnalysisResult, error)
}

// DefaultTickInterval paces the loading log.
const DefaultTickInterval = 2 * time.Second

// SlowRequestThreshold is the request duration above which a warning is
// logged.
const SlowRequestThreshold = 30 * time.Second

// ErrNoResult is reported when a Processor returns neither a result nor an
// error.
var ErrNoResult = errors.New("service returned no result")

// InputPlaceholder is shown in the empty query input.
const InputPlaceholder = "Enter your query..."

// loadingMessages cycle through the loading log, one per tick.
var loadingMessages = []string{
	"[STATUS] Initializing secure protocols...",
	"[TASK] Querying external data sources...",
	"[PROGRESS] Analyzing data streams...",
	"[TASK] Synthesizing comprehensive narrative...",
	"[STATUS] Extracting entities...",
	"[COMPLETE] Finalizing report...",
}

// Messages carry the Loading attempt they belong to so that anything
// arriving after the attempt ended is dropped.

// resultMsg delivers a decoded analysis result.
type resultMsg struct {
	attempt string
	result  *analysis.AnalysisResult
}

// errorMsg delivers a failed request.
type errorMsg struct {
	attempt string
	err     error
}

// loadingTickMsg advances the loading log.
type loadingTickMsg struct {
	attempt string
}

// configReloadedMsg carries a configuration reloaded from disk.
type configReloadedMsg struct {
	cfg *config.Config
}

// keyMap holds the bindings shown in the footer help.
type keyMap struct {
	Submit   key.Binding
	TryAgain key.Binding
	NewQuery key.Binding
	Scroll   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		TryAgain: key.NewBinding(
			key.WithKeys("enter", "r", "esc"),
			key.WithHelp("enter/r", "try again"),
		),
		NewQuery: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "new query"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "pgup", "pgdown", "home", "end", "k", "j"),
			key.WithHelp("↑/↓", "scroll"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
