// Package viewstate models the client's screen as a single tagged state.
//
// Exactly one of Idle, Loading, Result or Failed is current. Keeping these in
// one variant, rather than as independent loading/result/error flags, makes
// combinations such as "loading with a stale error" unrepresentable.
package viewstate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"accountability/internal/analysis"

	"github.com/google/uuid"
)

var (
	// ErrInvalidTransition is returned when an action is not allowed from
	// the current state. The state is left unchanged.
	ErrInvalidTransition = errors.New("invalid view state transition")

	// ErrStaleAttempt is returned when an outcome arrives for a loading
	// attempt that is no longer current.
	ErrStaleAttempt = errors.New("outcome for a stale attempt")

	// ErrEmptyQuery is returned when a blank query is submitted.
	ErrEmptyQuery = errors.New("query is empty")
)

// Kind identifies the variant held by a State.
type Kind int

const (
	KindIdle Kind = iota
	KindLoading
	KindResult
	KindFailed
)

// String returns the display name for each kind
func (k Kind) String() string {
	names := []string{"idle", "loading", "result", "error"}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// State is one of Idle, Loading, Result or Failed.
type State interface {
	Kind() Kind
	isState()
}

// Idle shows the query prompt.
type Idle struct{}

// Loading is a single in-flight query.
type Loading struct {
	Query   string
	Attempt string
	Started time.Time
}

// Result shows the dashboard for Data.
type Result struct {
	Data *analysis.AnalysisResult
}

// Failed shows an error panel with Message.
type Failed struct {
	Message string
}

func (Idle) Kind() Kind    { return KindIdle }
func (Loading) Kind() Kind { return KindLoading }
func (Result) Kind() Kind  { return KindResult }
func (Failed) Kind() Kind  { return KindFailed }

func (Idle) isState()    {}
func (Loading) isState() {}
func (Result) isState()  {}
func (Failed) isState()  {}

// Machine owns the current State and applies transitions.
// The zero value starts in Idle.
type Machine struct {
	state      State
	newAttempt func() string
	now        func() time.Time
}

// New returns a Machine in Idle.
func New() Machine {
	return Machine{
		state:      Idle{},
		newAttempt: uuid.NewString,
		now:        time.Now,
	}
}

// State returns the current state.
func (m *Machine) State() State {
	if m.state == nil {
		return Idle{}
	}
	return m.state
}

// Kind is shorthand for State().Kind().
func (m *Machine) Kind() Kind {
	return m.State().Kind()
}

// Submit moves Idle to Loading for a non-blank query and returns the new
// Loading state. Leading and trailing whitespace is removed from the query.
func (m *Machine) Submit(query string) (Loading, error) {
	if m.Kind() != KindIdle {
		return Loading{}, fmt.Errorf("submit from %s: %w", m.Kind(), ErrInvalidTransition)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return Loading{}, ErrEmptyQuery
	}
	gen := m.newAttempt
	if gen == nil {
		gen = uuid.NewString
	}
	now := m.now
	if now == nil {
		now = time.Now
	}
	l := Loading{Query: query, Attempt: gen(), Started: now()}
	m.state = l
	return l, nil
}

// Resolve moves Loading to Result when attempt is the current one.
func (m *Machine) Resolve(attempt string, data *analysis.AnalysisResult) error {
	if err := m.checkAttempt(attempt); err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("resolve with nil result: %w", ErrInvalidTransition)
	}
	m.state = Result{Data: data}
	return nil
}

// Fail moves Loading to Failed when attempt is the current one. The message
// is err's text.
func (m *Machine) Fail(attempt string, err error) error {
	if cerr := m.checkAttempt(attempt); cerr != nil {
		return cerr
	}
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	m.state = Failed{Message: msg}
	return nil
}

// Acknowledge moves Failed back to Idle ("Try Again").
func (m *Machine) Acknowledge() error {
	if m.Kind() != KindFailed {
		return fmt.Errorf("acknowledge from %s: %w", m.Kind(), ErrInvalidTransition)
	}
	m.state = Idle{}
	return nil
}

// NewQuery moves Result back to Idle, discarding the result.
func (m *Machine) NewQuery() error {
	if m.Kind() != KindResult {
		return fmt.Errorf("new query from %s: %w", m.Kind(), ErrInvalidTransition)
	}
	m.state = Idle{}
	return nil
}

// IsCurrentAttempt reports whether the machine is Loading attempt.
func (m *Machine) IsCurrentAttempt(attempt string) bool {
	l, ok := m.State().(Loading)
	return ok && l.Attempt == attempt
}

func (m *Machine) checkAttempt(attempt string) error {
	l, ok := m.State().(Loading)
	if !ok {
		return fmt.Errorf("outcome while %s: %w", m.Kind(), ErrInvalidTransition)
	}
	if l.Attempt != attempt {
		return ErrStaleAttempt
	}
	return nil
}
