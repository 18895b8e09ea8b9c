package viewstate

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"accountability/internal/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMachine() Machine {
	n := 0
	m := New()
	m.newAttempt = func() string {
		n++
		return fmt.Sprintf("attempt-%d", n)
	}
	m.now = func() time.Time { return time.Unix(1700000000, 0) }
	return m
}

func TestMachine_StartsIdle(t *testing.T) {
	m := New()
	assert.Equal(t, KindIdle, m.Kind())

	var zero Machine
	assert.Equal(t, KindIdle, zero.Kind())
	_, err := zero.Submit("q")
	require.NoError(t, err)
	assert.Equal(t, KindLoading, zero.Kind())
}

func TestMachine_HappyPath(t *testing.T) {
	m := newTestMachine()

	l, err := m.Submit("  test case ")
	require.NoError(t, err)
	assert.Equal(t, "test case", l.Query)
	assert.Equal(t, "attempt-1", l.Attempt)
	assert.Equal(t, KindLoading, m.Kind())
	assert.True(t, m.IsCurrentAttempt("attempt-1"))

	data := &analysis.AnalysisResult{Query: "test case"}
	require.NoError(t, m.Resolve(l.Attempt, data))
	res, ok := m.State().(Result)
	require.True(t, ok)
	assert.Same(t, data, res.Data)
	assert.False(t, m.IsCurrentAttempt("attempt-1"))

	require.NoError(t, m.NewQuery())
	assert.Equal(t, KindIdle, m.Kind())
}

func TestMachine_FailureAndAcknowledge(t *testing.T) {
	m := newTestMachine()
	l, err := m.Submit("q")
	require.NoError(t, err)

	require.NoError(t, m.Fail(l.Attempt, errors.New("HTTP error! status: 500 - server error")))
	f, ok := m.State().(Failed)
	require.True(t, ok)
	assert.Contains(t, f.Message, "500")
	assert.Contains(t, f.Message, "server error")

	require.NoError(t, m.Acknowledge())
	assert.Equal(t, KindIdle, m.Kind())
}

func TestMachine_FailNilError(t *testing.T) {
	m := newTestMachine()
	l, _ := m.Submit("q")
	require.NoError(t, m.Fail(l.Attempt, nil))
	assert.Equal(t, Failed{Message: "unknown error"}, m.State())
}

func TestMachine_RejectsInvalidTransitions(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *Machine)
		act   func(m *Machine) error
		want  Kind
	}{
		{
			name: "acknowledge from idle",
			act:  func(m *Machine) error { return m.Acknowledge() },
			want: KindIdle,
		},
		{
			name: "new query from idle",
			act:  func(m *Machine) error { return m.NewQuery() },
			want: KindIdle,
		},
		{
			name: "resolve from idle",
			act:  func(m *Machine) error { return m.Resolve("x", &analysis.AnalysisResult{}) },
			want: KindIdle,
		},
		{
			name:  "submit while loading",
			setup: func(m *Machine) { _, _ = m.Submit("first") },
			act: func(m *Machine) error {
				_, err := m.Submit("second")
				return err
			},
			want: KindLoading,
		},
		{
			name:  "acknowledge while loading",
			setup: func(m *Machine) { _, _ = m.Submit("first") },
			act:   func(m *Machine) error { return m.Acknowledge() },
			want:  KindLoading,
		},
		{
			name: "submit from result",
			setup: func(m *Machine) {
				l, _ := m.Submit("first")
				_ = m.Resolve(l.Attempt, &analysis.AnalysisResult{})
			},
			act: func(m *Machine) error {
				_, err := m.Submit("second")
				return err
			},
			want: KindResult,
		},
		{
			name: "acknowledge from result",
			setup: func(m *Machine) {
				l, _ := m.Submit("first")
				_ = m.Resolve(l.Attempt, &analysis.AnalysisResult{})
			},
			act:  func(m *Machine) error { return m.Acknowledge() },
			want: KindResult,
		},
		{
			name: "new query from error",
			setup: func(m *Machine) {
				l, _ := m.Submit("first")
				_ = m.Fail(l.Attempt, errors.New("boom"))
			},
			act:  func(m *Machine) error { return m.NewQuery() },
			want: KindFailed,
		},
		{
			name:  "resolve with nil data",
			setup: func(m *Machine) { _, _ = m.Submit("first") },
			act: func(m *Machine) error {
				return m.Resolve("attempt-1", nil)
			},
			want: KindLoading,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine()
			if tt.setup != nil {
				tt.setup(&m)
			}
			err := tt.act(&m)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tt.want, m.Kind())
		})
	}
}

func TestMachine_EmptyQueryStaysIdle(t *testing.T) {
	m := newTestMachine()
	_, err := m.Submit(" \n\t ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Equal(t, KindIdle, m.Kind())
}

func TestMachine_StaleAttemptIgnored(t *testing.T) {
	m := newTestMachine()
	first, _ := m.Submit("first")
	require.NoError(t, m.Fail(first.Attempt, errors.New("boom")))
	require.NoError(t, m.Acknowledge())

	second, _ := m.Submit("second")
	assert.NotEqual(t, first.Attempt, second.Attempt)

	err := m.Resolve(first.Attempt, &analysis.AnalysisResult{Query: "first"})
	assert.ErrorIs(t, err, ErrStaleAttempt)
	assert.Equal(t, KindLoading, m.Kind())
	assert.True(t, m.IsCurrentAttempt(second.Attempt))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "idle", KindIdle.String())
	assert.Equal(t, "loading", KindLoading.String())
	assert.Equal(t, "result", KindResult.String())
	assert.Equal(t, "error", KindFailed.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
