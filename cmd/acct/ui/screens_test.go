package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderErrorPanel(t *testing.T) {
	out := plain(RenderErrorPanel("HTTP error! status: 500 - server error", NewStyles(DarkTheme()), 100))
	assert.Contains(t, out, ErrorTitle)
	assert.Contains(t, out, "500")
	assert.Contains(t, out, "server error")
	assert.Contains(t, out, TryAgainLabel)
}

func TestRenderPrompt(t *testing.T) {
	out := plain(RenderPrompt("Enter your query...", NewStyles(DarkTheme()), 120))
	assert.Contains(t, out, PromptLabel+" Enter your query...")
}

func TestRenderLoading(t *testing.T) {
	s := NewStyles(DarkTheme())

	t.Run("no log yet", func(t *testing.T) {
		out := plain(RenderLoading(nil, "[STATUS] Initializing secure protocols...", "*", s, 80))
		assert.Contains(t, out, "[STATUS] Initializing secure protocols...")
	})

	t.Run("caps log lines", func(t *testing.T) {
		var log []string
		for i := 0; i < 15; i++ {
			log = append(log, fmt.Sprintf("line-%02d", i))
		}
		out := plain(RenderLoading(log, "line-14", "*", s, 80))
		assert.NotContains(t, out, "line-04")
		assert.Contains(t, out, "line-05")
		assert.Less(t, strings.Index(out, "line-05"), strings.Index(out, "line-13"), "oldest first")
	})
}
