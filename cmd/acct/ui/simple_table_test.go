package ui

import (
	"strings"
	"testing"
)

func TestSimpleTable(t *testing.T) {
	table := NewSimpleTable("Configuration", []string{"Key", "Value"})
	table.AddRow("api.base_url", "http://localhost:8000")
	table.AddRow("ui.theme")

	view := plain(table.View(NewStyles(DarkTheme())))
	t.Logf("View:\n%s", view)

	if !strings.Contains(view, "Configuration") {
		t.Error("View missing title")
	}
	if !strings.Contains(view, "http://localhost:8000") {
		t.Error("View missing cell content")
	}
	if !strings.Contains(view, "ui.theme") {
		t.Error("View missing short row")
	}
	if !strings.Contains(view, "─────") {
		t.Error("View missing header divider")
	}
}

func TestSimpleTableEmpty(t *testing.T) {
	table := NewSimpleTable("Empty", []string{"A"})
	if got := table.View(NewStyles(DarkTheme())); got != "" {
		t.Errorf("expected empty view, got %q", got)
	}
}
