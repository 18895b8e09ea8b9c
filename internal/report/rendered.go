package report

import (
	"bytes"
	"fmt"
	"io"

	"accountability/internal/analysis"

	"github.com/charmbracelet/glamour"
)

// RenderedWriter renders the Markdown report for a terminal with glamour.
type RenderedWriter struct {
	baseWriter
	width int
	style string
}

// NewRenderedWriter creates a RenderedWriter. width <= 0 means 80; an empty
// style or "auto" picks dark or light from the terminal.
func NewRenderedWriter(output io.Writer, width int, style string) *RenderedWriter {
	if width <= 0 {
		width = 80
	}
	return &RenderedWriter{
		baseWriter: newBaseWriter(output),
		width:      width,
		style:      style,
	}
}

// Write renders the report and writes it to the output.
func (w *RenderedWriter) Write(result *analysis.AnalysisResult) (int, error) {
	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(result); err != nil {
		return 0, fmt.Errorf("failed to build markdown: %w", err)
	}

	styleOpt := glamour.WithAutoStyle()
	if w.style != "" && w.style != "auto" {
		styleOpt = glamour.WithStylePath(w.style)
	}
	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(w.width))
	if err != nil {
		return 0, fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := renderer.Render(buf.String())
	if err != nil {
		return 0, fmt.Errorf("failed to render markdown: %w", err)
	}
	return io.WriteString(w.output, out)
}
