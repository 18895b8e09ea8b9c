// Package report writes an analysis result in non-interactive formats:
// Markdown, Markdown rendered for the terminal, and JSON.
package report

import (
	"fmt"
	"io"
	"strings"

	"accountability/internal/analysis"
)

// Format names an output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatRendered Format = "rendered"
	FormatJSON     Format = "json"
)

// Formats lists the formats this package can write.
var Formats = []Format{FormatMarkdown, FormatRendered, FormatJSON}

// Writer writes one analysis result to its destination.
type Writer interface {
	// Write returns the number of bytes written.
	Write(result *analysis.AnalysisResult) (int, error)
}

// Options tunes writers created by NewWriter.
type Options struct {
	// Width is the word-wrap width for rendered output. Zero means 80.
	Width int
	// Style is a glamour style name; "auto" (or empty) detects the terminal.
	Style string
}

// NewWriter returns the Writer for format.
func NewWriter(format Format, output io.Writer, opts Options) (Writer, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatRendered:
		return NewRenderedWriter(output, opts.Width, opts.Style), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	default:
		return nil, fmt.Errorf("unknown report format %q (valid: %v)", format, Formats)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
