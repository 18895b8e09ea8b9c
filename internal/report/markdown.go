package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"accountability/internal/analysis"

	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs a result as a Markdown document.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(result *analysis.AnalysisResult) (int, error) {
	if result == nil {
		result = &analysis.AnalysisResult{}
	}
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeNarrative(md, result)
	w.writeEntities(md, result.Entities())
	w.writeLinks(md, result.Links())
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *analysis.AnalysisResult) {
	md.H1("Accountability++ Report")
	md.PlainText("")

	rows := [][]string{
		{"Query", escapeCell(result.Query)},
		{"Cached", yesNo(result.Cached)},
	}
	if result.VectorID != "" {
		rows = append(rows, []string{"Vector ID", "`" + result.VectorID + "`"})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if result.Error != "" {
		md.Warningf("The analysis service reported an error: %s", result.Error)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeNarrative(md *markdown.Markdown, result *analysis.AnalysisResult) {
	md.H2("Comprehensive Narrative")
	md.PlainText("")
	for _, p := range analysis.Paragraphs(result.SummaryText) {
		if strings.TrimSpace(p) == "" {
			continue
		}
		md.PlainText(p)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeEntities(md *markdown.Markdown, e analysis.ParsedEntities) {
	md.H2("Key Entities")
	md.PlainText("")

	if e.Empty() {
		md.PlainText(analysis.NoEntitiesText)
		md.PlainText("")
		return
	}

	var rows [][]string
	add := func(label, value string) {
		if value != "" {
			rows = append(rows, []string{label, escapeCell(value)})
		}
	}
	add("Accused", strings.Join(e.Accused, ", "))
	add("Victims", strings.Join(e.Victims, ", "))
	add("Organizations/Courts", strings.Join(e.Orgs, ", "))
	add("Crime", e.Crime)
	add("Verdict", e.Verdict)
	add("Outcome", e.Outcome)

	md.Table(markdown.TableSet{
		Header: []string{"Entity", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeLinks(md *markdown.Markdown, links []analysis.Link) {
	md.H2("Reference Links")
	md.PlainText("")

	if len(links) == 0 {
		md.PlainText(analysis.NoLinksText)
		md.PlainText("")
		return
	}

	rows := make([][]string, len(links))
	for i, l := range links {
		rows[i] = []string{
			fmt.Sprintf("[%s](%s)", escapeCell(l.DisplayTitle()), l.URL),
			dash(escapeCell(l.SourceName())),
			dash(l.Published),
			relevance(l.RelevanceScore),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Title", "Source", "Published", "Relevance"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by accountability++*")
}

// escapeCell keeps pipes and newlines from breaking table rows.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func relevance(score float64) string {
	if score == 0 {
		return "-"
	}
	return strconv.FormatFloat(score, 'f', 2, 64)
}
