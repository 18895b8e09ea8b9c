package ui

import (
	"fmt"
	"strings"

	"accountability/internal/analysis"

	"github.com/charmbracelet/lipgloss"
)

// Panel headings.
const (
	QueryHeading     = "> Query:"
	NarrativeHeading = "> Comprehensive Narrative:"
	EntitiesHeading  = "> Key Entities:"
	LinksHeading     = "> Reference Links:"
)

// RenderDashboard renders a result as the query, narrative, entities and
// links panels. width is the total width available; narrative and entities
// sit side by side from CompactModeWidth upward.
func RenderDashboard(result *analysis.AnalysisResult, s Styles, width int) string {
	if result == nil {
		result = &analysis.AnalysisResult{}
	}
	layout := NewLayoutConfig(width, 0)
	width = layout.TerminalWidth

	query := renderQueryPanel(result, s, width)

	var middle string
	if layout.SideBySide() {
		leftW, rightW := SplitPaneWidths(width)
		leftBody := narrativeBody(result.SummaryText, s, leftW)
		rightBody := entitiesBody(result.Entities(), s, rightW)
		// Equal heights keep the bottom borders aligned.
		h := max(
			lipgloss.Height(renderPanel(s, leftW, 0, leftBody)),
			lipgloss.Height(renderPanel(s, rightW, 0, rightBody)),
		)
		left := renderPanel(s, leftW, h, leftBody)
		right := renderPanel(s, rightW, h, rightBody)
		middle = lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", SplitPaneDivider), right)
	} else {
		middle = lipgloss.JoinVertical(lipgloss.Left,
			renderPanel(s, width, 0, narrativeBody(result.SummaryText, s, width)),
			renderPanel(s, width, 0, entitiesBody(result.Entities(), s, width)),
		)
	}

	links := renderLinks(result.Links(), s, width)

	return lipgloss.JoinVertical(lipgloss.Left, query, middle, links)
}

// renderPanel draws a bordered panel of outer width w. height is the outer
// height; zero lets the content decide.
func renderPanel(s Styles, w, height int, body string) string {
	style := s.Panel.Width(PanelInnerWidth(w))
	if height > 0 {
		style = style.Height(max(height-PanelBorderWidth*2, 1))
	}
	return style.Render(body)
}

func renderQueryPanel(result *analysis.AnalysisResult, s Styles, w int) string {
	heading := s.Title.Render(QueryHeading)
	if result.Cached {
		heading += " " + s.Badge.Render("CACHED")
	}
	lines := []string{heading, s.Body.Width(PanelTextWidth(w)).Render(result.Query)}
	if result.Error != "" {
		lines = append(lines, s.Warning.Width(PanelTextWidth(w)).Render("! upstream error: "+result.Error))
	}
	return renderPanel(s, w, 0, strings.Join(lines, "\n"))
}

func narrativeBody(summary string, s Styles, w int) string {
	text := s.Body.Width(PanelTextWidth(w))
	paragraphs := analysis.Paragraphs(summary)
	rendered := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		rendered = append(rendered, text.Render(p))
	}
	return s.Title.Render(NarrativeHeading) + "\n" + strings.Join(rendered, "\n")
}

func entitiesBody(e analysis.ParsedEntities, s Styles, w int) string {
	textW := PanelTextWidth(w)
	lines := []string{s.Title.Render(EntitiesHeading)}

	if e.Empty() {
		lines = append(lines, s.Body.Render(analysis.NoEntitiesText))
		return strings.Join(lines, "\n")
	}

	if len(e.Accused) > 0 {
		lines = append(lines, renderChips("Accused:", e.Accused, s.ChipAccused, s, textW))
	}
	if len(e.Victims) > 0 {
		lines = append(lines, renderChips("Victims:", e.Victims, s.ChipVictim, s, textW))
	}
	if len(e.Orgs) > 0 {
		lines = append(lines, renderChips("Organizations/Courts:", e.Orgs, s.ChipOrg, s, textW))
	}

	scalar := func(label, value string) {
		if value == "" {
			return
		}
		line := s.Label.Render(label) + " " + value
		lines = append(lines, s.Body.Width(textW).Render(line))
	}
	scalar("Crime:", e.Crime)
	scalar("Verdict:", e.Verdict)
	scalar("Outcome:", e.Outcome)

	return strings.Join(lines, "\n")
}

// renderChips lays out a label followed by tag chips, wrapping to width.
// Chips are never split across lines; a chip wider than width gets its own
// line and is truncated.
func renderChips(label string, items []string, chip lipgloss.Style, s Styles, width int) string {
	var (
		lines   []string
		current = s.Label.Render(label)
		curW    = lipgloss.Width(current)
	)
	for _, item := range items {
		r := chip.Render(truncate(item, max(width-2, 1)))
		rw := lipgloss.Width(r)
		if curW > 0 && curW+ChipGap+rw > width {
			lines = append(lines, current)
			current, curW = "", 0
		}
		if curW > 0 {
			current += strings.Repeat(" ", ChipGap)
			curW += ChipGap
		}
		current += r
		curW += rw
	}
	lines = append(lines, current)
	return strings.Join(lines, "\n")
}

func renderLinks(links []analysis.Link, s Styles, w int) string {
	textW := PanelTextWidth(w)
	lines := []string{s.Title.Render(LinksHeading)}

	if len(links) == 0 {
		lines = append(lines, s.Body.Render(analysis.NoLinksText))
		return renderPanel(s, w, 0, strings.Join(lines, "\n"))
	}

	for i, l := range links {
		line := fmt.Sprintf("%d. %s", i+1, s.Link.Render(l.DisplayTitle()))
		if name := l.SourceName(); name != "" {
			line += s.Muted.Render(" (" + name + ")")
		}
		lines = append(lines, s.Body.Width(textW).Render(line))
		if l.Title != "" {
			lines = append(lines, s.Muted.Render("   "+truncate(l.URL, max(textW-3, 1))))
		}
	}
	return renderPanel(s, w, 0, strings.Join(lines, "\n"))
}

// truncate shortens s to at most n cells, marking the cut with "…".
func truncate(str string, n int) string {
	if lipgloss.Width(str) <= n {
		return str
	}
	runes := []rune(str)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
