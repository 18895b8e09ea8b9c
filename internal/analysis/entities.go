package analysis

import (
	"regexp"
	"strings"
)

const entityLabels = `(?:Accused|Victims|Organisations/Courts|Outcome|Crime)`

// ws is any run of whitespace, Unicode spaces and separators included.
const ws = `[\s\p{Z}\x{FEFF}]*`

var (
	leadingLabelRe   = regexp.MustCompile(`^` + entityLabels + `:` + ws)
	separatorLabelRe = regexp.MustCompile(`;;` + ws + entityLabels + `:` + ws)
	entitySplitRe    = regexp.MustCompile(`;;` + ws + `|` + ws + `,` + ws)
)

// NoEntitiesText is shown when every entity field is empty.
const NoEntitiesText = "No entities extracted."

// ParsedEntities is the display model derived from an EntityOutput.
type ParsedEntities struct {
	Accused []string
	Victims []string
	Orgs    []string
	Crime   string
	Verdict string
	Outcome string
}

// Empty reports whether there is nothing to show in the entities panel.
func (p ParsedEntities) Empty() bool {
	return len(p.Accused) == 0 && len(p.Victims) == 0 && len(p.Orgs) == 0 &&
		p.Crime == "" && p.Verdict == "" && p.Outcome == ""
}

// ParseEntityString turns one raw entity string into names.
//
// A leading "Label:" is dropped, as is any label directly after a ";;"
// separator. Both ";;" and "," split items. Items are trimmed, empties are
// dropped and duplicates are kept.
func ParseEntityString(s string) []string {
	if s == "" {
		return nil
	}
	cleaned := leadingLabelRe.ReplaceAllLiteralString(s, "")
	cleaned = separatorLabelRe.ReplaceAllLiteralString(cleaned, ";;")

	var out []string
	for _, item := range entitySplitRe.Split(cleaned, -1) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// parseEntityList joins raw values with ", " and parses the result. Commas
// inside a single raw value therefore split it too.
func parseEntityList(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	return ParseEntityString(strings.Join(raw, ", "))
}

// ParseEntities derives the display model. A nil output yields the zero value.
func ParseEntities(e *EntityOutput) ParsedEntities {
	if e == nil {
		return ParsedEntities{}
	}
	return ParsedEntities{
		Accused: parseEntityList(e.Accused),
		Victims: parseEntityList(e.Victims),
		Orgs:    parseEntityList(e.Orgs),
		Crime:   e.Crime,
		Verdict: e.Verdict,
		Outcome: e.Outcome,
	}
}
