// Package analysis holds the response model returned by the analysis service
// and the pure helpers that turn it into something displayable:
//
//   - ParseEntityString: delimited entity strings to ordered name lists
//   - FormatSummary / Paragraphs: narrative cleanup and paragraph split
//   - DedupeLinks: merged reference links, unique by URL
//
// Nothing in this package performs I/O.
package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AnalysisResult is the JSON body returned by POST /process.
type AnalysisResult struct {
	Query           string           `json:"query"`
	SummaryText     string           `json:"summary_text,omitempty"`
	EntityOutput    *EntityOutput    `json:"entity_output,omitempty"`
	WebsearchOutput *WebSearchOutput `json:"websearch_output,omitempty"`

	// Set by the orchestrator when it answered from its vector cache.
	Cached   bool   `json:"cached,omitempty"`
	VectorID string `json:"vector_id,omitempty"`

	// Pipeline failure reported in-band with a 200 status.
	Error string `json:"error,omitempty"`
}

// Entities is shorthand for ParseEntities(r.EntityOutput).
func (r *AnalysisResult) Entities() ParsedEntities {
	if r == nil {
		return ParsedEntities{}
	}
	return ParseEntities(r.EntityOutput)
}

// Links is shorthand for r.WebsearchOutput.ReferenceLinks().
func (r *AnalysisResult) Links() []Link {
	if r == nil {
		return []Link{}
	}
	return r.WebsearchOutput.ReferenceLinks()
}

// EntityOutput carries raw, possibly labelled and delimited entity strings.
type EntityOutput struct {
	Accused []string `json:"accused,omitempty"`
	Victims []string `json:"victims,omitempty"`
	Orgs    []string `json:"orgs,omitempty"`
	Crime   string   `json:"crime,omitempty"`
	Verdict string   `json:"verdict,omitempty"`
	Outcome string   `json:"outcome,omitempty"`
}

// WebSearchOutput holds the two ranked link lists from the search stage.
type WebSearchOutput struct {
	MostRelevant []Link `json:"most_relevant,omitempty"`
	MostRecent   []Link `json:"most_recent,omitempty"`
}

// Link is a reference link. URL is its identity.
type Link struct {
	URL            string      `json:"url"`
	Title          string      `json:"title,omitempty"`
	Source         *LinkSource `json:"source,omitempty"`
	Published      string      `json:"published,omitempty"`
	RelevanceScore float64     `json:"relevance_score,omitempty"`
}

// DisplayTitle returns the title, falling back to the URL.
func (l Link) DisplayTitle() string {
	if l.Title != "" {
		return l.Title
	}
	return l.URL
}

// SourceName returns the publisher name or "".
func (l Link) SourceName() string {
	if l.Source == nil {
		return ""
	}
	return l.Source.Name
}

// LinkSource identifies the publisher of a link.
type LinkSource struct {
	Name string `json:"name,omitempty"`
}

// UnmarshalJSON accepts either {"name": "..."} or a bare string; the search
// stage emits both shapes depending on the upstream provider.
func (s *LinkSource) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return fmt.Errorf("link source: %w", err)
		}
		s.Name = name
		return nil
	}
	type plain LinkSource
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("link source: %w", err)
	}
	*s = LinkSource(p)
	return nil
}
