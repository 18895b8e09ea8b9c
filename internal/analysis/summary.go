package analysis

import "strings"

// NoSummaryText is shown in place of an absent narrative.
const NoSummaryText = "No summary available."

// FormatSummary strips markdown bold markers. No other markdown is touched.
func FormatSummary(s string) string {
	if s == "" {
		return ""
	}
	return strings.ReplaceAll(s, "**", "")
}

// Paragraphs cleans the narrative and splits it on newlines. Empty lines are
// kept so the rendered spacing matches the source.
func Paragraphs(s string) []string {
	cleaned := FormatSummary(s)
	if cleaned == "" {
		return []string{NoSummaryText}
	}
	return strings.Split(cleaned, "\n")
}
