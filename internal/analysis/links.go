package analysis

// NoLinksText is shown when there are no reference links.
const NoLinksText = "No reference links found."

// DedupeLinks concatenates primary and secondary and keeps the first link seen
// for each URL, in order.
func DedupeLinks(primary, secondary []Link) []Link {
	out := make([]Link, 0, len(primary)+len(secondary))
	seen := make(map[string]struct{}, len(primary)+len(secondary))
	for _, list := range [][]Link{primary, secondary} {
		for _, l := range list {
			if _, ok := seen[l.URL]; ok {
				continue
			}
			seen[l.URL] = struct{}{}
			out = append(out, l)
		}
	}
	return out
}

// ReferenceLinks merges most_relevant then most_recent. Safe on nil.
func (w *WebSearchOutput) ReferenceLinks() []Link {
	if w == nil {
		return []Link{}
	}
	return DedupeLinks(w.MostRelevant, w.MostRecent)
}
