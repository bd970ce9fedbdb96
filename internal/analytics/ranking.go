package analytics

import "sort"

// RankSuggestions orders by priority, then rule order, then first affected entity.
func RankSuggestions(suggestions []Suggestion) []Suggestion {
	sorted := make([]Suggestion, len(suggestions))
	copy(sorted, suggestions)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Priority.rank() != b.Priority.rank() {
			return a.Priority.rank() < b.Priority.rank()
		}
		if a.rule != b.rule {
			return a.rule < b.rule
		}
		return firstEntity(a) < firstEntity(b)
	})
	return sorted
}

func firstEntity(s Suggestion) string {
	if len(s.AffectedEntities) == 0 {
		return ""
	}
	return s.AffectedEntities[0]
}
