package metrics

import "sort"

// Rank returns the 1-based position of targetID when scores are sorted descending.
// Equal scores are ordered by id. A target without a score ranks after every scored entity.
func Rank(scores map[string]float64, targetID string) int {
	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		return ids[i] < ids[j]
	})
	for i, id := range ids {
		if id == targetID {
			return i + 1
		}
	}
	return len(ids) + 1
}
