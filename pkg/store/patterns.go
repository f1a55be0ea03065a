package store

import "sort"

// PatternCount is a normalized line and the number of lines that produced it.
type PatternCount struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
}

// TopPatterns normalizes every line and returns the n most frequent
// results. Equal counts are ordered by first appearance.
func (s *Store) TopPatterns(n int) []PatternCount {
	if n <= 0 {
		return nil
	}

	patterns := s.Patterns()
	index := make(map[string]int)
	var counts []PatternCount

	for _, line := range s.lines {
		normalized := patterns.Normalize(line.Raw)
		if i, ok := index[normalized]; ok {
			counts[i].Count++
			continue
		}
		index[normalized] = len(counts)
		counts = append(counts, PatternCount{Pattern: normalized, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	if n > len(counts) {
		n = len(counts)
	}
	return counts[:n]
}
