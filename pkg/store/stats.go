package store

import (
	"sort"
	"time"

	"github.com/ccollicutt/loghunter/pkg/parser"
)

// Statistics is a point-in-time summary of the store.
type Statistics struct {
	// TotalLines is the number of lines loaded.
	TotalLines int `json:"total_lines"`

	// Files is the number of distinct source files.
	Files int `json:"files"`

	// Levels maps each extracted level to its number of lines.
	Levels map[string]int `json:"levels"`

	// Errors, Warnings and Exceptions match the counts of the
	// corresponding queries.
	Errors     int `json:"errors"`
	Warnings   int `json:"warnings"`
	Exceptions int `json:"exceptions"`

	// TimeRange is nil when no line carries a timestamp.
	TimeRange *TimeRange `json:"time_range,omitempty"`
}

// TimeRange spans the earliest and latest timestamps seen.
type TimeRange struct {
	Start time.Time     `json:"start"`
	End   time.Time     `json:"end"`
	Span  time.Duration `json:"span"`
}

// LevelCount is one entry of the level histogram.
type LevelCount struct {
	Level string `json:"level"`
	Count int    `json:"count"`
}

// Statistics computes the summary in a single pass over the lines.
func (s *Store) Statistics() *Statistics {
	patterns := s.Patterns()
	errorSet := levelSet(ErrorLevels)
	warningSet := levelSet(WarningLevels)

	stats := &Statistics{
		TotalLines: len(s.lines),
		Levels:     make(map[string]int),
	}

	sources := make(map[string]bool)
	var start, end time.Time
	var hasTime bool

	for _, line := range s.lines {
		sources[line.Source] = true

		if line.Level != "" {
			stats.Levels[line.Level]++
			switch {
			case errorSet[line.Level]:
				stats.Errors++
			case warningSet[line.Level]:
				stats.Warnings++
			}
		}

		if patterns.IsException(line.Raw) {
			stats.Exceptions++
		}

		if ts := line.Timestamp; ts != nil {
			if !hasTime || ts.Before(start) {
				start = *ts
			}
			if !hasTime || ts.After(end) {
				end = *ts
			}
			hasTime = true
		}
	}

	stats.Files = len(sources)
	if hasTime {
		stats.TimeRange = &TimeRange{
			Start: start,
			End:   end,
			Span:  end.Sub(start),
		}
	}

	return stats
}

// LevelCounts returns the level histogram ordered by count, highest first.
// Equal counts keep severity vocabulary order.
func (st *Statistics) LevelCounts() []LevelCount {
	counts := make([]LevelCount, 0, len(st.Levels))
	for _, level := range parser.Levels {
		if n, ok := st.Levels[level]; ok {
			counts = append(counts, LevelCount{Level: level, Count: n})
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

func levelSet(levels []string) map[string]bool {
	set := make(map[string]bool, len(levels))
	for _, l := range levels {
		set[l] = true
	}
	return set
}
