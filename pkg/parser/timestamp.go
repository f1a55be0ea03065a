package parser

import (
	"strings"
	"time"
)

// isoLayout is the layout of a matched ISO timestamp after the date/time
// separator has been normalized to 'T'.
const isoLayout = "2006-01-02T15:04:05"

// Extractor annotates raw log lines with a timestamp and a level.
type Extractor struct {
	patterns *Patterns
	loc      *time.Location
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithLocation sets the zone used to interpret wall-clock timestamps
// (default UTC).
func WithLocation(loc *time.Location) ExtractorOption {
	return func(e *Extractor) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithPatterns overrides the pattern registry.
func WithPatterns(p *Patterns) ExtractorOption {
	return func(e *Extractor) {
		if p != nil {
			e.patterns = p
		}
	}
}

// NewExtractor creates a new line extractor.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		patterns: DefaultPatterns(),
		loc:      time.UTC,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultExtractor = NewExtractor()

// ParseLine annotates a line using the default extractor (UTC timestamps).
func ParseLine(raw string, lineNum int, source string) *ParsedLine {
	return defaultExtractor.Parse(raw, lineNum, source)
}

// Patterns returns the registry used by the extractor.
func (e *Extractor) Patterns() *Patterns {
	return e.patterns
}

// Location returns the zone used for wall-clock timestamps.
func (e *Extractor) Location() *time.Location {
	return e.loc
}

// Parse builds a ParsedLine from raw text. Extraction is best effort:
// a timestamp-shaped substring that is not a valid calendar instant simply
// leaves the timestamp absent.
func (e *Extractor) Parse(raw string, lineNum int, source string) *ParsedLine {
	line := strings.TrimRight(raw, "\r\n")
	pl := &ParsedLine{
		Raw:     line,
		Source:  source,
		LineNum: lineNum,
		Level:   e.ExtractLevel(line),
	}
	if ts, ok := e.ExtractTimestamp(line); ok {
		pl.Timestamp = &ts
	}
	return pl
}

// ExtractTimestamp returns the first ISO-shaped timestamp in the line.
func (e *Extractor) ExtractTimestamp(line string) (time.Time, bool) {
	match := e.patterns.TimestampISO.FindString(line)
	if match == "" {
		return time.Time{}, false
	}

	// The pattern guarantees the separator is at index 10
	tsStr := match[:10] + "T" + match[11:]

	ts, err := time.ParseInLocation(isoLayout, tsStr, e.loc)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// ExtractLevel returns the first severity token in the line, upper-cased,
// or an empty string.
func (e *Extractor) ExtractLevel(line string) string {
	match := e.patterns.Level.FindString(line)
	return strings.ToUpper(match)
}
