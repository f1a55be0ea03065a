// Package output renders query results as text or JSON.
package output

import (
	"regexp"

	"github.com/ccollicutt/loghunter/pkg/parser"
	"github.com/ccollicutt/loghunter/pkg/store"
)

// LineReport is a list of log lines ready for rendering.
type LineReport struct {
	// Title is printed above the lines in text output.
	Title string

	// Lines are the records to render, in order.
	Lines []*parser.ParsedLine

	// Highlight marks matching text in styled output. It never changes
	// the records themselves.
	Highlight *regexp.Regexp
}

// PatternReport is the result of a pattern frequency query.
type PatternReport struct {
	Patterns []store.PatternCount
}

// limitLines returns the lines to show and how many were left out.
func limitLines(lines []*parser.ParsedLine, limit int) ([]*parser.ParsedLine, int) {
	if limit <= 0 || len(lines) <= limit {
		return lines, 0
	}
	return lines[:limit], len(lines) - limit
}
