package parser

import (
	"regexp"
	"strings"
	"sync"
)

// Placeholders substituted by Normalize.
const (
	PlaceholderTimestamp = "[TIMESTAMP]"
	PlaceholderIP        = "[IP]"
	PlaceholderNumber    = "[NUM]"
)

// Patterns is the registry of precompiled expressions used to annotate and
// normalize log lines. It is safe for concurrent use once built.
type Patterns struct {
	TimestampISO    *regexp.Regexp
	TimestampCommon *regexp.Regexp
	TimestampSimple *regexp.Regexp
	Level           *regexp.Regexp
	IPAddress       *regexp.Regexp
	URL             *regexp.Regexp
	Exception       *regexp.Regexp
	StackTrace      *regexp.Regexp
	Number          *regexp.Regexp
}

var (
	defaultPatterns     *Patterns
	defaultPatternsOnce sync.Once
)

// DefaultPatterns returns the shared registry, compiling it on first use.
func DefaultPatterns() *Patterns {
	defaultPatternsOnce.Do(func() {
		defaultPatterns = newPatterns()
	})
	return defaultPatterns
}

func newPatterns() *Patterns {
	return &Patterns{
		TimestampISO:    regexp.MustCompile(`\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}`),
		TimestampCommon: regexp.MustCompile(`\d{2}/\w{3}/\d{4}:\d{2}:\d{2}:\d{2}`),
		TimestampSimple: regexp.MustCompile(`\d{2}:\d{2}:\d{2}`),
		Level:           regexp.MustCompile(`(?i)\b(` + strings.Join(Levels, "|") + `)\b`),
		IPAddress:       regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
		URL:             regexp.MustCompile(`https?://[^\s]+`),
		Exception:       regexp.MustCompile(`\b(Exception|Error|Traceback)\b`),
		StackTrace:      regexp.MustCompile(`^\s+at\s+|^\s+File\s+"`),
		Number:          regexp.MustCompile(`\b\d+\b`),
	}
}

// IsException reports whether the text mentions an exception marker.
// This looks at the text only and is independent of the extracted level.
func (p *Patterns) IsException(text string) bool {
	return p.Exception.MatchString(text)
}

// IsStackFrame reports whether the text looks like a stack trace frame
// (Java "  at ..." or Python '  File "...').
func (p *Patterns) IsStackFrame(text string) bool {
	return p.StackTrace.MatchString(text)
}

// Normalize replaces the volatile parts of a line with placeholders so that
// lines produced by the same log statement compare equal. Substitutions run
// in order, each on the output of the previous one: ISO timestamps, common
// log format timestamps, IP addresses, then any remaining integers.
func (p *Patterns) Normalize(text string) string {
	text = p.TimestampISO.ReplaceAllLiteralString(text, PlaceholderTimestamp)
	text = p.TimestampCommon.ReplaceAllLiteralString(text, PlaceholderTimestamp)
	text = p.IPAddress.ReplaceAllLiteralString(text, PlaceholderIP)
	return p.Number.ReplaceAllLiteralString(text, PlaceholderNumber)
}
