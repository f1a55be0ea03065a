// Package parser provides log file reading and line annotation.
package parser

import (
	"path/filepath"
	"strconv"
	"time"
)

// Recognized severity levels, in the order they are matched and reported.
const (
	LevelTrace    = "TRACE"
	LevelDebug    = "DEBUG"
	LevelInfo     = "INFO"
	LevelWarn     = "WARN"
	LevelWarning  = "WARNING"
	LevelError    = "ERROR"
	LevelFatal    = "FATAL"
	LevelCritical = "CRITICAL"
)

// Levels is the fixed severity vocabulary.
var Levels = []string{
	LevelTrace, LevelDebug, LevelInfo, LevelWarn,
	LevelWarning, LevelError, LevelFatal, LevelCritical,
}

// ParsedLine represents a single log line with extracted metadata.
// A ParsedLine is never modified after construction.
type ParsedLine struct {
	// Raw is the line content with trailing newline characters removed.
	Raw string `json:"text"`

	// Timestamp is the first ISO-8601 timestamp found in the line, if any.
	Timestamp *time.Time `json:"timestamp,omitempty"`

	// Level is the upper-cased severity token, or empty if none was found.
	Level string `json:"level,omitempty"`

	// Source is the file path this line came from.
	Source string `json:"source"`

	// LineNum is the 1-based line number in the source file.
	LineNum int `json:"line"`
}

// LineKey identifies a line by its position in a source file.
type LineKey struct {
	Source  string
	LineNum int
}

// Key returns the identity of the line.
func (l *ParsedLine) Key() LineKey {
	return LineKey{Source: l.Source, LineNum: l.LineNum}
}

// HasTimestamp reports whether a timestamp was extracted.
func (l *ParsedLine) HasTimestamp() bool {
	return l.Timestamp != nil
}

// String formats the line as "file:line: text" using the base file name.
func (l *ParsedLine) String() string {
	return filepath.Base(l.Source) + ":" + strconv.Itoa(l.LineNum) + ": " + l.Raw
}
