package store

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ccollicutt/loghunter/pkg/parser"
)

// Level groups used by Errors and Warnings.
var (
	ErrorLevels   = []string{parser.LevelError, parser.LevelFatal, parser.LevelCritical}
	WarningLevels = []string{parser.LevelWarn, parser.LevelWarning}
)

// PatternError reports a search pattern that is not a valid regular expression.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid search pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// CompilePattern compiles a search pattern, case-insensitive unless
// caseSensitive is set.
func CompilePattern(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	expr := pattern
	if !caseSensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return re, nil
}

// FilterByLevel returns lines whose level is one of levels, compared
// case-insensitively. Lines without a level never match.
func (s *Store) FilterByLevel(levels ...string) []*parser.ParsedLine {
	want := make(map[string]bool, len(levels))
	for _, l := range levels {
		want[strings.ToUpper(l)] = true
	}

	var result []*parser.ParsedLine
	for _, line := range s.lines {
		if line.Level != "" && want[line.Level] {
			result = append(result, line)
		}
	}
	return result
}

// FilterByPattern returns lines whose text contains a match for pattern.
// An invalid pattern returns a *PatternError.
func (s *Store) FilterByPattern(pattern string, caseSensitive bool) ([]*parser.ParsedLine, error) {
	re, err := CompilePattern(pattern, caseSensitive)
	if err != nil {
		return nil, err
	}
	return s.FilterByRegexp(re), nil
}

// FilterByRegexp returns lines whose text contains a match for re.
func (s *Store) FilterByRegexp(re *regexp.Regexp) []*parser.ParsedLine {
	var result []*parser.ParsedLine
	for _, line := range s.lines {
		if re.MatchString(line.Raw) {
			result = append(result, line)
		}
	}
	return result
}

// MatchIndices returns the store indices of lines matching re, in order.
func (s *Store) MatchIndices(re *regexp.Regexp) []int {
	var result []int
	for i, line := range s.lines {
		if re.MatchString(line.Raw) {
			result = append(result, i)
		}
	}
	return result
}

// FilterByTimeRange returns lines with a timestamp inside [start, end].
// A nil bound is open on that side. Lines without a timestamp are never
// returned.
func (s *Store) FilterByTimeRange(start, end *time.Time) []*parser.ParsedLine {
	var result []*parser.ParsedLine
	for _, line := range s.lines {
		if line.Timestamp == nil {
			continue
		}
		if start != nil && line.Timestamp.Before(*start) {
			continue
		}
		if end != nil && line.Timestamp.After(*end) {
			continue
		}
		result = append(result, line)
	}
	return result
}

// Errors returns ERROR, FATAL and CRITICAL lines.
func (s *Store) Errors() []*parser.ParsedLine {
	return s.FilterByLevel(ErrorLevels...)
}

// Warnings returns WARN and WARNING lines.
func (s *Store) Warnings() []*parser.ParsedLine {
	return s.FilterByLevel(WarningLevels...)
}

// Exceptions returns lines whose text mentions Exception, Error or
// Traceback as a whole, case-sensitive word. This is a text signal and may
// disagree with the extracted level.
func (s *Store) Exceptions() []*parser.ParsedLine {
	patterns := s.Patterns()

	var result []*parser.ParsedLine
	for _, line := range s.lines {
		if patterns.IsException(line.Raw) {
			result = append(result, line)
		}
	}
	return result
}

// StackTraces returns every exception line followed by the stack frame
// lines that directly follow it in the same file.
func (s *Store) StackTraces() []*parser.ParsedLine {
	patterns := s.Patterns()
	seen := make(map[parser.LineKey]bool)

	var result []*parser.ParsedLine
	add := func(line *parser.ParsedLine) {
		if key := line.Key(); !seen[key] {
			seen[key] = true
			result = append(result, line)
		}
	}

	for i, line := range s.lines {
		if !patterns.IsException(line.Raw) {
			continue
		}
		add(line)
		for j := i + 1; j < len(s.lines); j++ {
			next := s.lines[j]
			if next.Source != line.Source || !patterns.IsStackFrame(next.Raw) {
				break
			}
			add(next)
		}
	}
	return result
}

// Head returns the first n lines.
func (s *Store) Head(n int) []*parser.ParsedLine {
	if n <= 0 {
		return nil
	}
	if n > len(s.lines) {
		n = len(s.lines)
	}
	return s.lines[:n]
}

// Tail returns the last n lines.
func (s *Store) Tail(n int) []*parser.ParsedLine {
	if n <= 0 {
		return nil
	}
	if n > len(s.lines) {
		n = len(s.lines)
	}
	return s.lines[len(s.lines)-n:]
}

// Context returns the lines within before/after positions of each index,
// clamped to the store. Windows are concatenated in the order the indices
// are given and each line appears once, at its first position.
func (s *Store) Context(indices []int, before, after int) []*parser.ParsedLine {
	if before < 0 {
		before = 0
	}
	if after < 0 {
		after = 0
	}

	seen := make(map[parser.LineKey]bool)
	var result []*parser.ParsedLine

	for _, idx := range indices {
		start := max(0, idx-before)
		end := min(len(s.lines), idx+after+1)
		for i := start; i < end; i++ {
			line := s.lines[i]
			key := line.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			result = append(result, line)
		}
	}
	return result
}
