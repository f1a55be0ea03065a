// Package timearg parses the --since/--until time expressions accepted by
// the CLI: relative durations such as "30m" or "2d", or absolute ISO-8601
// instants.
package timearg

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidTimeFormat is matched by every error returned from Parse.
var ErrInvalidTimeFormat = errors.New("invalid time format")

// InvalidTimeFormatError reports an expression that is neither relative
// nor a recognized absolute instant.
type InvalidTimeFormatError struct {
	Input string
}

func (e *InvalidTimeFormatError) Error() string {
	return fmt.Sprintf("invalid time format: %q (use e.g. 30m, 2h, 7d or 2026-01-10T10:00:00)", e.Input)
}

// Is makes errors.Is(err, ErrInvalidTimeFormat) succeed.
func (e *InvalidTimeFormatError) Is(target error) bool {
	return target == ErrInvalidTimeFormat
}

var relativePattern = regexp.MustCompile(`^(\d+)([smhd])$`)

var units = map[string]time.Duration{
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
}

// Layouts tried for absolute instants, most specific first. Layouts with
// an offset are parsed as-is; the others are wall-clock times.
var (
	offsetLayouts = []string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05Z07:00",
		"2006-01-02T15:04Z07:00",
		"2006-01-02 15:04Z07:00",
	}
	localLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
)

// Parse converts text into an absolute instant. Relative expressions are
// subtracted from now; absolute expressions without an offset are read in
// now's location.
func Parse(text string, now time.Time) (time.Time, error) {
	return ParseInLocation(text, now, now.Location())
}

// ParseInLocation is like Parse but interprets wall-clock instants in loc.
func ParseInLocation(text string, now time.Time, loc *time.Location) (time.Time, error) {
	if m := relativePattern.FindStringSubmatch(text); m != nil {
		value, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return time.Time{}, &InvalidTimeFormatError{Input: text}
		}
		unit := units[m[2]]
		if value > int64(maxDuration/unit) {
			return time.Time{}, &InvalidTimeFormatError{Input: text}
		}
		return now.Add(-time.Duration(value) * unit), nil
	}

	if loc == nil {
		loc = time.Local
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, text, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &InvalidTimeFormatError{Input: text}
}

const maxDuration = time.Duration(1<<63 - 1)
