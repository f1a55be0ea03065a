package output

import (
	"context"
	"fmt"
	"io"

	"github.com/ccollicutt/loghunter/pkg/config"
	"github.com/ccollicutt/loghunter/pkg/store"
)

// Formatter renders query results in a specific format.
type Formatter interface {
	// FormatLines renders a list of log lines.
	FormatLines(ctx context.Context, report *LineReport, w io.Writer) error

	// FormatStatistics renders a statistics snapshot.
	FormatStatistics(ctx context.Context, stats *store.Statistics, w io.Writer) error

	// FormatPatterns renders pattern frequencies.
	FormatPatterns(ctx context.Context, report *PatternReport, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Limit caps the number of lines rendered. 0 means unlimited.
	Limit int

	// Color selects when text output is styled.
	Color config.ColorMode
}

// New returns the formatter registered under name.
func New(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "", "text":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (must be text or json)", name)
	}
}
