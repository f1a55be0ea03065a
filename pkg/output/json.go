package output

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/ccollicutt/loghunter/pkg/parser"
	"github.com/ccollicutt/loghunter/pkg/store"
)

// JSONFormatter formats results as JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

type jsonLineReport struct {
	Total   int                  `json:"total"`
	Omitted int                  `json:"omitted,omitempty"`
	Lines   []*parser.ParsedLine `json:"lines"`
}

type jsonStatistics struct {
	TotalLines int                `json:"total_lines"`
	Files      int                `json:"files"`
	Levels     []store.LevelCount `json:"levels"`
	Errors     int                `json:"errors"`
	Warnings   int                `json:"warnings"`
	Exceptions int                `json:"exceptions"`
	TimeRange  *jsonTimeRange     `json:"time_range,omitempty"`
}

type jsonTimeRange struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Span        string    `json:"span"`
	SpanSeconds float64   `json:"span_seconds"`
}

type jsonPatternReport struct {
	Patterns []store.PatternCount `json:"patterns"`
}

// FormatLines renders lines as a JSON document. Highlighting is a text
// concern and is ignored.
func (f *JSONFormatter) FormatLines(ctx context.Context, report *LineReport, w io.Writer) error {
	shown, omitted := limitLines(report.Lines, f.opts.Limit)
	if shown == nil {
		shown = []*parser.ParsedLine{}
	}
	return encode(w, jsonLineReport{
		Total:   len(report.Lines),
		Omitted: omitted,
		Lines:   shown,
	})
}

// FormatStatistics renders the statistics snapshot as JSON.
func (f *JSONFormatter) FormatStatistics(ctx context.Context, stats *store.Statistics, w io.Writer) error {
	out := jsonStatistics{
		TotalLines: stats.TotalLines,
		Files:      stats.Files,
		Levels:     stats.LevelCounts(),
		Errors:     stats.Errors,
		Warnings:   stats.Warnings,
		Exceptions: stats.Exceptions,
	}
	if tr := stats.TimeRange; tr != nil {
		out.TimeRange = &jsonTimeRange{
			Start:       tr.Start,
			End:         tr.End,
			Span:        tr.Span.String(),
			SpanSeconds: tr.Span.Seconds(),
		}
	}
	return encode(w, out)
}

// FormatPatterns renders pattern frequencies as JSON.
func (f *JSONFormatter) FormatPatterns(ctx context.Context, report *PatternReport, w io.Writer) error {
	patterns := report.Patterns
	if patterns == nil {
		patterns = []store.PatternCount{}
	}
	return encode(w, jsonPatternReport{Patterns: patterns})
}

func encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
