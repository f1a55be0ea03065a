package output

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ccollicutt/loghunter/pkg/config"
	"github.com/ccollicutt/loghunter/pkg/parser"
	"github.com/ccollicutt/loghunter/pkg/store"
)

// maxPatternWidth is the number of characters of a pattern shown in text output.
const maxPatternWidth = 100

// TextFormatter formats results as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// palette holds the styles bound to one output stream.
type palette struct {
	heading   lipgloss.Style
	location  lipgloss.Style
	debug     lipgloss.Style
	warn      lipgloss.Style
	err       lipgloss.Style
	fatal     lipgloss.Style
	highlight lipgloss.Style
}

func (f *TextFormatter) palette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	switch f.opts.Color {
	case config.ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case config.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}

	return &palette{
		heading:   r.NewStyle().Bold(true),
		location:  r.NewStyle().Foreground(lipgloss.Color("39")),
		debug:     r.NewStyle().Foreground(lipgloss.Color("245")).Faint(true),
		warn:      r.NewStyle().Foreground(lipgloss.Color("220")),
		err:       r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		fatal:     r.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("196")).Bold(true),
		highlight: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).TabWidth(lipgloss.NoTabConversion),
	}
}

// levelStyle returns the style of the location prefix for a level.
func (p *palette) levelStyle(level string) lipgloss.Style {
	switch level {
	case parser.LevelTrace, parser.LevelDebug:
		return p.debug
	case parser.LevelWarn, parser.LevelWarning:
		return p.warn
	case parser.LevelError:
		return p.err
	case parser.LevelFatal, parser.LevelCritical:
		return p.fatal
	default:
		return p.location
	}
}

func (p *palette) renderLine(line *parser.ParsedLine, hl *regexp.Regexp) string {
	prefix := fmt.Sprintf("%s:%d:", filepath.Base(line.Source), line.LineNum)
	text := line.Raw
	if hl != nil {
		text = hl.ReplaceAllStringFunc(text, func(m string) string {
			if m == "" {
				return m
			}
			return p.highlight.Render(m)
		})
	}
	return p.levelStyle(line.Level).Render(prefix) + " " + text
}

// FormatLines renders lines as "file:line: text", one per line.
func (f *TextFormatter) FormatLines(ctx context.Context, report *LineReport, w io.Writer) error {
	p := f.palette(w)

	if report.Title != "" {
		fmt.Fprintf(w, "%s\n\n", p.heading.Render(report.Title))
	}

	if len(report.Lines) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	shown, omitted := limitLines(report.Lines, f.opts.Limit)
	for _, line := range shown {
		if _, err := fmt.Fprintln(w, p.renderLine(line, report.Highlight)); err != nil {
			return err
		}
	}

	if omitted > 0 {
		fmt.Fprintf(w, "\n... %d more results (use --limit to see more)\n", omitted)
	}
	return nil
}

// FormatStatistics renders the statistics summary.
func (f *TextFormatter) FormatStatistics(ctx context.Context, stats *store.Statistics, w io.Writer) error {
	p := f.palette(w)
	mp := message.NewPrinter(language.English)

	fmt.Fprintf(w, "%s\n\n", p.heading.Render("Log Statistics"))
	mp.Fprintf(w, "Total lines:  %d\n", stats.TotalLines)
	mp.Fprintf(w, "Files:        %d\n", stats.Files)

	if counts := stats.LevelCounts(); len(counts) > 0 {
		fmt.Fprintf(w, "\n%s\n", p.heading.Render("Log Levels:"))
		for _, lc := range counts {
			mp.Fprintf(w, "  %s %d\n", p.levelStyle(lc.Level).Render(fmt.Sprintf("%-10s", lc.Level)), lc.Count)
		}
	}

	fmt.Fprintln(w)
	mp.Fprintf(w, "Warnings:   %d\n", stats.Warnings)
	mp.Fprintf(w, "Errors:     %d\n", stats.Errors)
	mp.Fprintf(w, "Exceptions: %d\n", stats.Exceptions)

	if tr := stats.TimeRange; tr != nil {
		fmt.Fprintf(w, "\n%s\n", p.heading.Render("Time Range:"))
		fmt.Fprintf(w, "  Start: %s\n", tr.Start.Format(time.DateTime))
		fmt.Fprintf(w, "  End:   %s\n", tr.End.Format(time.DateTime))
		fmt.Fprintf(w, "  Span:  %s\n", tr.Span)
	}

	return nil
}

// FormatPatterns renders a numbered list of patterns with their counts.
func (f *TextFormatter) FormatPatterns(ctx context.Context, report *PatternReport, w io.Writer) error {
	p := f.palette(w)
	mp := message.NewPrinter(language.English)

	title := fmt.Sprintf("Top %d Common Patterns", len(report.Patterns))
	fmt.Fprintf(w, "%s\n\n", p.heading.Render(title))

	for i, pc := range report.Patterns {
		mp.Fprintf(w, "%d. (%d×) %s\n", i+1, pc.Count, truncate(pc.Pattern, maxPatternWidth))
	}
	return nil
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
