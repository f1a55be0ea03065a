// Package store holds the lines loaded from a set of log files and answers
// filter, aggregate and pattern queries over them.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"github.com/ccollicutt/loghunter/pkg/parser"
)

// ErrNoFiles is returned by LoadFiles when it is given no paths.
var ErrNoFiles = errors.New("no files found")

// LoadError reports a file that could not be read. It is a warning: the
// file contributes no lines and loading continues with the next file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("could not read %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadReport summarizes a LoadFiles call.
type LoadReport struct {
	// FilesRequested is the number of paths passed in.
	FilesRequested int

	// FilesLoaded is the number of files read completely.
	FilesLoaded int

	// LinesLoaded is the number of lines appended by this call.
	LinesLoaded int

	// Warnings holds one *LoadError per file that failed.
	Warnings []error
}

// Store is an ordered, append-only collection of parsed lines. Lines keep
// the order in which their files were loaded, then their order within the
// file. Queries never modify the store.
type Store struct {
	lines []*parser.ParsedLine

	extractor *parser.Extractor
	encoding  encoding.Encoding
	maxLine   int
	logger    *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithExtractor sets the extractor used to annotate lines.
func WithExtractor(e *parser.Extractor) Option {
	return func(s *Store) {
		if e != nil {
			s.extractor = e
		}
	}
}

// WithEncoding sets the character set used to decode files.
func WithEncoding(enc encoding.Encoding) Option {
	return func(s *Store) {
		s.encoding = enc
	}
}

// WithMaxLineBytes sets the longest line accepted when reading files.
func WithMaxLineBytes(n int) Option {
	return func(s *Store) {
		s.maxLine = n
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		extractor: parser.NewExtractor(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromLines creates a store holding the given lines, in order.
func NewFromLines(lines []*parser.ParsedLine, opts ...Option) *Store {
	s := New(opts...)
	s.lines = append(s.lines, lines...)
	return s
}

// Len returns the number of lines in the store.
func (s *Store) Len() int {
	return len(s.lines)
}

// Lines returns all lines in store order. The slice must not be modified.
func (s *Store) Lines() []*parser.ParsedLine {
	return s.lines
}

// At returns the line at the given 0-based index.
func (s *Store) At(i int) *parser.ParsedLine {
	return s.lines[i]
}

// Patterns returns the pattern registry used by the store.
func (s *Store) Patterns() *parser.Patterns {
	return s.extractor.Patterns()
}

// LoadFile reads a whole file and appends its lines. On any read failure
// the store is left unchanged and a *LoadError is returned. Context
// cancellation is returned unwrapped.
func (s *Store) LoadFile(ctx context.Context, path string) error {
	var opts []parser.SourceOption
	if s.encoding != nil {
		opts = append(opts, parser.WithEncoding(s.encoding))
	}
	if s.maxLine > 0 {
		opts = append(opts, parser.WithMaxLineBytes(s.maxLine))
	}

	var source parser.LogSource = parser.NewFileSource([]string{path}, s.extractor, opts...)
	defer source.Close()

	var lines []*parser.ParsedLine
	for {
		line, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return &LoadError{Path: path, Err: err}
		}
		lines = append(lines, line)
	}

	s.lines = append(s.lines, lines...)
	s.logger.Debug("loaded log file", zap.String("path", path), zap.Int("lines", len(lines)))
	return nil
}

// LoadFiles loads each path in order. Per-file failures are logged and
// collected in the report; they do not stop the remaining files. An empty
// path list returns ErrNoFiles.
func (s *Store) LoadFiles(ctx context.Context, paths []string) (*LoadReport, error) {
	report := &LoadReport{FilesRequested: len(paths)}
	if len(paths) == 0 {
		return report, ErrNoFiles
	}

	before := len(s.lines)
	for _, path := range paths {
		err := s.LoadFile(ctx, path)
		if err == nil {
			report.FilesLoaded++
			continue
		}

		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			return report, err
		}
		s.logger.Warn("could not read log file", zap.String("path", path), zap.Error(loadErr.Err))
		report.Warnings = append(report.Warnings, err)
	}
	report.LinesLoaded = len(s.lines) - before

	s.logger.Info("loaded log files",
		zap.Int("files", report.FilesLoaded),
		zap.Int("lines", report.LinesLoaded),
		zap.Int("warnings", len(report.Warnings)))

	return report, nil
}
