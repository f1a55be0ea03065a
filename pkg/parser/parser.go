package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const readBufferSize = 64 * 1024

// LookupEncoding resolves a character set name such as "utf-8", "latin1"
// or "windows-1252".
func LookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

// FileSource implements LogSource for reading from log files.
// Every line is returned, whether or not it carries a timestamp.
type FileSource struct {
	files     []string
	extractor *Extractor
	encoding  encoding.Encoding
	maxLine   int

	currentFile    *os.File
	currentCloser  io.Closer
	currentReader  *bufio.Reader
	currentSource  string
	currentLine    int
	fileIndex      int
}

// SourceOption configures a FileSource.
type SourceOption func(*FileSource)

// WithEncoding sets the character set of the files (default UTF-8).
// Invalid byte sequences decode to U+FFFD instead of failing.
func WithEncoding(enc encoding.Encoding) SourceOption {
	return func(s *FileSource) {
		if enc != nil {
			s.encoding = enc
		}
	}
}

// WithMaxLineBytes cuts lines longer than n bytes down to n bytes. The
// rest of such a line is skipped; the line is still returned. Zero means
// no limit.
func WithMaxLineBytes(n int) SourceOption {
	return func(s *FileSource) {
		if n >= 0 {
			s.maxLine = n
		}
	}
}

// NewFileSource creates a LogSource that reads from the given files in order.
func NewFileSource(files []string, extractor *Extractor, opts ...SourceOption) *FileSource {
	if extractor == nil {
		extractor = defaultExtractor
	}
	s := &FileSource{
		files:     files,
		extractor: extractor,
		encoding:  unicode.UTF8,
		fileIndex: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the next parsed log line.
// Returns io.EOF when all files have been exhausted.
func (s *FileSource) Next(ctx context.Context) (*ParsedLine, error) {
	for {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// Ensure we have a file open
		if s.currentReader == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		text, err := s.readLine()
		if err == nil {
			s.currentLine++
			return s.extractor.Parse(text, s.currentLine, s.currentSource), nil
		}
		if err != io.EOF {
			return nil, fmt.Errorf("reading %s: %w", s.currentSource, err)
		}

		// Current file exhausted, try next
		if err := s.closeCurrentFile(); err != nil {
			return nil, err
		}
	}
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", path, err)
	}

	r, closer, err := decompress(f, path)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("opening log file %s: %w", path, err)
	}

	s.currentFile = f
	s.currentCloser = closer
	s.currentReader = bufio.NewReaderSize(transform.NewReader(r, s.encoding.NewDecoder()), readBufferSize)
	s.currentSource = path
	s.currentLine = 0

	return nil
}

// readLine returns the next line of the current file without its line
// terminator. Lines of any length are joined from the reader's fragments.
func (s *FileSource) readLine() (string, error) {
	var line []byte
	truncated := false
	for {
		fragment, isPrefix, err := s.currentReader.ReadLine()
		if err != nil {
			if err == io.EOF && line != nil {
				break
			}
			return "", err
		}
		if line == nil {
			line = make([]byte, 0, len(fragment))
		}
		if s.maxLine > 0 && len(line)+len(fragment) > s.maxLine {
			fragment = fragment[:s.maxLine-len(line)]
			truncated = true
		}
		line = append(line, fragment...)
		if !isPrefix {
			break
		}
	}
	if truncated {
		// Drop a rune split by the cut.
		return strings.ToValidUTF8(string(line), ""), nil
	}
	return string(line), nil
}

func (s *FileSource) closeCurrentFile() error {
	s.currentReader = nil
	if s.currentCloser != nil {
		_ = s.currentCloser.Close()
		s.currentCloser = nil
	}
	if s.currentFile != nil {
		err := s.currentFile.Close()
		s.currentFile = nil
		return err
	}
	return nil
}

// decompress wraps compressed files by extension: .gz and .zst.
func decompress(f *os.File, path string) (io.Reader, io.Closer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, zr, nil
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd: %w", err)
		}
		return zr, zstdCloser{zr}, nil
	default:
		return f, nil, nil
	}
}

// zstdCloser adapts zstd.Decoder, whose Close has no error result.
type zstdCloser struct {
	d *zstd.Decoder
}

func (c zstdCloser) Close() error {
	c.d.Close()
	return nil
}
