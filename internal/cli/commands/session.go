package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ccollicutt/loghunter/pkg/config"
	"github.com/ccollicutt/loghunter/pkg/logging"
	"github.com/ccollicutt/loghunter/pkg/output"
	"github.com/ccollicutt/loghunter/pkg/parser"
	"github.com/ccollicutt/loghunter/pkg/store"
)

// GlobalOptions holds the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	Output     string
	Encoding   string
	Timezone   string
	Color      string
	Verbose    bool
}

// AddFlags registers the persistent flags on the root command.
func (g *GlobalOptions) AddFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&g.ConfigPath, "config", "", "Configuration file (default ./"+config.FileName+" or ~/"+config.FileName+")")
	flags.StringVarP(&g.Output, "output", "o", "text", "Output format (text|json)")
	flags.StringVar(&g.Encoding, "encoding", "", "Character set of the log files (default utf-8)")
	flags.StringVar(&g.Timezone, "timezone", "", "Time zone for timestamps without an offset (default Local)")
	flags.StringVar(&g.Color, "color", "", "Color output (auto|always|never)")
	flags.BoolVarP(&g.Verbose, "verbose", "v", false, "Log diagnostics to stderr")
}

// session is the state one command invocation works with: the resolved
// configuration, the loaded store and the formatter.
type session struct {
	ctx       context.Context
	cfg       *config.Config
	logger    *zap.Logger
	store     *store.Store
	formatter output.Formatter
	out       io.Writer
	now       time.Time
}

// loadConfig resolves the configuration file and applies flag overrides.
func (g *GlobalOptions) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, _, err := config.Resolve(ctx, g.ConfigPath)
	if err != nil {
		return nil, err
	}

	if g.Encoding == "" && g.Timezone == "" && g.Color == "" {
		return cfg, nil
	}
	if g.Encoding != "" {
		cfg.Encoding = g.Encoding
	}
	if g.Timezone != "" {
		cfg.Timezone = g.Timezone
	}
	if g.Color != "" {
		cfg.Color = config.ColorMode(g.Color)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid flag: %w", err)
	}
	return cfg, nil
}

// openSession loads the files matching pattern. It returns a nil session
// when there is nothing to work on; the reason has already been printed.
func openSession(cmd *cobra.Command, g *GlobalOptions, pattern string) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := g.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := output.New(g.Output, output.FormatOptions{}); err != nil {
		return nil, err
	}

	level := cfg.Level()
	if g.Verbose {
		level = zapcore.DebugLevel
	}
	logger := logging.New(logging.Options{Level: level, Writer: cmd.ErrOrStderr()})

	files, err := parser.ExpandGlobs([]string{pattern})
	if err != nil {
		return nil, fmt.Errorf("expanding %q: %w", pattern, err)
	}
	if len(files) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "No files found matching: %s\n", pattern)
		return nil, nil
	}
	logger.Debug("matched log files", zap.String("pattern", pattern), zap.Strings("files", files))

	st := store.New(
		store.WithExtractor(parser.NewExtractor(parser.WithLocation(cfg.Location()))),
		store.WithEncoding(cfg.Decoding()),
		store.WithMaxLineBytes(cfg.MaxLineBytes),
		store.WithLogger(logger),
	)
	if _, err := st.LoadFiles(ctx, files); err != nil {
		return nil, err
	}
	if st.Len() == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No log data loaded")
		return nil, nil
	}
	logLoaded(logger, st)

	return &session{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
		store:  st,
		out:    cmd.OutOrStdout(),
		now:    time.Now(),
	}, nil
}

// logLoaded reports the loaded range and how many lines carry a timestamp.
// Only timestamped lines can match a time range.
func logLoaded(logger *zap.Logger, st *store.Store) {
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		return
	}
	timestamped := 0
	for _, line := range st.Lines() {
		if line.HasTimestamp() {
			timestamped++
		}
	}
	first, last := st.At(0), st.At(st.Len()-1)
	logger.Debug("loaded log data",
		zap.Int("lines", st.Len()),
		zap.Int("timestamped", timestamped),
		zap.String("first", fmt.Sprintf("%s:%d", first.Source, first.LineNum)),
		zap.String("last", fmt.Sprintf("%s:%d", last.Source, last.LineNum)))
}

// useFormatter selects the output formatter with the given line limit.
func (s *session) useFormatter(name string, limit int) error {
	f, err := output.New(name, output.FormatOptions{Limit: limit, Color: s.cfg.Color})
	if err != nil {
		return err
	}
	s.formatter = f
	return nil
}

// printLines renders a titled list of lines.
func (s *session) printLines(title string, lines []*parser.ParsedLine) error {
	return s.formatter.FormatLines(s.ctx, &output.LineReport{Title: title, Lines: lines}, s.out)
}

// intFlag returns the flag value when it was set on the command line and
// fallback otherwise.
func intFlag(cmd *cobra.Command, name string, value, fallback int) int {
	if cmd.Flags().Changed(name) {
		return value
	}
	return fallback
}
