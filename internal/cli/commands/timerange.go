package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ccollicutt/loghunter/pkg/timearg"
)

// TimeOptions holds command-line options for the time command.
type TimeOptions struct {
	LimitOptions
	Since string
	Until string
}

// NewTimeCommand creates the time command.
func NewTimeCommand(g *GlobalOptions) *cobra.Command {
	opts := &TimeOptions{}

	cmd := &cobra.Command{
		Use:   "time <files>",
		Short: "Show lines within a time range",
		Long: `Show lines whose timestamp falls within the given range. Both bounds are
inclusive and either may be omitted. Lines without a timestamp are skipped.

Bounds are relative to now (30s, 15m, 2h, 7d) or absolute ISO-8601 times
(2026-01-10, 2026-01-10T10:00, 2026-01-10 10:00:00, 2026-01-10T10:00:00Z).
Absolute times without an offset use the configured time zone.`,
		Example: `  loghunter time app.log --since 2h
  loghunter time "logs/*.log" --since 2026-01-10T10:00 --until 2026-01-10T11:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTime(cmd, args, g, opts)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVar(&opts.Since, "since", "", "Start of the range (e.g. 1h, 2026-01-10T10:00:00)")
	cmd.Flags().StringVar(&opts.Until, "until", "", "End of the range (e.g. 30m, 2026-01-10T11:00:00)")

	return cmd
}

func runTime(cmd *cobra.Command, args []string, g *GlobalOptions, opts *TimeOptions) error {
	s, err := openSession(cmd, g, args[0])
	if err != nil || s == nil {
		return err
	}

	start, err := parseBound(opts.Since, s.now, s.cfg.Location())
	if err != nil {
		return fmt.Errorf("--since: %w", err)
	}
	end, err := parseBound(opts.Until, s.now, s.cfg.Location())
	if err != nil {
		return fmt.Errorf("--until: %w", err)
	}
	s.logger.Debug("time range", zap.Timep("start", start), zap.Timep("end", end))

	limit := intFlag(cmd, "limit", opts.Limit, s.cfg.Defaults.Limit)
	if err := s.useFormatter(g.Output, limit); err != nil {
		return err
	}

	lines := s.store.FilterByTimeRange(start, end)
	return s.printLines(fmt.Sprintf("Found %d line(s) in time range", len(lines)), lines)
}

// parseBound parses an optional range bound. An empty text is an open bound.
func parseBound(text string, now time.Time, loc *time.Location) (*time.Time, error) {
	if text == "" {
		return nil, nil
	}
	t, err := timearg.ParseInLocation(text, now, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
