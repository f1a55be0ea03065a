package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/loghunter/pkg/output"
	"github.com/ccollicutt/loghunter/pkg/parser"
	"github.com/ccollicutt/loghunter/pkg/store"
)

// SearchOptions holds command-line options for the search command.
type SearchOptions struct {
	IgnoreCase bool
	Context    int
	Limit      int
}

// NewSearchCommand creates the search command.
func NewSearchCommand(g *GlobalOptions) *cobra.Command {
	opts := &SearchOptions{}

	cmd := &cobra.Command{
		Use:   "search <files> <pattern>",
		Short: "Search for lines matching a regular expression",
		Long: `Search log files for lines matching a regular expression.

The pattern is case-sensitive unless --ignore-case is given. With --context,
lines around each match are included; overlapping windows are merged.
Matches are highlighted in text output.`,
		Example: `  loghunter search "/var/log/*.log" "Connection.*failed"
  loghunter search "logs/**/*.log" timeout -i -c 2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, g, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.IgnoreCase, "ignore-case", "i", false, "Case-insensitive search")
	cmd.Flags().IntVarP(&opts.Context, "context", "c", 0, "Lines of context around each match")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", 0, "Maximum number of lines to show")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string, g *GlobalOptions, opts *SearchOptions) error {
	re, err := store.CompilePattern(args[1], !opts.IgnoreCase)
	if err != nil {
		return err
	}

	s, err := openSession(cmd, g, args[0])
	if err != nil || s == nil {
		return err
	}

	limit := intFlag(cmd, "limit", opts.Limit, s.cfg.Defaults.Limit)
	if err := s.useFormatter(g.Output, limit); err != nil {
		return err
	}

	var results []*parser.ParsedLine
	if around := intFlag(cmd, "context", opts.Context, s.cfg.Defaults.Context); around > 0 {
		results = s.store.Context(s.store.MatchIndices(re), around, around)
	} else {
		results = s.store.FilterByRegexp(re)
	}

	return s.formatter.FormatLines(s.ctx, &output.LineReport{
		Title:     fmt.Sprintf("Found %d result(s)", len(results)),
		Lines:     results,
		Highlight: re,
	}, s.out)
}
