package commands

import (
	"github.com/spf13/cobra"

	"github.com/ccollicutt/loghunter/pkg/output"
)

// PatternsOptions holds command-line options for the patterns command.
type PatternsOptions struct {
	Top int
}

// NewPatternsCommand creates the patterns command.
func NewPatternsCommand(g *GlobalOptions) *cobra.Command {
	opts := &PatternsOptions{}

	cmd := &cobra.Command{
		Use:   "patterns <files>",
		Short: "Show the most common line patterns",
		Long: `Group lines by pattern and show the most frequent ones.

Timestamps are replaced with [TIMESTAMP], IPv4 addresses with [IP] and
numbers with [NUM] before lines are counted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatterns(cmd, args, g, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Top, "top", "n", 0, "Number of patterns to show (default 10)")
	return cmd
}

func runPatterns(cmd *cobra.Command, args []string, g *GlobalOptions, opts *PatternsOptions) error {
	s, err := openSession(cmd, g, args[0])
	if err != nil || s == nil {
		return err
	}
	if err := s.useFormatter(g.Output, 0); err != nil {
		return err
	}

	top := intFlag(cmd, "top", opts.Top, s.cfg.Defaults.Top)
	return s.formatter.FormatPatterns(s.ctx, &output.PatternReport{Patterns: s.store.TopPatterns(top)}, s.out)
}
