package commands

import (
	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <files>",
		Short: "Summarize line counts, levels and time range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, g)
		},
	}
}

func runStats(cmd *cobra.Command, args []string, g *GlobalOptions) error {
	s, err := openSession(cmd, g, args[0])
	if err != nil || s == nil {
		return err
	}
	if err := s.useFormatter(g.Output, 0); err != nil {
		return err
	}

	return s.formatter.FormatStatistics(s.ctx, s.store.Statistics(), s.out)
}
