package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// HeadTailOptions holds command-line options for the head and tail commands.
type HeadTailOptions struct {
	Lines int
}

// NewHeadCommand creates the head command.
func NewHeadCommand(g *GlobalOptions) *cobra.Command {
	opts := &HeadTailOptions{}

	cmd := &cobra.Command{
		Use:   "head <files>",
		Short: "Show the first lines across all files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeadTail(cmd, args, g, opts, false)
		},
	}
	cmd.Flags().IntVarP(&opts.Lines, "lines", "n", 0, "Number of lines to show (default 10)")
	return cmd
}

// NewTailCommand creates the tail command.
func NewTailCommand(g *GlobalOptions) *cobra.Command {
	opts := &HeadTailOptions{}

	cmd := &cobra.Command{
		Use:   "tail <files>",
		Short: "Show the last lines across all files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeadTail(cmd, args, g, opts, true)
		},
	}
	cmd.Flags().IntVarP(&opts.Lines, "lines", "n", 0, "Number of lines to show (default 10)")
	return cmd
}

func runHeadTail(cmd *cobra.Command, args []string, g *GlobalOptions, opts *HeadTailOptions, tail bool) error {
	s, err := openSession(cmd, g, args[0])
	if err != nil || s == nil {
		return err
	}
	if err := s.useFormatter(g.Output, 0); err != nil {
		return err
	}

	n := intFlag(cmd, "lines", opts.Lines, s.cfg.Defaults.Lines)
	if tail {
		lines := s.store.Tail(n)
		return s.printLines(fmt.Sprintf("Last %d line(s)", len(lines)), lines)
	}
	lines := s.store.Head(n)
	return s.printLines(fmt.Sprintf("First %d line(s)", len(lines)), lines)
}
