package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/loghunter/pkg/parser"
	"github.com/ccollicutt/loghunter/pkg/store"
)

// ExceptionsOptions holds command-line options for the exceptions command.
type ExceptionsOptions struct {
	LimitOptions
	Traces bool
}

// NewExceptionsCommand creates the exceptions command.
func NewExceptionsCommand(g *GlobalOptions) *cobra.Command {
	opts := &ExceptionsOptions{}

	cmd := &cobra.Command{
		Use:     "exceptions <files>",
		Aliases: []string{"exc"},
		Short:   "Show lines mentioning an Exception, Error or Traceback",
		Long: `Show lines that mention Exception, Error or Traceback as a whole word.

This looks at the text of the line, independent of its level. With --traces,
the indented stack frame lines following each match are included.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLineQuery(cmd, args[0], g, &opts.LimitOptions, func(st *store.Store) (string, []*parser.ParsedLine) {
				if opts.Traces {
					lines := st.StackTraces()
					return fmt.Sprintf("Found %d exception line(s) with stack frames", len(lines)), lines
				}
				lines := st.Exceptions()
				return fmt.Sprintf("Found %d exception(s)", len(lines)), lines
			})
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().BoolVar(&opts.Traces, "traces", false, "Include stack frame lines after each exception")

	return cmd
}
