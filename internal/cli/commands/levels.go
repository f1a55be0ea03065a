package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/loghunter/pkg/parser"
	"github.com/ccollicutt/loghunter/pkg/store"
)

// LimitOptions holds the options of commands that print a list of lines.
type LimitOptions struct {
	Limit int
}

func (o *LimitOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.Limit, "limit", "l", 0, "Maximum number of lines to show")
}

// NewErrorsCommand creates the errors command.
func NewErrorsCommand(g *GlobalOptions) *cobra.Command {
	opts := &LimitOptions{}

	cmd := &cobra.Command{
		Use:   "errors <files>",
		Short: "Show ERROR, FATAL and CRITICAL lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLineQuery(cmd, args[0], g, opts, func(st *store.Store) (string, []*parser.ParsedLine) {
				lines := st.Errors()
				return fmt.Sprintf("Found %d error(s)", len(lines)), lines
			})
		},
	}
	opts.addFlags(cmd)
	return cmd
}

// NewWarningsCommand creates the warnings command.
func NewWarningsCommand(g *GlobalOptions) *cobra.Command {
	opts := &LimitOptions{}

	cmd := &cobra.Command{
		Use:     "warnings <files>",
		Aliases: []string{"warn"},
		Short:   "Show WARN and WARNING lines",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLineQuery(cmd, args[0], g, opts, func(st *store.Store) (string, []*parser.ParsedLine) {
				lines := st.Warnings()
				return fmt.Sprintf("Found %d warning(s)", len(lines)), lines
			})
		},
	}
	opts.addFlags(cmd)
	return cmd
}

// NewLevelCommand creates the level command.
func NewLevelCommand(g *GlobalOptions) *cobra.Command {
	opts := &LimitOptions{}

	cmd := &cobra.Command{
		Use:   "level <files> <levels...>",
		Short: "Show lines with the given levels",
		Long: `Show lines whose level is one of the given levels.

Levels are matched case-insensitively against TRACE, DEBUG, INFO, WARN,
WARNING, ERROR, FATAL and CRITICAL.`,
		Example: `  loghunter level app.log ERROR WARN`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			levels := args[1:]
			return runLineQuery(cmd, args[0], g, opts, func(st *store.Store) (string, []*parser.ParsedLine) {
				lines := st.FilterByLevel(levels...)
				return fmt.Sprintf("Found %d line(s) with level(s): %s", len(lines), strings.Join(levels, ", ")), lines
			})
		},
	}
	opts.addFlags(cmd)
	return cmd
}

// lineQuery selects lines from a loaded store and titles the result.
type lineQuery func(st *store.Store) (string, []*parser.ParsedLine)

// runLineQuery loads the files, runs query and prints its lines.
func runLineQuery(cmd *cobra.Command, pattern string, g *GlobalOptions, opts *LimitOptions, query lineQuery) error {
	s, err := openSession(cmd, g, pattern)
	if err != nil || s == nil {
		return err
	}

	limit := intFlag(cmd, "limit", opts.Limit, s.cfg.Defaults.Limit)
	if err := s.useFormatter(g.Output, limit); err != nil {
		return err
	}

	title, lines := query(s.store)
	return s.printLines(title, lines)
}
