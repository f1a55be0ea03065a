// Package cli provides the command-line interface for LogHunter.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/loghunter/internal/cli/commands"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitError       = 2
	ExitInterrupted = 130
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if ctx.Err() != nil {
		_, _ = fmt.Fprintln(stderr, "\nLogHunter closed")
		return ExitInterrupted
	}
	if err != nil {
		// SilenceErrors prevents Cobra from printing this
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitOK
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	g := &commands.GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "loghunter",
		Short: "Search, filter and summarize log files",
		Long: `LogHunter is a command-line tool for exploring plain-text log files.

Every command takes a file glob as its first argument ("**" matches across
directories). Gzip (.gz) and zstd (.zst) files are decompressed on the fly.

It can:
  - Search lines by regular expression, with context
  - Filter by level (errors, warnings, any level) or by time range
  - Find exception lines and their stack frames
  - Summarize levels, counts and time span
  - Group lines into recurring patterns

Settings are read from ./.loghunter.yaml or ~/.loghunter.yaml when present.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	g.AddFlags(rootCmd)

	rootCmd.AddCommand(commands.NewSearchCommand(g))
	rootCmd.AddCommand(commands.NewErrorsCommand(g))
	rootCmd.AddCommand(commands.NewWarningsCommand(g))
	rootCmd.AddCommand(commands.NewLevelCommand(g))
	rootCmd.AddCommand(commands.NewStatsCommand(g))
	rootCmd.AddCommand(commands.NewTailCommand(g))
	rootCmd.AddCommand(commands.NewHeadCommand(g))
	rootCmd.AddCommand(commands.NewTimeCommand(g))
	rootCmd.AddCommand(commands.NewPatternsCommand(g))
	rootCmd.AddCommand(commands.NewExceptionsCommand(g))
	rootCmd.AddCommand(commands.NewValidateCommand(g))
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
