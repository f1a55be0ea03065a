package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/loghunter/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate a configuration file",
		Long: `Validate a LogHunter configuration file without reading any logs.

Without an argument, the file given by --config is checked, or the first of
./.loghunter.yaml and ~/.loghunter.yaml that exists.

Checks:
  - YAML syntax
  - Known encoding and time zone
  - Color mode and log level
  - Non-negative flag defaults`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, g)
		},
	}
}

func runValidate(cmd *cobra.Command, args []string, g *GlobalOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	configPath := g.ConfigPath
	if len(args) == 1 {
		configPath = args[0]
	}
	if configPath == "" {
		configPath = config.Discover()
	}

	if configPath == "" {
		fmt.Fprintln(w, "No configuration file found, checking defaults and environment...")
	} else {
		fmt.Fprintf(w, "Validating %s...\n", configPath)
	}

	cfg, _, err := config.Resolve(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Encoding:       %s\n", cfg.Encoding)
	fmt.Fprintf(w, "  Timezone:       %s\n", cfg.Location())
	fmt.Fprintf(w, "  Color:          %s\n", cfg.Color)
	maxLine := "unlimited"
	if cfg.MaxLineBytes > 0 {
		maxLine = fmt.Sprint(cfg.MaxLineBytes)
	}
	fmt.Fprintf(w, "  Max line bytes: %s\n", maxLine)
	fmt.Fprintf(w, "  Log level:      %s\n", cfg.Level())

	fmt.Fprintf(w, "\nDefaults:\n")
	limit := "unlimited"
	if cfg.Defaults.Limit > 0 {
		limit = fmt.Sprint(cfg.Defaults.Limit)
	}
	fmt.Fprintf(w, "  limit:   %s\n", limit)
	fmt.Fprintf(w, "  lines:   %d\n", cfg.Defaults.Lines)
	fmt.Fprintf(w, "  top:     %d\n", cfg.Defaults.Top)
	fmt.Fprintf(w, "  context: %d\n", cfg.Defaults.Context)

	return nil
}
