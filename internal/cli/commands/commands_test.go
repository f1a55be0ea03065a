package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/loghunter/pkg/store"
	"github.com/ccollicutt/loghunter/pkg/timearg"
)

const sampleLog = `2026-01-10 10:00:00 INFO Application started
2026-01-10 10:00:01 DEBUG Loading configuration
2026-01-10 10:00:02 INFO Configuration loaded successfully
2026-01-10 10:01:15 WARN High memory usage detected: 85%
2026-01-10 10:02:30 ERROR Connection to database failed
2026-01-10 10:02:31 ERROR Retry attempt 1 failed
2026-01-10 10:02:32 INFO Connection established
2026-01-10 10:05:00 ERROR NullPointerException in handler
2026-01-10 10:05:01 ERROR     at com.example.Handler.process()
2026-01-10 10:05:02 ERROR     at com.example.Main.run()
2026-01-10 10:10:00 INFO Request from 192.168.1.100
2026-01-10 10:10:05 INFO Request from 192.168.1.101
2026-01-10 10:15:00 CRITICAL System overload detected
2026-01-10 10:15:01 ERROR Emergency shutdown initiated
2026-01-10 10:15:02 INFO Cleanup complete
`

// newTestRoot builds a root command with every log command attached.
func newTestRoot() *cobra.Command {
	g := &GlobalOptions{}
	root := &cobra.Command{Use: "loghunter", SilenceUsage: true, SilenceErrors: true}
	g.AddFlags(root)
	root.AddCommand(
		NewSearchCommand(g),
		NewErrorsCommand(g),
		NewWarningsCommand(g),
		NewLevelCommand(g),
		NewStatsCommand(g),
		NewTailCommand(g),
		NewHeadCommand(g),
		NewTimeCommand(g),
		NewPatternsCommand(g),
		NewExceptionsCommand(g),
		NewValidateCommand(g),
		NewVersionCommand(),
	)
	return root
}

// executeCommand runs the command line with HOME pointed at an empty
// directory so no user configuration is picked up.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := newTestRoot()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	return path
}

func writeSampleLog(t *testing.T) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "app.log", sampleLog)
}

func TestCommandDefinitions(t *testing.T) {
	root := newTestRoot()

	tests := []struct {
		name  string
		use   string
		flags []string
	}{
		{"search", "search <files> <pattern>", []string{"ignore-case", "context", "limit"}},
		{"errors", "errors <files>", []string{"limit"}},
		{"warnings", "warnings <files>", []string{"limit"}},
		{"level", "level <files> <levels...>", []string{"limit"}},
		{"stats", "stats <files>", nil},
		{"tail", "tail <files>", []string{"lines"}},
		{"head", "head <files>", []string{"lines"}},
		{"time", "time <files>", []string{"since", "until", "limit"}},
		{"patterns", "patterns <files>", []string{"top"}},
		{"exceptions", "exceptions <files>", []string{"limit", "traces"}},
		{"validate", "validate [config-file]", nil},
		{"version", "version", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, err := root.Find([]string{tt.name})
			if err != nil {
				t.Fatalf("command %s not found: %v", tt.name, err)
			}
			if cmd.Use != tt.use {
				t.Errorf("Use = %q, want %q", cmd.Use, tt.use)
			}
			for _, flag := range tt.flags {
				if cmd.Flags().Lookup(flag) == nil {
					t.Errorf("Missing flag: %s", flag)
				}
			}
		})
	}

	for _, flag := range []string{"config", "output", "encoding", "timezone", "color", "verbose"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("Missing persistent flag: %s", flag)
		}
	}
}

func TestAliases(t *testing.T) {
	root := newTestRoot()

	for alias, name := range map[string]string{"warn": "warnings", "exc": "exceptions"} {
		cmd, _, err := root.Find([]string{alias})
		if err != nil || cmd.Name() != name {
			t.Errorf("alias %q resolved to %v (err %v), want %s", alias, cmd, err, name)
		}
	}
}

func TestSearch(t *testing.T) {
	logPath := writeSampleLog(t)

	tests := []struct {
		name      string
		args      []string
		wantTitle string
		wantLines []string
	}{
		{
			name:      "literal",
			args:      []string{"search", logPath, "Connection"},
			wantTitle: "Found 2 result(s)",
			wantLines: []string{"app.log:5: ", "app.log:7: "},
		},
		{
			name:      "case-sensitive by default",
			args:      []string{"search", logPath, "connection"},
			wantTitle: "Found 0 result(s)",
			wantLines: []string{"No results found."},
		},
		{
			name:      "ignore case",
			args:      []string{"search", logPath, "connection", "-i"},
			wantTitle: "Found 2 result(s)",
		},
		{
			name:      "regex",
			args:      []string{"search", logPath, "Connection.*failed"},
			wantTitle: "Found 1 result(s)",
			wantLines: []string{"app.log:5: 2026-01-10 10:02:30 ERROR Connection to database failed"},
		},
		{
			name:      "context",
			args:      []string{"search", logPath, "Retry attempt", "-c", "1"},
			wantTitle: "Found 3 result(s)",
			wantLines: []string{"app.log:5: ", "app.log:6: ", "app.log:7: "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := executeCommand(t, tt.args...)
			if err != nil {
				t.Fatalf("search error = %v", err)
			}
			if !strings.HasPrefix(stdout, tt.wantTitle+"\n") {
				t.Errorf("output does not start with %q:\n%s", tt.wantTitle, stdout)
			}
			for _, want := range tt.wantLines {
				if !strings.Contains(stdout, want) {
					t.Errorf("output missing %q:\n%s", want, stdout)
				}
			}
		})
	}
}

func TestSearch_InvalidPattern(t *testing.T) {
	logPath := writeSampleLog(t)

	_, _, err := executeCommand(t, "search", logPath, "[unclosed")
	var patErr *store.PatternError
	if !errors.As(err, &patErr) {
		t.Errorf("error = %v, want *store.PatternError", err)
	}
}

func TestErrors(t *testing.T) {
	logPath := writeSampleLog(t)

	stdout, _, err := executeCommand(t, "errors", logPath)
	if err != nil {
		t.Fatalf("errors error = %v", err)
	}
	if !strings.Contains(stdout, "Found 7 error(s)") {
		t.Errorf("output missing count:\n%s", stdout)
	}
	if !strings.Contains(stdout, "app.log:13: 2026-01-10 10:15:00 CRITICAL System overload detected") {
		t.Errorf("CRITICAL line missing:\n%s", stdout)
	}
}

func TestErrors_Limit(t *testing.T) {
	logPath := writeSampleLog(t)

	stdout, _, err := executeCommand(t, "errors", logPath, "--limit", "2")
	if err != nil {
		t.Fatalf("errors error = %v", err)
	}
	if got := strings.Count(stdout, "app.log:"); got != 2 {
		t.Errorf("rendered %d lines, want 2:\n%s", got, stdout)
	}
	if !strings.Contains(stdout, "... 5 more results (use --limit to see more)") {
		t.Errorf("output missing trailer:\n%s", stdout)
	}
}

func TestWarnings(t *testing.T) {
	logPath := writeSampleLog(t)

	for _, name := range []string{"warnings", "warn"} {
		stdout, _, err := executeCommand(t, name, logPath)
		if err != nil {
			t.Fatalf("%s error = %v", name, err)
		}
		if !strings.Contains(stdout, "Found 1 warning(s)") || !strings.Contains(stdout, "app.log:4: ") {
			t.Errorf("%s output:\n%s", name, stdout)
		}
	}
}

func TestLevel(t *testing.T) {
	logPath := writeSampleLog(t)

	stdout, _, err := executeCommand(t, "level", logPath, "debug", "critical")
	if err != nil {
		t.Fatalf("level error = %v", err)
	}
	if !strings.Contains(stdout, "Found 2 line(s) with level(s): debug, critical") {
		t.Errorf("output missing title:\n%s", stdout)
	}

	_, _, err = executeCommand(t, "level", logPath)
	if err == nil {
		t.Error("level without levels should fail")
	}
}

func TestStats(t *testing.T) {
	logPath := writeSampleLog(t)

	stdout, _, err := executeCommand(t, "stats", logPath)
	if err != nil {
		t.Fatalf("stats error = %v", err)
	}
	for _, want := range []string{"Total lines:  15", "Files:        1", "Errors:     7", "Warnings:   1", "Span:  15m2s"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestStats_JSON(t *testing.T) {
	logPath := writeSampleLog(t)

	stdout, _, err := executeCommand(t, "stats", logPath, "-o", "json")
	if err != nil {
		t.Fatalf("stats error = %v", err)
	}

	var parsed struct {
		TotalLines int `json:"total_lines"`
		Errors     int `json:"errors"`
	}
	if err := json.Unmarshal([]byte(stdout), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, stdout)
	}
	if parsed.TotalLines != 15 || parsed.Errors != 7 {
		t.Errorf("parsed = %+v", parsed)
	}
}

func TestHeadTail(t *testing.T) {
	logPath := writeSampleLog(t)

	tests := []struct {
		args      []string
		wantTitle string
		wantFirst string
		wantCount int
	}{
		{[]string{"head", logPath, "-n", "3"}, "First 3 line(s)", "app.log:1: ", 3},
		{[]string{"tail", logPath, "-n", "2"}, "Last 2 line(s)", "app.log:14: ", 2},
		{[]string{"tail", logPath}, "Last 10 line(s)", "app.log:6: ", 10},
		{[]string{"head", logPath, "-n", "100"}, "First 15 line(s)", "app.log:1: ", 15},
	}

	for _, tt := range tests {
		stdout, _, err := executeCommand(t, tt.args...)
		if err != nil {
			t.Fatalf("%v error = %v", tt.args, err)
		}
		if !strings.HasPrefix(stdout, tt.wantTitle) {
			t.Errorf("%v output does not start with %q:\n%s", tt.args, tt.wantTitle, stdout)
		}
		if got := strings.Count(stdout, "app.log:"); got != tt.wantCount {
			t.Errorf("%v rendered %d lines, want %d", tt.args, got, tt.wantCount)
		}
		if !strings.Contains(stdout, "\n\n"+tt.wantFirst) {
			t.Errorf("%v first line is not %q:\n%s", tt.args, tt.wantFirst, stdout)
		}
	}
}

func TestTime(t *testing.T) {
	logPath := writeSampleLog(t)

	tests := []struct {
		name      string
		args      []string
		wantTitle string
	}{
		{"since", []string{"--since", "2026-01-10T10:10:00"}, "Found 5 line(s) in time range"},
		{"until", []string{"--until", "2026-01-10 10:00:02"}, "Found 3 line(s) in time range"},
		{"window", []string{"--since", "2026-01-10T10:02", "--until", "2026-01-10T10:05"}, "Found 4 line(s) in time range"},
		{"offset", []string{"--since", "2026-01-10T11:10:00+01:00"}, "Found 5 line(s) in time range"},
		{"open", nil, "Found 15 line(s) in time range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"time", logPath, "--timezone", "UTC"}, tt.args...)
			stdout, _, err := executeCommand(t, args...)
			if err != nil {
				t.Fatalf("time error = %v", err)
			}
			if !strings.HasPrefix(stdout, tt.wantTitle) {
				t.Errorf("output does not start with %q:\n%s", tt.wantTitle, stdout)
			}
		})
	}
}

func TestTime_InvalidBound(t *testing.T) {
	logPath := writeSampleLog(t)

	_, _, err := executeCommand(t, "time", logPath, "--since", "yesterday")
	if !errors.Is(err, timearg.ErrInvalidTimeFormat) {
		t.Errorf("error = %v, want ErrInvalidTimeFormat", err)
	}
}

func TestPatterns(t *testing.T) {
	logPath := writeSampleLog(t)

	stdout, _, err := executeCommand(t, "patterns", logPath, "--top", "1")
	if err != nil {
		t.Fatalf("patterns error = %v", err)
	}
	if !strings.Contains(stdout, "Top 1 Common Patterns") {
		t.Errorf("output missing header:\n%s", stdout)
	}
	if !strings.Contains(stdout, "1. (2×) [TIMESTAMP] INFO Request from [IP]") {
		t.Errorf("output missing top pattern:\n%s", stdout)
	}
}

func TestExceptions(t *testing.T) {
	content := `2026-01-10 10:00:00 INFO starting
2026-01-10 10:00:01 ERROR request failed: Exception in thread "main"
	at com.example.Handler.process(Handler.java:10)
	at com.example.Main.run(Main.java:5)
2026-01-10 10:00:02 INFO recovered
`
	logPath := writeFile(t, t.TempDir(), "trace.log", content)

	stdout, _, err := executeCommand(t, "exc", logPath)
	if err != nil {
		t.Fatalf("exceptions error = %v", err)
	}
	if !strings.Contains(stdout, "Found 1 exception(s)") {
		t.Errorf("output missing count:\n%s", stdout)
	}

	stdout, _, err = executeCommand(t, "exceptions", logPath, "--traces")
	if err != nil {
		t.Fatalf("exceptions --traces error = %v", err)
	}
	if got := strings.Count(stdout, "trace.log:"); got != 3 {
		t.Errorf("rendered %d lines, want 3:\n%s", got, stdout)
	}
}

func TestMultipleFilesAndCompression(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.log", "2026-01-10 10:00:00 ERROR first\n")
	writeFile(t, dir, "b.log", "2026-01-10 10:00:01 ERROR second\n")
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "nested"), "c.log", "2026-01-10 10:00:02 ERROR third\n")

	stdout, _, err := executeCommand(t, "errors", filepath.Join(dir, "**", "*.log"))
	if err != nil {
		t.Fatalf("errors error = %v", err)
	}
	if !strings.Contains(stdout, "Found 3 error(s)") {
		t.Errorf("recursive glob did not load all files:\n%s", stdout)
	}

	// Files load in sorted path order
	a := strings.Index(stdout, "a.log:1:")
	b := strings.Index(stdout, "b.log:1:")
	c := strings.Index(stdout, "c.log:1:")
	if a < 0 || b < a || c < b {
		t.Errorf("unexpected file order:\n%s", stdout)
	}
}

func TestNoFilesMatched(t *testing.T) {
	pattern := filepath.Join(t.TempDir(), "*.log")

	stdout, stderr, err := executeCommand(t, "errors", pattern)
	if err != nil {
		t.Fatalf("errors error = %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "No files found matching: "+pattern) {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestNoDataLoaded(t *testing.T) {
	logPath := writeFile(t, t.TempDir(), "empty.log", "")

	stdout, stderr, err := executeCommand(t, "stats", logPath)
	if err != nil {
		t.Fatalf("stats error = %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "No log data loaded") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestConfigDefaults(t *testing.T) {
	logPath := writeSampleLog(t)
	configPath := writeFile(t, t.TempDir(), "config.yaml", "defaults:\n  limit: 2\n  lines: 4\n")

	stdout, _, err := executeCommand(t, "errors", logPath, "--config", configPath)
	if err != nil {
		t.Fatalf("errors error = %v", err)
	}
	if !strings.Contains(stdout, "... 5 more results") {
		t.Errorf("configured limit not applied:\n%s", stdout)
	}

	// An explicit flag wins over the configured default
	stdout, _, err = executeCommand(t, "errors", logPath, "--config", configPath, "-l", "0")
	if err != nil {
		t.Fatalf("errors error = %v", err)
	}
	if strings.Contains(stdout, "more results") {
		t.Errorf("explicit --limit 0 should show everything:\n%s", stdout)
	}

	stdout, _, err = executeCommand(t, "head", logPath, "--config", configPath)
	if err != nil {
		t.Fatalf("head error = %v", err)
	}
	if !strings.HasPrefix(stdout, "First 4 line(s)") {
		t.Errorf("configured lines not applied:\n%s", stdout)
	}
}

func TestInvalidGlobalFlags(t *testing.T) {
	logPath := writeSampleLog(t)

	tests := []struct {
		name string
		args []string
	}{
		{"output", []string{"-o", "xml"}},
		{"color", []string{"--color", "sometimes"}},
		{"encoding", []string{"--encoding", "klingon"}},
		{"timezone", []string{"--timezone", "Mars/Olympus"}},
		{"config", []string{"--config", "/nonexistent/config.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"errors", logPath}, tt.args...)
			if _, _, err := executeCommand(t, args...); err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}
}

func TestEncodingFlag(t *testing.T) {
	// "café" in windows-1252
	logPath := writeFile(t, t.TempDir(), "latin.log", "2026-01-10 10:00:00 ERROR caf\xe9 closed\n")

	stdout, _, err := executeCommand(t, "errors", logPath, "--encoding", "latin1")
	if err != nil {
		t.Fatalf("errors error = %v", err)
	}
	if !strings.Contains(stdout, "café closed") {
		t.Errorf("line not decoded as latin1:\n%s", stdout)
	}
}

func TestVerboseLogsToStderr(t *testing.T) {
	logPath := writeSampleLog(t)

	stdout, stderr, err := executeCommand(t, "errors", logPath, "-v")
	if err != nil {
		t.Fatalf("errors error = %v", err)
	}
	for _, want := range []string{"loaded log file", "loaded log data", "app.log:15"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("verbose diagnostics missing %q from stderr:\n%s", want, stderr)
		}
	}
	if strings.Contains(stdout, "loaded log file") {
		t.Errorf("diagnostics leaked to stdout:\n%s", stdout)
	}
}
