package store

import (
	"context"
	"testing"
	"time"
)

func TestStatistics(t *testing.T) {
	s := newSampleStore(t)
	stats := s.Statistics()

	if stats.TotalLines != 15 {
		t.Errorf("TotalLines = %d, want 15", stats.TotalLines)
	}
	if stats.Files != 1 {
		t.Errorf("Files = %d, want 1", stats.Files)
	}

	wantLevels := map[string]int{"INFO": 6, "DEBUG": 1, "WARN": 1, "ERROR": 6, "CRITICAL": 1}
	if len(stats.Levels) != len(wantLevels) {
		t.Errorf("Levels = %v, want %v", stats.Levels, wantLevels)
	}
	for level, want := range wantLevels {
		if stats.Levels[level] != want {
			t.Errorf("Levels[%s] = %d, want %d", level, stats.Levels[level], want)
		}
	}

	if stats.Errors != len(s.Errors()) {
		t.Errorf("Errors = %d, want %d", stats.Errors, len(s.Errors()))
	}
	if stats.Warnings != len(s.Warnings()) {
		t.Errorf("Warnings = %d, want %d", stats.Warnings, len(s.Warnings()))
	}
	if stats.Exceptions != len(s.Exceptions()) {
		t.Errorf("Exceptions = %d, want %d", stats.Exceptions, len(s.Exceptions()))
	}

	if stats.TimeRange == nil {
		t.Fatal("TimeRange is nil")
	}
	wantStart := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, 1, 10, 10, 15, 2, 0, time.UTC)
	if !stats.TimeRange.Start.Equal(wantStart) || !stats.TimeRange.End.Equal(wantEnd) {
		t.Errorf("TimeRange = %v..%v", stats.TimeRange.Start, stats.TimeRange.End)
	}
	if stats.TimeRange.Span != 15*time.Minute+2*time.Second {
		t.Errorf("Span = %v, want 15m2s", stats.TimeRange.Span)
	}
}

func TestStatistics_MultipleFiles(t *testing.T) {
	dir := t.TempDir()
	app := writeLog(t, dir, "app.log", sampleApp)
	svc := writeLog(t, dir, "service.log", sampleService)

	s := New()
	if _, err := s.LoadFiles(context.Background(), []string{app, svc}); err != nil {
		t.Fatal(err)
	}

	stats := s.Statistics()
	if stats.Files != 2 || stats.TotalLines != 21 {
		t.Errorf("Files = %d, TotalLines = %d", stats.Files, stats.TotalLines)
	}
	if stats.TimeRange.Span != time.Hour+2*time.Minute+5*time.Second {
		t.Errorf("Span = %v, want 1h2m5s", stats.TimeRange.Span)
	}

	sum := 0
	for _, n := range stats.Levels {
		sum += n
	}
	if sum > stats.TotalLines {
		t.Errorf("level counts %d exceed total lines %d", sum, stats.TotalLines)
	}
}

func TestStatistics_NoTimestamps(t *testing.T) {
	path := writeLog(t, t.TempDir(), "plain.log", "just text\nmore text ERROR\n")
	s := New()
	if err := s.LoadFile(context.Background(), path); err != nil {
		t.Fatal(err)
	}

	stats := s.Statistics()
	if stats.TimeRange != nil {
		t.Errorf("TimeRange = %+v, want nil", stats.TimeRange)
	}
	if stats.Errors != 1 {
		t.Errorf("Errors = %d, want 1", stats.Errors)
	}
}

func TestStatistics_Empty(t *testing.T) {
	stats := New().Statistics()
	if stats.TotalLines != 0 || stats.Files != 0 || stats.TimeRange != nil {
		t.Errorf("empty store statistics = %+v", stats)
	}
	if len(stats.LevelCounts()) != 0 {
		t.Errorf("LevelCounts() = %v, want empty", stats.LevelCounts())
	}
}

func TestLevelCounts(t *testing.T) {
	stats := newSampleStore(t).Statistics()

	want := []LevelCount{
		{"INFO", 6},
		{"ERROR", 6},
		{"DEBUG", 1},
		{"WARN", 1},
		{"CRITICAL", 1},
	}
	got := stats.LevelCounts()
	if len(got) != len(want) {
		t.Fatalf("LevelCounts() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LevelCounts()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
