// Package main provides the entry point for the TimeBox TUI application.
//
// TimeBox is a terminal time-boxing app: tasks on the left, a half-hour
// schedule grid for the day on the right, and a countdown timer that
// completes tasks when it runs out.
//
// Usage:
//
//	timebox [options]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timeboxpro/timebox/internal/app"
	"github.com/timeboxpro/timebox/internal/config"
	"github.com/timeboxpro/timebox/internal/storage/sqlite"
)

func main() {
	dbFlag := flag.String("db", "", "Path to sqlite database file (overrides config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *dbFlag != "" {
		cfg.Database.Path = *dbFlag
	}

	logger, logFile, err := openLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	store, err := sqlite.Open(cfg.Database.Path, logger)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	model := app.New(cfg, store, logger)
	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		logger.Error("program stopped unexpectedly", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// openLogger writes structured logs to the configured file. Stdout and
// stderr belong to the TUI.
func openLogger(cfg *config.Config) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.Log.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelInfo
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, f, nil
}
