package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"

	"github.com/lysyi3m/rss-rebuilder/app/cfg"
	"github.com/lysyi3m/rss-rebuilder/app/feed"
	"github.com/lysyi3m/rss-rebuilder/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	setupLogger(appCfg.Debug)

	if err := run(appCfg); err != nil {
		slog.Error("Feed rebuild failed", "error", err)
		os.Exit(1)
	}
}

func run(appCfg *cfg.Cfg) error {
	slog.Info("Starting RSS rebuilder", "version", appCfg.Version, "config", appCfg.ConfigFile)

	settings, err := cfg.LoadSettings(appCfg.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	lock := flock.New(appCfg.LockFile)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock %s: %w", appCfg.LockFile, err)
	}
	if !locked {
		return errors.New("another rebuild is already running")
	}
	defer lock.Unlock()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	task := tasks.NewRebuildFeedTask(
		settings,
		feed.NewFetcher(&http.Client{}, appCfg.UserAgent, appCfg.FetchTimeout),
		feed.NewBuilder(feed.NewCleaner()),
		feed.NewParser(),
		feed.NewWriter(appCfg.OutputDir),
	)
	if appCfg.DryRun {
		task.WithDryRun(os.Stdout)
	}

	slog.Debug("Executing task", "id", task.GetID(), "type", task.GetType(), "feed", task.GetFeedName())

	return task.Execute(ctx)
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
