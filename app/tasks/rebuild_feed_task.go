package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/lysyi3m/rss-rebuilder/app/cfg"
	"github.com/lysyi3m/rss-rebuilder/app/feed"
)

var _ TaskInterface = (*RebuildFeedTask)(nil)

type RebuildFeedTask struct {
	Task
	Settings *cfg.Settings
	fetcher  *feed.Fetcher
	builder  *feed.Builder
	parser   *feed.Parser
	writer   *feed.Writer
	dryRun   io.Writer
}

func NewRebuildFeedTask(settings *cfg.Settings, fetcher *feed.Fetcher, builder *feed.Builder, parser *feed.Parser, writer *feed.Writer) *RebuildFeedTask {
	return &RebuildFeedTask{
		Task:     NewTask(TaskTypeRebuildFeed, settings.OutputFile),
		Settings: settings,
		fetcher:  fetcher,
		builder:  builder,
		parser:   parser,
		writer:   writer,
	}
}

// WithDryRun makes Execute print the rebuilt episodes to out instead of
// writing the feed file.
func (t *RebuildFeedTask) WithDryRun(out io.Writer) *RebuildFeedTask {
	t.dryRun = out
	return t
}

func (t *RebuildFeedTask) Execute(ctx context.Context) error {
	t.Start()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	slog.Debug("Fetching source feed", "url", t.Settings.SourceFeed)

	src, err := t.fetcher.Run(ctx, t.Settings.SourceFeed)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	rebuilt, err := t.builder.Run(src, t.Settings.SiteBasePath)
	if err != nil {
		return fmt.Errorf("failed to rebuild feed: %w", err)
	}

	summary, err := t.parser.Run([]byte(rebuilt))
	if err != nil {
		return fmt.Errorf("failed to read back rebuilt feed: %w", err)
	}

	if t.dryRun != nil {
		if _, err := fmt.Fprintln(t.dryRun, renderEpisodes(summary)); err != nil {
			return fmt.Errorf("failed to print episodes: %w", err)
		}

		slog.Info("Task completed",
			"type", t.GetType(),
			"feed", t.FeedName,
			"duration", t.GetDuration(),
			"episodes", len(summary.Episodes),
			"enclosures", summary.Enclosures(),
			"dry_run", true)
		return nil
	}

	path, err := t.writer.Run(t.Settings.OutputFile, rebuilt)
	if err != nil {
		return fmt.Errorf("failed to write feed: %w", err)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"feed", t.FeedName,
		"title", summary.Title,
		"path", path,
		"duration", t.GetDuration(),
		"episodes", len(summary.Episodes),
		"enclosures", summary.Enclosures())

	return nil
}
