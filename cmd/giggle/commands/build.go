package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gigglehq/giggle/internal/build"
	"github.com/gigglehq/giggle/internal/history"
	"github.com/gigglehq/giggle/internal/logfields"
)

// BuildCmd implements the 'build' command (aliased as 'cook').
type BuildCmd struct {
	BuildDir  string `short:"b" name:"build-dir" help:"Output directory for the generated site" default:"./build"`
	Templates string `short:"t" help:"Template override directory" default:""`
	Minify    bool   `help:"Apply a light whitespace pass to the rendered HTML"`
	Drafts    bool   `help:"Include content marked draft: true"`
	HistoryDB string `name:"history-db" help:"Build history database path" default:".giggle/history.db"`
	NoHistory bool   `name:"no-history" help:"Do not record this build in the history database"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := build.Options{
		SiteConfig:    root.SiteConfig,
		StyleConfig:   styleConfigPath(root.StyleConfig),
		OutputDir:     b.BuildDir,
		TemplatesDir:  b.Templates,
		Minify:        b.Minify,
		IncludeDrafts: b.Drafts,
	}

	report, err := build.Run(ctx, opts)
	if !b.NoHistory {
		recordHistory(ctx, b.HistoryDB, report, err)
	}
	if err != nil {
		slog.Error("Build failed", logfields.Error(err))
		return err
	}

	slog.Info("Build complete",
		slog.String("outcome", report.Outcome),
		slog.Int("pages", report.Pages),
		slog.Int("assets", report.Assets),
		logfields.Output(b.BuildDir),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))
	return nil
}

// recordHistory appends the build to the history database. History is an
// accessory; failures are logged, never surfaced as build errors.
func recordHistory(ctx context.Context, dbPath string, report *build.BuildReport, buildErr error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		slog.Warn("Could not create history directory", logfields.Error(err))
		return
	}
	store, err := history.Open(dbPath)
	if err != nil {
		slog.Warn("Could not open history database", logfields.Error(err))
		return
	}
	defer store.Close()

	rec := history.BuildRecord{
		BuildID:    report.BuildID,
		StartedAt:  report.StartedAt,
		DurationMS: report.Duration.Milliseconds(),
		Outcome:    report.Outcome,
		Pages:      report.Pages,
		Warnings:   len(report.Warnings),
	}
	if buildErr != nil {
		rec.Error = buildErr.Error()
	}
	if err := store.Record(ctx, rec); err != nil {
		slog.Warn("Could not record build history", logfields.Error(err))
	}
}
