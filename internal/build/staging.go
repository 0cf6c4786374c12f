package build

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gigglehq/giggle/internal/logfields"
)

// beginStaging creates the staging directory as a sibling of the output
// directory. The finished site is assembled there and promoted in one
// rename, so a failed build never leaves a half-written output.
func (bs *BuildState) beginStaging() error {
	stage := bs.Opts.OutputDir + "_stage"
	if err := os.RemoveAll(stage); err != nil {
		return fmt.Errorf("clear stale staging directory: %w", err)
	}
	if err := os.MkdirAll(stage, 0o755); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	bs.stageDir = stage
	slog.Debug("Initialized staging directory",
		slog.String("staging", stage), logfields.Output(bs.Opts.OutputDir))
	return nil
}

// finalizeStaging promotes the staging directory to the output location.
// The existing output is moved aside to <output>.prev first, then removed
// once the rename has succeeded.
func (bs *BuildState) finalizeStaging() error {
	if bs.stageDir == "" {
		return fmt.Errorf("no staging directory initialized")
	}

	prev := bs.Opts.OutputDir + ".prev"
	if err := os.RemoveAll(prev); err != nil {
		return fmt.Errorf("remove stale backup: %w", err)
	}
	if _, err := os.Stat(bs.Opts.OutputDir); err == nil {
		if err := os.Rename(bs.Opts.OutputDir, prev); err != nil {
			return fmt.Errorf("backup existing output: %w", err)
		}
	}
	if err := os.Rename(bs.stageDir, bs.Opts.OutputDir); err != nil {
		return fmt.Errorf("promote staging: %w", err)
	}
	bs.stageDir = ""

	if err := os.RemoveAll(prev); err != nil {
		slog.Warn("Failed to remove previous output backup", logfields.Path(prev), logfields.Error(err))
	}
	slog.Info("Promoted staging directory", logfields.Output(bs.Opts.OutputDir))
	return nil
}

// abortStaging removes the staging directory after a failed build.
func (bs *BuildState) abortStaging() {
	if bs.stageDir == "" {
		return
	}
	dir := bs.stageDir
	bs.stageDir = ""
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("Failed to remove staging directory after abort",
			slog.String("staging", dir), logfields.Error(err))
	}
}
