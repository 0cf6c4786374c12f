package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gigglehq/giggle/internal/logfields"
	"github.com/gigglehq/giggle/internal/metrics"
)

// StageName identifies one unit of work in the build pipeline.
type StageName string

const (
	StagePrepareOutput StageName = "prepare_output"
	StageScanContent   StageName = "scan_content"
	StageBuildModels   StageName = "build_models"
	StageRenderPages   StageName = "render_pages"
	StageWriteOutput   StageName = "write_output"
	StageCopyAssets    StageName = "copy_assets"
	StageGenerateCSS   StageName = "generate_css"
	StageVerifyLinks   StageName = "verify_links"
	StagePostProcess   StageName = "post_process"
)

// Stage is a discrete unit of work. Stages run strictly in order; a fatal
// error stops the pipeline, a warning is recorded and the next stage runs.
type Stage func(ctx context.Context, bs *BuildState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"
	StageErrorWarning  StageErrorKind = "warning"
	StageErrorCanceled StageErrorKind = "canceled"
)

// StageError carries the stage classification and the underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}

func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

type namedStage struct {
	name StageName
	fn   Stage
}

// runStages executes stages in order, recording timings, counters, and
// metrics, stopping on the first fatal or canceled error.
func runStages(ctx context.Context, bs *BuildState, stages []namedStage) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.name, ctx.Err())
			bs.Report.recordStageResult(st.name, metrics.ResultCanceled, bs.Recorder)
			bs.Report.Errors = append(bs.Report.Errors, se)
			return se
		default:
		}

		t0 := time.Now()
		err := st.fn(ctx, bs)
		dur := time.Since(t0)
		bs.Report.StageDurations[st.name] = dur
		bs.Recorder.ObserveStageDuration(string(st.name), dur)
		slog.Debug("Stage finished",
			logfields.Stage(string(st.name)),
			logfields.DurationMS(float64(dur.Milliseconds())),
			slog.Bool("ok", err == nil))

		if err == nil {
			bs.Report.recordStageResult(st.name, metrics.ResultSuccess, bs.Recorder)
			continue
		}

		var se *StageError
		if !errors.As(err, &se) {
			se = newFatalStageError(st.name, err)
		}
		switch se.Kind {
		case StageErrorWarning:
			bs.Report.recordStageResult(st.name, metrics.ResultWarning, bs.Recorder)
			bs.Report.Warnings = append(bs.Report.Warnings, se)
			slog.Warn("Stage completed with warnings",
				logfields.Stage(string(st.name)), logfields.Error(se.Err))
		case StageErrorCanceled:
			bs.Report.recordStageResult(st.name, metrics.ResultCanceled, bs.Recorder)
			bs.Report.Errors = append(bs.Report.Errors, se)
			return se
		default:
			bs.Report.recordStageResult(st.name, metrics.ResultFatal, bs.Recorder)
			bs.Report.Errors = append(bs.Report.Errors, se)
			return se
		}
	}
	return nil
}
