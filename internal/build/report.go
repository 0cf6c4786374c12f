package build

import (
	"time"

	"github.com/google/uuid"

	"github.com/gigglehq/giggle/internal/metrics"
)

// StageCount tallies results per stage.
type StageCount struct {
	Success  int
	Warning  int
	Fatal    int
	Canceled int
}

// BuildReport summarizes one build run.
type BuildReport struct {
	BuildID        string
	StartedAt      time.Time
	Duration       time.Duration
	StageDurations map[StageName]time.Duration
	StageCounts    map[StageName]StageCount
	Warnings       []error
	Errors         []error
	Pages          int
	Assets         int
	Outcome        string // success|warning|failed|canceled
}

func newBuildReport() *BuildReport {
	return &BuildReport{
		BuildID:        uuid.NewString(),
		StartedAt:      time.Now(),
		StageDurations: map[StageName]time.Duration{},
		StageCounts:    map[StageName]StageCount{},
	}
}

func (r *BuildReport) recordStageResult(stage StageName, res metrics.ResultLabel, rec metrics.Recorder) {
	sc := r.StageCounts[stage]
	switch res {
	case metrics.ResultSuccess:
		sc.Success++
	case metrics.ResultWarning:
		sc.Warning++
	case metrics.ResultFatal:
		sc.Fatal++
	case metrics.ResultCanceled:
		sc.Canceled++
	}
	r.StageCounts[stage] = sc
	rec.IncStageResult(string(stage), res)
}

// finish stamps duration and the overall outcome.
func (r *BuildReport) finish() {
	r.Duration = time.Since(r.StartedAt)
	switch {
	case len(r.Errors) > 0:
		r.Outcome = "failed"
		for _, err := range r.Errors {
			if se, ok := err.(*StageError); ok && se.Kind == StageErrorCanceled {
				r.Outcome = "canceled"
			}
		}
	case len(r.Warnings) > 0:
		r.Outcome = "warning"
	default:
		r.Outcome = "success"
	}
}
