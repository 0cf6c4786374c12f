package build

import (
	"html/template"

	"github.com/gigglehq/giggle/internal/config"
	"github.com/gigglehq/giggle/internal/content"
	"github.com/gigglehq/giggle/internal/metrics"
	"github.com/gigglehq/giggle/internal/render"
	"github.com/gigglehq/giggle/internal/site"
)

// Options configure one build run.
type Options struct {
	SiteConfig    string // path to the site YAML, required
	StyleConfig   string // path to the style YAML, may be empty
	OutputDir     string // final output directory
	TemplatesDir  string // template override directory, may be empty
	Minify        bool
	IncludeDrafts bool
	Recorder      metrics.Recorder // nil means no metrics
}

// BuildState carries mutable state across the pipeline stages.
type BuildState struct {
	Opts     Options
	Recorder metrics.Recorder
	Report   *BuildReport

	Config   *config.Config
	Style    config.Tree // resolved style tree, defaults merged underneath
	Engine   *render.Engine
	Items    []content.Item
	Bodies   map[string]template.HTML // item link -> rendered Markdown
	Records  []site.PageRecord
	Rendered map[string]string // output-relative path -> full HTML

	stageDir string // staging sibling of OutputDir, set by prepare_output
}

func newBuildState(opts Options) *BuildState {
	rec := opts.Recorder
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &BuildState{
		Opts:     opts,
		Recorder: rec,
		Report:   newBuildReport(),
		Bodies:   map[string]template.HTML{},
		Rendered: map[string]string{},
	}
}
