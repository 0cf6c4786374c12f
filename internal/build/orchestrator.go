// Package build runs the site build pipeline: load and resolve the
// configuration, scan content, build page models, render, and promote the
// staged output atomically. Stages run strictly in order; the first fatal
// error aborts the build and leaves the previous output untouched.
package build

import (
	"context"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gigglehq/giggle/internal/assets"
	"github.com/gigglehq/giggle/internal/config"
	"github.com/gigglehq/giggle/internal/content"
	buildererr "github.com/gigglehq/giggle/internal/errors"
	"github.com/gigglehq/giggle/internal/linkverify"
	"github.com/gigglehq/giggle/internal/logfields"
	"github.com/gigglehq/giggle/internal/markdown"
	"github.com/gigglehq/giggle/internal/render"
	"github.com/gigglehq/giggle/internal/resolver"
	"github.com/gigglehq/giggle/internal/site"
)

var pipeline = []namedStage{
	{StagePrepareOutput, stagePrepareOutput},
	{StageScanContent, stageScanContent},
	{StageBuildModels, stageBuildModels},
	{StageRenderPages, stageRenderPages},
	{StageWriteOutput, stageWriteOutput},
	{StageCopyAssets, stageCopyAssets},
	{StageGenerateCSS, stageGenerateCSS},
	{StageVerifyLinks, stageVerifyLinks},
	{StagePostProcess, stagePostProcess},
}

// Run executes one full build. The returned report is always non-nil, even
// on failure.
func Run(ctx context.Context, opts Options) (*BuildReport, error) {
	bs := newBuildState(opts)

	if err := bs.prepare(); err != nil {
		bs.Report.Errors = append(bs.Report.Errors, err)
		bs.Report.finish()
		bs.Recorder.IncBuildOutcome(bs.Report.Outcome)
		return bs.Report, err
	}

	err := runStages(ctx, bs, pipeline)
	if err == nil {
		err = bs.finalizeStaging()
		if err != nil {
			bs.Report.Errors = append(bs.Report.Errors, err)
		}
	} else {
		bs.abortStaging()
	}

	bs.Report.finish()
	bs.Recorder.ObserveBuildDuration(bs.Report.Duration)
	bs.Recorder.IncBuildOutcome(bs.Report.Outcome)
	bs.Recorder.SetPagesRendered(bs.Report.Pages)
	return bs.Report, err
}

// prepare loads both configs, resolves {a.b.c} references across the merged
// tree, and parses the templates. Style values override site values of the
// same path; built-in style defaults sit underneath both.
func (bs *BuildState) prepare() error {
	cfg, siteTree, err := config.Load(bs.Opts.SiteConfig)
	if err != nil {
		return err
	}
	styleTree, err := config.LoadStyle(bs.Opts.StyleConfig)
	if err != nil {
		return err
	}

	merged := config.Merge(config.Merge(config.DefaultStyle(), siteTree), styleTree)
	resolved, err := resolver.New(merged).ResolveTree()
	if err != nil {
		return err
	}

	cfg, err = config.FromTree(resolved)
	if err != nil {
		return err
	}
	bs.Config = cfg
	bs.Style = resolved

	overrides := bs.Opts.TemplatesDir
	if overrides == "" {
		overrides = cfg.Templates
	}
	engine, err := render.NewEngine(overrides)
	if err != nil {
		return err
	}
	bs.Engine = engine
	return nil
}

func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	return bs.beginStaging()
}

func stageScanContent(_ context.Context, bs *BuildState) error {
	items, err := content.Scan(bs.Config.Pages)
	if err != nil {
		return err
	}
	bs.Items = items
	slog.Info("Scanned content", slog.Int("items", len(items)))
	return nil
}

func stageBuildModels(_ context.Context, bs *BuildState) error {
	for _, it := range bs.Items {
		html, err := markdown.Render(it.Body)
		if err != nil {
			return buildererr.Wrap(err, buildererr.CategoryRender, "failed to render Markdown").
				WithContext("path", it.SourcePath)
		}
		bs.Bodies[it.Link()] = template.HTML(html)
	}

	records, err := site.NewBuilder(bs.Config, bs.Opts.IncludeDrafts).Build(bs.Items, bs.Bodies)
	if err != nil {
		return err
	}
	bs.Records = records
	return nil
}

func stageRenderPages(ctx context.Context, bs *BuildState) error {
	for _, rec := range bs.Records {
		select {
		case <-ctx.Done():
			return newCanceledStageError(StageRenderPages, ctx.Err())
		default:
		}
		html, err := bs.Engine.RenderPage(rec.Template, rec.Data)
		if err != nil {
			return buildererr.Wrap(err, buildererr.CategoryRender, "failed to render page").
				WithContext("page", rec.Path).WithContext("template", rec.Template)
		}
		if bs.Opts.Minify {
			html = minifyHTML(html)
		}
		bs.Rendered[rec.Path] = html
	}
	bs.Report.Pages = len(bs.Records)
	return nil
}

func stageWriteOutput(_ context.Context, bs *BuildState) error {
	for _, rec := range bs.Records {
		dest := filepath.Join(bs.stageDir, filepath.FromSlash(rec.Path))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return buildererr.OutputWrite(dest, err)
		}
		if err := os.WriteFile(dest, []byte(bs.Rendered[rec.Path]), 0o644); err != nil {
			return buildererr.OutputWrite(dest, err)
		}
	}
	return nil
}

func stageCopyAssets(_ context.Context, bs *BuildState) error {
	n, err := assets.Copy(bs.Config.Mover, bs.stageDir)
	bs.Report.Assets = n
	return err
}

func stageGenerateCSS(_ context.Context, bs *BuildState) error {
	css, err := bs.Engine.RenderCSS(bs.Style)
	if err != nil {
		return err
	}
	dest := filepath.Join(bs.stageDir, "style.css")
	if err := os.WriteFile(dest, []byte(css), 0o644); err != nil {
		return buildererr.OutputWrite(dest, err)
	}
	return nil
}

func stageVerifyLinks(_ context.Context, bs *BuildState) error {
	broken, err := linkverify.VerifyTree(bs.stageDir)
	if err != nil {
		return err
	}
	if len(broken) == 0 {
		return nil
	}
	for _, b := range broken {
		slog.Warn("Broken internal link",
			logfields.Page(b.Page),
			slog.String("url", b.URL),
			slog.String("target", b.Target))
	}
	return newWarnStageError(StageVerifyLinks,
		buildererr.Newf(buildererr.CategoryOutput, "%d broken internal links", len(broken)))
}

func stagePostProcess(_ context.Context, bs *BuildState) error {
	slog.Info("Build assembled",
		slog.String("build_id", bs.Report.BuildID),
		slog.Int("pages", bs.Report.Pages),
		slog.Int("assets", bs.Report.Assets),
		slog.Int("warnings", len(bs.Report.Warnings)))
	return nil
}
