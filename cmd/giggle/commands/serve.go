package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/gigglehq/giggle/internal/build"
	"github.com/gigglehq/giggle/internal/server"
)

// ServeCmd builds the site and serves it locally, rebuilding whenever the
// configuration, content, or templates change.
type ServeCmd struct {
	Addr         string        `short:"a" help:"Listen address" default:":8080"`
	BuildDir     string        `short:"b" name:"build-dir" help:"Output directory for the generated site" default:"./build"`
	Templates    string        `short:"t" help:"Template override directory" default:""`
	Drafts       bool          `help:"Include content marked draft: true"`
	RebuildEvery time.Duration `name:"rebuild-every" help:"Also rebuild on a fixed interval (0 disables)" default:"0"`
	Metrics      bool          `help:"Expose Prometheus metrics on /metrics"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := server.Options{
		Build: build.Options{
			SiteConfig:    root.SiteConfig,
			StyleConfig:   styleConfigPath(root.StyleConfig),
			OutputDir:     s.BuildDir,
			TemplatesDir:  s.Templates,
			IncludeDrafts: s.Drafts,
		},
		Addr:         s.Addr,
		RebuildEvery: s.RebuildEvery,
	}
	if s.Metrics {
		opts.Registry = prom.NewRegistry()
	}

	return server.New(opts).Run(ctx)
}
