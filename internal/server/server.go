// Package server runs the local preview server: a static file server over
// the build output, a filesystem watcher that rebuilds on source changes,
// an optional periodic rebuild schedule, and a Prometheus metrics endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-co-op/gocron/v2"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/gigglehq/giggle/internal/build"
	"github.com/gigglehq/giggle/internal/config"
	"github.com/gigglehq/giggle/internal/logfields"
	"github.com/gigglehq/giggle/internal/metrics"
)

// debounce window for filesystem events; editors fire several per save.
const debounceDelay = 300 * time.Millisecond

// Options configure the preview server.
type Options struct {
	Build        build.Options
	Addr         string        // listen address, e.g. ":8080"
	RebuildEvery time.Duration // 0 disables the periodic rebuild
	Registry     *prom.Registry
}

// Server serves the built site and rebuilds it on change.
type Server struct {
	opts     Options
	recorder metrics.Recorder
	rebuild  chan struct{}
}

// New constructs a Server. When a metrics registry is given, builds record
// Prometheus metrics and /metrics serves them.
func New(opts Options) *Server {
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if opts.Registry != nil {
		recorder = metrics.NewPrometheusRecorder(opts.Registry)
	}
	opts.Build.Recorder = recorder
	return &Server{
		opts:     opts,
		recorder: recorder,
		rebuild:  make(chan struct{}, 1),
	}
}

// Run builds the site once, then serves it until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	if _, err := build.Run(ctx, s.opts.Build); err != nil {
		return err
	}

	watcher, err := s.startWatcher(ctx)
	if err != nil {
		return err
	}
	defer watcher.Close()

	scheduler, err := s.startScheduler()
	if err != nil {
		return err
	}
	if scheduler != nil {
		defer func() { _ = scheduler.Shutdown() }()
	}

	go s.rebuildLoop(ctx)

	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Serving site",
			slog.String("addr", s.opts.Addr),
			logfields.Output(s.opts.Build.OutputDir))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	if s.opts.Registry != nil {
		r.Handle("/metrics", metrics.HTTPHandler(s.opts.Registry))
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/*", http.FileServer(http.Dir(s.opts.Build.OutputDir)))
	return r
}

// startWatcher watches the config files, content sources, asset entries,
// and template overrides, queueing a rebuild on any change.
func (s *Server) startWatcher(ctx context.Context) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	for _, dir := range s.watchDirs() {
		if err := watcher.Add(dir); err != nil {
			slog.Warn("Could not watch directory", logfields.Path(dir), logfields.Error(err))
		}
	}

	go func() {
		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				slog.Debug("Source changed", logfields.Path(event.Name))
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounceDelay, func() {
					select {
					case s.rebuild <- struct{}{}:
					default:
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("Watcher error", logfields.Error(err))
			}
		}
	}()
	return watcher, nil
}

// watchDirs derives the set of directories to watch from the site config.
// Best effort: an unreadable config just means fewer watches.
func (s *Server) watchDirs() []string {
	seen := map[string]bool{}
	add := func(p string) {
		if p == "" {
			return
		}
		info, err := os.Stat(p)
		if err != nil {
			return
		}
		if !info.IsDir() {
			p = filepath.Dir(p)
		}
		if !seen[p] {
			seen[p] = true
		}
	}

	add(s.opts.Build.SiteConfig)
	add(s.opts.Build.StyleConfig)
	add(s.opts.Build.TemplatesDir)

	cfg, _, err := config.Load(s.opts.Build.SiteConfig)
	if err == nil {
		for _, src := range cfg.Pages {
			add(src)
		}
		for _, entry := range cfg.Mover {
			add(entry)
		}
		if s.opts.Build.TemplatesDir == "" {
			add(cfg.Templates)
		}
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	return dirs
}

// startScheduler sets up the optional periodic rebuild.
func (s *Server) startScheduler() (gocron.Scheduler, error) {
	if s.opts.RebuildEvery <= 0 {
		return nil, nil
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(s.opts.RebuildEvery),
		gocron.NewTask(func() {
			select {
			case s.rebuild <- struct{}{}:
			default:
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule periodic rebuild: %w", err)
	}
	scheduler.Start()
	slog.Info("Periodic rebuild enabled", slog.Duration("every", s.opts.RebuildEvery))
	return scheduler, nil
}

func (s *Server) rebuildLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.rebuild:
			s.recorder.IncWatchRebuild()
			report, err := build.Run(ctx, s.opts.Build)
			if err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
				continue
			}
			slog.Info("Rebuilt site",
				slog.String("outcome", report.Outcome),
				slog.Int("pages", report.Pages),
				logfields.DurationMS(float64(report.Duration.Milliseconds())))
		}
	}
}
