// Package server provides the preview HTTP server with
// rebuild-on-change.
package server

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Happy-Ferret/fledermaus/internal/build"
	"github.com/Happy-Ferret/fledermaus/internal/config"
	"github.com/Happy-Ferret/fledermaus/internal/logfields"
	"github.com/Happy-Ferret/fledermaus/internal/metrics"
)

// Preview serves the generated site and rebuilds it whenever content,
// config, or layout files change.
type Preview struct {
	root     string
	project  *config.Project
	addr     string
	pipeline *build.Pipeline
	registry *prometheus.Registry
}

// New creates a preview server for the project rooted at root. Build
// metrics are collected on a private registry exposed at /-/metrics.
func New(root string, project *config.Project, addr string) *Preview {
	registry := prometheus.NewRegistry()
	return &Preview{
		root:     root,
		project:  project,
		addr:     addr,
		pipeline: build.New(root, project, build.WithRecorder(metrics.NewPrometheusRecorder(registry))),
		registry: registry,
	}
}

// Serve builds the site once, then serves the output directory until
// the context is canceled, rebuilding on filesystem changes. Rebuild
// failures are logged, not fatal; the last good output keeps serving.
func (p *Preview) Serve(ctx context.Context) error {
	if _, err := p.pipeline.Run(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			slog.Warn("Failed to close watcher", logfields.Error(err))
		}
	}()

	for _, dir := range []string{p.project.ContentDir, p.project.ConfigDir, p.project.LayoutsDir} {
		if err := watchRecursive(watcher, filepath.Join(p.root, dir)); err != nil {
			return err
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/-/metrics", promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{}))
	mux.Handle("/", http.FileServer(http.Dir(filepath.Join(p.root, p.project.OutputDir))))

	srv := &http.Server{
		Addr:              p.addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening", logfields.URL("http://"+p.addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go p.watchLoop(ctx, watcher)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (p *Preview) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchRecursive(watcher, event.Name); err != nil {
						slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
					}
				}
			}

			slog.Info("Change detected, rebuilding", logfields.Path(event.Name))
			if _, err := p.pipeline.Run(ctx); err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func watchRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Watched trees may not exist yet (e.g. no config dir).
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
