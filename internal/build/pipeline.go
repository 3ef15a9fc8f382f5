// Package build orchestrates the document transformation pipeline:
// config loading, source loading, collection expansion, page
// generation, and page writing.
package build

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/Happy-Ferret/fledermaus/internal/config"
	"github.com/Happy-Ferret/fledermaus/internal/document"
	"github.com/Happy-Ferret/fledermaus/internal/fields"
	"github.com/Happy-Ferret/fledermaus/internal/logfields"
	"github.com/Happy-Ferret/fledermaus/internal/metrics"
	"github.com/Happy-Ferret/fledermaus/internal/site"
	"github.com/Happy-Ferret/fledermaus/internal/storage"
	"github.com/Happy-Ferret/fledermaus/internal/tplengine"
)

// State is the shared build state threaded through stages. The
// Documents collection is owned by the pipeline for the duration of a
// build; stages derive new collections from it and never mutate it.
type State struct {
	Root    string
	Project *config.Project

	Configs   config.Set
	Documents []*document.Document

	// Listings are the synthetic documents produced by collection
	// expansion (taxonomy and archive pages).
	Listings []*document.Document

	Generator *site.Generator
	Store     storage.PageStore
	Recorder  metrics.Recorder
	Helpers   map[string]any

	Report *Report

	pages []*site.Page
}

// Pipeline runs a full site build.
type Pipeline struct {
	root     string
	project  *config.Project
	recorder metrics.Recorder
	helpers  map[string]any
	store    storage.PageStore
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithHelpers sets the helper mapping merged into every render context.
func WithHelpers(helpers map[string]any) Option {
	return func(p *Pipeline) { p.helpers = helpers }
}

// WithStore overrides the page store (the default writes to the
// project's output directory).
func WithStore(s storage.PageStore) Option {
	return func(p *Pipeline) { p.store = s }
}

// New creates a Pipeline for the project rooted at root.
func New(root string, project *config.Project, opts ...Option) *Pipeline {
	p := &Pipeline{
		root:     root,
		project:  project,
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.store == nil {
		p.store = storage.NewFSStore(filepath.Join(root, project.OutputDir))
	}
	return p
}

// DefaultFieldParsers returns the field parser registry the pipeline
// registers for every document.
func DefaultFieldParsers() fields.Registry {
	return fields.Registry{
		"date": fields.Date,
		"tags": fields.Tags,
	}
}

// Run executes the build and returns its report. Any stage error
// aborts the build; partial output may exist but the error is
// authoritative.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	engine, err := tplengine.New(filepath.Join(p.root, p.project.LayoutsDir), p.project.TemplateExt)
	if err != nil {
		return nil, err
	}

	st := &State{
		Root:    p.root,
		Project: p.project,
		Generator: site.NewGenerator(
			site.Registry{p.project.TemplateExt: engine},
			p.project.TemplateExt,
			p.helpers,
		),
		Store:    p.store,
		Recorder: p.recorder,
		Helpers:  p.helpers,
		Report:   NewReport(),
	}

	slog.Info("Build starting", logfields.BuildID(st.Report.BuildID), logfields.Path(p.root))

	err = RunStages(ctx, st, []StageDef{
		{Name: "load-config", Fn: stageLoadConfig},
		{Name: "load-sources", Fn: stageLoadSources},
		{Name: "assemble-collections", Fn: stageAssembleCollections},
		{Name: "generate-pages", Fn: stageGeneratePages},
		{Name: "write-pages", Fn: stageWritePages},
	})

	st.Report.End = time.Now()
	p.recorder.BuildCompleted(err == nil, st.Report.Duration())

	if err != nil {
		slog.Error("Build failed", logfields.BuildID(st.Report.BuildID), logfields.Error(err))
		return st.Report, err
	}

	slog.Info("Build finished",
		logfields.BuildID(st.Report.BuildID),
		logfields.Count(st.Report.PagesWritten),
		logfields.DurationMS(float64(st.Report.Duration().Milliseconds())))
	return st.Report, nil
}
