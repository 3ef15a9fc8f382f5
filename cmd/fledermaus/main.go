package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/Happy-Ferret/fledermaus/internal/build"
	"github.com/Happy-Ferret/fledermaus/internal/config"
	"github.com/Happy-Ferret/fledermaus/internal/document"
	"github.com/Happy-Ferret/fledermaus/internal/errors"
	"github.com/Happy-Ferret/fledermaus/internal/logfields"
	"github.com/Happy-Ferret/fledermaus/internal/render"
	"github.com/Happy-Ferret/fledermaus/internal/server"
	"github.com/Happy-Ferret/fledermaus/internal/source"
)

var CLI struct {
	Config  string `short:"c" help:"Project configuration file path" default:"fledermaus.yml"`
	Root    string `short:"r" help:"Project root directory" default:"."`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
	} `cmd:"" help:"Build the site into the output directory"`

	Discover struct {
	} `cmd:"" help:"List discovered source files without building"`

	Serve struct {
		Addr string `short:"a" help:"Listen address" default:"localhost:8080"`
	} `cmd:"" help:"Serve the site and rebuild on changes"`
}

func main() {
	// Best-effort; a missing .env is not an error.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	configPath := CLI.Config
	if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(CLI.Root, configPath)
	}

	project, err := config.LoadProject(configPath)
	if err != nil {
		slog.Error("Failed to load project configuration", logfields.Path(configPath), logfields.Error(err))
		os.Exit(errors.ExitCode(errors.Wrap(err, errors.CategoryConfig, "load project")))
	}

	switch ctx.Command() {
	case "build":
		if err := runBuild(project); err != nil {
			slog.Error("Build failed", logfields.Error(err))
			os.Exit(errors.ExitCode(err))
		}
	case "discover":
		if err := runDiscover(project); err != nil {
			slog.Error("Discover failed", logfields.Error(err))
			os.Exit(errors.ExitCode(err))
		}
	case "serve":
		if err := runServe(project, CLI.Serve.Addr); err != nil {
			slog.Error("Serve failed", logfields.Error(err))
			os.Exit(errors.ExitCode(err))
		}
	}
}

func runBuild(project *config.Project) error {
	pipeline := build.New(CLI.Root, project)

	report, err := pipeline.Run(context.Background())
	if err != nil {
		return err
	}

	slog.Info("Site built",
		logfields.BuildID(report.BuildID),
		slog.Int("documents", report.DocumentsParsed),
		slog.Int("listings", report.ListingsCreated),
		slog.Int("pages", report.PagesWritten))
	return nil
}

func runDiscover(project *config.Project) error {
	loader := source.NewLoader(
		filepath.Join(CLI.Root, project.ContentDir),
		project.Extensions,
		document.Options{Renderers: render.Default()},
	)

	paths, err := loader.Discover()
	if err != nil {
		return err
	}

	slog.Info("Discovery completed", logfields.Count(len(paths)))
	for _, path := range paths {
		slog.Info("Source discovered", logfields.SourcePath(path))
	}
	return nil
}

func runServe(project *config.Project, addr string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return server.New(CLI.Root, project, addr).Serve(ctx)
}
