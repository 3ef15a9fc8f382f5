// Package config loads the site configuration: a base config plus
// optional per-language overlays, and the tool's own project file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/Happy-Ferret/fledermaus/internal/logfields"
	"github.com/Happy-Ferret/fledermaus/internal/merge"
)

// BaseKey is the reserved config file stem holding the shared base
// config.
const BaseKey = "base"

// Config is the option mapping handed to templates under the "config"
// context key.
type Config = map[string]any

// Set maps a language code (or BaseKey when no overlays exist) to its
// resolved config.
type Set map[string]Config

// LoadError reports a config file that failed to parse, annotated with
// its path.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load config %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load discovers *.yml files directly under folder and resolves them
// into a Set.
//
// base.yml populates the base config; any other X.yml is a language
// overlay. Without overlays the Set holds only {base}. With overlays,
// the base is deep-merged into each overlay (overlay wins) and is not
// separately exposed.
func Load(folder string) (Set, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(folder, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("glob configs in %s: %w", folder, err)
	}

	base := Config{}
	overlays := Set{}
	for _, path := range matches {
		cfg, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}

		stem := stemOf(path)
		if stem == BaseKey {
			base = cfg
			continue
		}

		if _, err := language.Parse(stem); err != nil {
			slog.Warn("Config overlay name is not a valid language tag", logfields.Lang(stem), logfields.Path(path))
		}
		overlays[stem] = cfg
	}

	if len(overlays) == 0 {
		return Set{BaseKey: base}, nil
	}

	resolved := make(Set, len(overlays))
	for lang, overlay := range overlays {
		resolved[lang] = merge.Layered(base, overlay)
	}
	return resolved, nil
}

func readConfigFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if cfg == nil {
		cfg = Config{}
	}
	return cfg, nil
}

func stemOf(path string) string {
	name := filepath.Base(path)
	return name[:len(name)-len(filepath.Ext(name))]
}
