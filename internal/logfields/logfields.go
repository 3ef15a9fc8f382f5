package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeySourcePath = "source_path"
	KeyURL        = "url"
	KeyLang       = "lang"
	KeyLayout     = "layout"
	KeyCollection = "collection"
	KeyStage      = "stage"
	KeyBuildID    = "build_id"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func SourcePath(p string) slog.Attr   { return slog.String(KeySourcePath, p) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Lang(l string) slog.Attr         { return slog.String(KeyLang, l) }
func Layout(l string) slog.Attr       { return slog.String(KeyLayout, l) }
func Collection(c string) slog.Attr   { return slog.String(KeyCollection, c) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
