package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyStage      = "stage"
	KeyPage       = "page"
	KeyPath       = "path"
	KeyTemplate   = "template"
	KeyTag        = "tag"
	KeyKey        = "key"
	KeyOutput     = "output"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func Page(name string) slog.Attr       { return slog.String(KeyPage, name) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Template(name string) slog.Attr   { return slog.String(KeyTemplate, name) }
func Tag(t string) slog.Attr           { return slog.String(KeyTag, t) }
func Key(k string) slog.Attr           { return slog.String(KeyKey, k) }
func Output(dir string) slog.Attr      { return slog.String(KeyOutput, dir) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
