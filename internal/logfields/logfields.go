package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyLanguage   = "language"
	KeyTemplate   = "template"
	KeySection    = "section"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyName       = "name"
	KeyTitle      = "title"
	KeyMode       = "mode"
	KeyCount      = "count"
	KeyEvent      = "event"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Language(l string) slog.Attr     { return slog.String(KeyLanguage, l) }
func Template(p string) slog.Attr     { return slog.String(KeyTemplate, p) }
func Section(s string) slog.Attr      { return slog.String(KeySection, s) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Name(n string) slog.Attr         { return slog.String(KeyName, n) }
func Title(t string) slog.Attr        { return slog.String(KeyTitle, t) }
func Mode(m string) slog.Attr         { return slog.String(KeyMode, m) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Event(e string) slog.Attr        { return slog.String(KeyEvent, e) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
