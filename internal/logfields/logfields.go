package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyPath       = "path"
	KeyDest       = "dest"
	KeyDirectory  = "directory"
	KeyExtension  = "extension"
	KeyWriter     = "writer"
	KeyCommand    = "command"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Dest(d string) slog.Attr         { return slog.String(KeyDest, d) }
func Directory(d string) slog.Attr    { return slog.String(KeyDirectory, d) }
func Extension(ext string) slog.Attr  { return slog.String(KeyExtension, ext) }
func Writer(name string) slog.Attr    { return slog.String(KeyWriter, name) }
func Command(cmd string) slog.Attr    { return slog.String(KeyCommand, cmd) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
