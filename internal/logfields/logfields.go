// Package logfields holds the canonical structured log keys.
package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyCompiler   = "compiler"
	KeyTask       = "task"
	KeyTaskIndex  = "task_index"
	KeyScope      = "scope"
	KeyFeeder     = "feeder"
	KeyCode       = "code"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyError      = "error"
)

func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Compiler(name string) slog.Attr  { return slog.String(KeyCompiler, name) }
func Task(name string) slog.Attr      { return slog.String(KeyTask, name) }
func TaskIndex(i int) slog.Attr       { return slog.Int(KeyTaskIndex, i) }
func Scope(s string) slog.Attr        { return slog.String(KeyScope, s) }
func Feeder(i int) slog.Attr          { return slog.Int(KeyFeeder, i) }
func Code(name string) slog.Attr      { return slog.String(KeyCode, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
