// Package logging provides the structured logger used across mftfind: a
// slog.Logger backed by either a text handler, colorized when its output is
// a terminal, or a JSON handler, chosen by the configured format, matching
// the error-to-level bindings the error taxonomy calls for.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Config selects the logger's level, output format and destination.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // text, json
	Output io.Writer
}

var (
	mu     sync.RWMutex
	logger = slog.New(NewColorTextHandler(os.Stderr, nil, isTerminal(os.Stderr.Fd())))
)

// Init rebuilds the package logger from cfg. Unset fields keep their
// defaults: level info, format text, destination stderr so stdout stays
// reserved for matched paths.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	lv := new(slog.LevelVar)
	lv.Set(parseLevel(cfg.Level))
	opts := &slog.HandlerOptions{Level: lv}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		color := false
		if f, ok := out.(*os.File); ok {
			color = isTerminal(f.Fd())
		}
		handler = NewColorTextHandler(out, opts, color)
	}

	logger = slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs startup/config diagnostics.
func Debug(msg string, args ...any) { get().Debug(msg, args...) }

// Info logs normal lifecycle events (volume discovered, scan started).
func Info(msg string, args ...any) { get().Info(msg, args...) }

// Warn logs per-record and per-volume failures that the run survives,
// per the error taxonomy's VolumeOpenFailed/EnumerationFailed/
// PathResolutionCycle/PathResolutionTooDeep/NameTooLong bindings.
func Warn(msg string, args ...any) { get().Warn(msg, args...) }

// Error logs fatal/startup failures that abort the run (NotAdministrator,
// NoEligibleVolume, InvalidArguments).
func Error(msg string, args ...any) { get().Error(msg, args...) }
