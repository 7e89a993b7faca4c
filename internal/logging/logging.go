// Package logging builds the process logger.
package logging

import (
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
)

// New returns a logger writing to w. The "json" format uses the standard
// JSON handler; "text" and "logfmt" go through charmbracelet/log, which
// colours levels when w is a terminal.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}

	formatter := charmlog.TextFormatter
	if format == "logfmt" {
		formatter = charmlog.LogfmtFormatter
	}
	h := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(level),
		Formatter:       formatter,
		ReportTimestamp: level <= slog.LevelDebug,
		Prefix:          "cutit",
	})
	return slog.New(h)
}
