package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// newLogger builds the process logger. "text" is the plain slog text
// handler; "pretty" renders through charmbracelet/log for terminals.
func newLogger(level, format string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: lvl,
		})), nil
	case "pretty":
		h := charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(lvl),
			ReportTimestamp: true,
			Prefix:          "moneysim",
		})
		return slog.New(h), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
