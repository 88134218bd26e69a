package app

import (
	"io"
	"log/slog"
	"strings"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/config"
)

// NewLogger builds the process logger and installs it as slog's default.
// Format "json" is meant for production; anything else gives text output
// with source locations.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	jsonOut := strings.EqualFold(strings.TrimSpace(cfg.Format), "json")
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: !jsonOut,
	}

	var h slog.Handler = slog.NewTextHandler(w, opts)
	if jsonOut {
		h = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}
