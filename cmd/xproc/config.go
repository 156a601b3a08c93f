package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

// Settings are the process-wide defaults, taken from the environment
// with an optional .env file loaded first.
type Settings struct {
	LogLevel string `env:"XPROC_LOG_LEVEL" envDefault:"info"`
	Context  string `env:"XPROC_CONTEXT"`
}

func loadSettings() (Settings, error) {
	godotenv.Load()

	var s Settings
	if err := env.Parse(&s); err != nil {
		return s, err
	}
	return s, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := tint.NewHandler(w, &tint.Options{
		Level: lvl,
	})
	return slog.New(handler)
}
