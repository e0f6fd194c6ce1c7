// Package logging builds the process logger from LoggingConfig.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"vidtube/internal/config"
)

const permission = 0664

// Init configures the global zerolog logger. The returned closer releases the
// log file when OutputPath names one; it is a no-op otherwise.
func Init(cfg config.LoggingConfig) (zerolog.Logger, func() error, error) {
	writer, closer, err := openWriter(cfg.OutputPath)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	logger := New(writer, cfg)
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))
	log.Logger = logger
	return logger, closer, nil
}

// New builds a logger writing to w in the configured format.
func New(w io.Writer, cfg config.LoggingConfig) zerolog.Logger {
	if strings.EqualFold(cfg.Format, "text") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
}

func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func openWriter(path string) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(strings.TrimSpace(path)) {
	case "", "stdout":
		return os.Stdout, noop, nil
	case "stderr":
		return os.Stderr, noop, nil
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
	if err != nil {
		return nil, nil, err
	}
	return zerolog.SyncWriter(file), file.Close, nil
}
