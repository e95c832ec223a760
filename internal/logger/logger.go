// Package logger holds the process-wide zerolog logger.
//
//	logger.Init(cfg.Log)
//	log := logger.Get()
//	log.Info().Str("addr", addr).Msg("server started")
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrlokans/libreria/internal/config"
)

var (
	mu     sync.RWMutex
	global = newLogger(os.Stderr, config.Log{Level: "info", Format: "console"})
)

// Init replaces the global logger using the given configuration.
func Init(cfg config.Log) {
	SetOutput(os.Stderr, cfg)
}

// SetOutput replaces the global logger, writing to w.
func SetOutput(w io.Writer, cfg config.Log) {
	l := newLogger(w, cfg)
	mu.Lock()
	global = l
	mu.Unlock()
}

// Get returns the global logger.
func Get() *zerolog.Logger {
	mu.RLock()
	l := global
	mu.RUnlock()
	return &l
}

func newLogger(w io.Writer, cfg config.Log) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
