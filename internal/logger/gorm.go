package logger

import (
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// gormWriter forwards gorm's formatted log lines to zerolog.
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...any) {
	Get().Info().Str("component", "gorm").Msgf(format, args...)
}

// NewGormLogger returns a gorm logger backed by the global zerolog logger.
// With logSQL every statement is logged, otherwise only warnings and slow queries.
func NewGormLogger(logSQL bool) gormlogger.Interface {
	level := gormlogger.Warn
	if logSQL {
		level = gormlogger.Info
	}
	return gormlogger.New(gormWriter{}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
