package configs

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// SetupLogger configures the global zerolog logger.
func SetupLogger(level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().Timestamp().Caller().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()
}

// =======================
// GORM LOGGER
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Info().Msgf(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Warn().Msgf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Error().Msgf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && !errors.Is(err, gormLogger.ErrRecordNotFound):
		log.Error().Err(err).Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query failed")
	case elapsed > l.SlowThreshold:
		log.Warn().Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("slow sql")
	case l.LogLevel >= gormLogger.Info:
		log.Debug().Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query")
	}
}
