package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xy-planning-network/burrow"
	"github.com/xy-planning-network/burrow/logger"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowThreshold = 200 * time.Millisecond

// A GormLogger writes what gorm logs to a logger.Logger.
//
// GormLogger implements gorm.io/gorm/logger.Interface.
type GormLogger struct {
	l     logger.Logger
	level gormlogger.LogLevel
}

// NewGormLogger constructs a *GormLogger.
// Every statement is traced in the development environment,
// otherwise only slow statements and errors are.
func NewGormLogger(l logger.Logger, env burrow.Environment) *GormLogger {
	if l == nil {
		l = logger.New()
	}

	if sl, ok := l.(logger.SkipLogger); ok {
		l = sl.AddSkip(sl.Skip() + 3)
	}

	level := gormlogger.Warn
	if env.IsDevelopment() {
		level = gormlogger.Info
	}

	return &GormLogger{l: l, level: level}
}

// LogMode returns a copy of the *GormLogger logging at level.
func (gl *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newgl := *gl
	newgl.level = level
	return &newgl
}

func (gl *GormLogger) Info(_ context.Context, msg string, data ...any) {
	if gl.level >= gormlogger.Info {
		gl.l.Info(fmt.Sprintf(msg, data...), nil)
	}
}

func (gl *GormLogger) Warn(_ context.Context, msg string, data ...any) {
	if gl.level >= gormlogger.Warn {
		gl.l.Warn(fmt.Sprintf(msg, data...), nil)
	}
}

func (gl *GormLogger) Error(_ context.Context, msg string, data ...any) {
	if gl.level >= gormlogger.Error {
		gl.l.Error(fmt.Sprintf(msg, data...), nil)
	}
}

// Trace logs the statement fc renders.
func (gl *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if gl.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && gl.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		gl.l.Error("statement failed", &logger.LogContext{
			Data:  map[string]any{"sql": sql, "rows": rows, "elapsed": elapsed.String()},
			Error: err,
		})

	case elapsed > slowThreshold && gl.level >= gormlogger.Warn:
		sql, rows := fc()
		gl.l.Warn("slow statement", &logger.LogContext{
			Data: map[string]any{"sql": sql, "rows": rows, "elapsed": elapsed.String()},
		})

	case gl.level >= gormlogger.Info:
		sql, rows := fc()
		gl.l.Debug(sql, &logger.LogContext{
			Data: map[string]any{"rows": rows, "elapsed": elapsed.String()},
		})
	}
}
