package logger

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/xy-planning-network/burrow"
)

// flushTimeout bounds how long Fatal waits for Sentry to receive its report.
const flushTimeout = 2 * time.Second

// A SentryLogger logs through a ColorLogger
// and reports the errors of warnings and worse to Sentry.
//
// Errors classifying as a *burrow.Fault with a status below 500,
// like burrow.ErrNotFound and burrow.ErrNotValid, are not reported.
type SentryLogger struct {
	l   SkipLogger
	hub *sentry.Hub
}

// NewSentryLogger reports to the Sentry project at dsn, tagging events with the environment of cl.
// If a Sentry client cannot be built for dsn, NewSentryLogger logs why and returns cl.
func NewSentryLogger(cl *ColorLogger, dsn string) Logger {
	return newSentryLogger(cl, sentry.ClientOptions{Dsn: dsn})
}

func newSentryLogger(cl *ColorLogger, opts sentry.ClientOptions) Logger {
	opts.Environment = cl.env
	opts.IgnoreErrors = append(opts.IgnoreErrors, "write: broken pipe")

	client, err := sentry.NewClient(opts)
	if err != nil {
		cl.Error(fmt.Sprintf("cannot report to Sentry: %s", err), nil)
		return cl
	}

	return &SentryLogger{
		l:   cl.AddSkip(1 + cl.Skip()),
		hub: sentry.NewHub(client, sentry.NewScope()),
	}
}

func (sl *SentryLogger) AddSkip(i int) SkipLogger {
	return &SentryLogger{l: sl.l.AddSkip(i), hub: sl.hub}
}

func (sl *SentryLogger) Debug(msg string, ctx *LogContext) { sl.l.Debug(msg, ctx) }

func (sl *SentryLogger) Info(msg string, ctx *LogContext) { sl.l.Info(msg, ctx) }

func (sl *SentryLogger) Warn(msg string, ctx *LogContext) {
	if sl.l.LogLevel() > LogLevelWarn {
		return
	}

	sl.l.Warn(msg, ctx)
	sl.report(sentry.LevelWarning, ctx)
}

func (sl *SentryLogger) Error(msg string, ctx *LogContext) {
	if sl.l.LogLevel() > LogLevelError {
		return
	}

	sl.l.Error(msg, ctx)
	sl.report(sentry.LevelError, ctx)
}

// Fatal reports to Sentry before logging, since logging exits.
func (sl *SentryLogger) Fatal(msg string, ctx *LogContext) {
	if sl.l.LogLevel() > LogLevelFatal {
		return
	}

	sl.report(sentry.LevelFatal, ctx)
	sl.hub.Flush(flushTimeout)
	sl.l.Fatal(msg, ctx)
}

func (sl *SentryLogger) LogLevel() LogLevel { return sl.l.LogLevel() }

func (sl *SentryLogger) Skip() int { return sl.l.Skip() }

// report captures the error in ctx, scoped with the request and fault it came from.
func (sl *SentryLogger) report(level sentry.Level, ctx *LogContext) {
	if !reportable(ctx) {
		return
	}

	sl.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(level)

		if ctx.Request != nil {
			scope.SetRequest(ctx.Request)
			if id, ok := requestFields(ctx.Request)["id"].(string); ok {
				scope.SetTag("request_id", id)
			}
		}

		if ctx.Data != nil {
			scope.SetContext("data", sentry.Context(ctx.Data))
		}

		f := burrow.AsFault(ctx.Error)
		scope.SetTag("fault_kind", f.Kind.String())
		scope.SetTag("fault_code", strconv.Itoa(f.Code))

		sl.hub.CaptureException(ctx.Error)
	})
}

func reportable(ctx *LogContext) bool {
	if ctx == nil || ctx.Error == nil {
		return false
	}

	return burrow.AsFault(ctx.Error).Status() >= http.StatusInternalServerError
}
