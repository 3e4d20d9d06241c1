package logger_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/burrow"
	"github.com/xy-planning-network/burrow/logger"
)

var (
	logLevelRegexp = regexp.MustCompile(`\[[A-Z]+\]`)
	fpRegexp       = regexp.MustCompile(`\w+/\w+\.go:\d+`)
)

func newTestLogger(b *bytes.Buffer, ll logger.LogLevel) logger.Logger {
	return logger.New(logger.WithLogger(log.New(b, "", 0)), logger.WithLevel(ll))
}

func TestNewLogLevel(t *testing.T) {
	require.Equal(t, logger.LogLevelDebug, logger.NewLogLevel("debug"))
	require.Equal(t, logger.LogLevelWarn, logger.NewLogLevel("WARN"))
	require.Equal(t, logger.LogLevelUnk, logger.NewLogLevel("loud"))
	require.Equal(t, "[ERROR]", logger.LogLevelError.String())
	require.Equal(t, "[UNK]", logger.LogLevel(99).String())
}

func TestColorLoggerLevels(t *testing.T) {
	b := new(bytes.Buffer)
	l := newTestLogger(b, logger.LogLevelWarn)

	l.Debug("quiet", nil)
	l.Info("quiet", nil)
	require.Zero(t, b.Len())

	l.Warn("loud", nil)
	require.Equal(t, "[WARN]", logLevelRegexp.FindString(b.String()))
	require.Contains(t, b.String(), "'loud'")
	require.Regexp(t, fpRegexp, b.String())

	b.Reset()
	l.Error("louder", &logger.LogContext{Error: errors.New("boom")})
	require.Equal(t, "[ERROR]", logLevelRegexp.FindString(b.String()))
	require.Contains(t, b.String(), `log_context: {"error":"boom"}`)
}

func TestColorLoggerCaller(t *testing.T) {
	b := new(bytes.Buffer)
	l := newTestLogger(b, logger.LogLevelDebug)

	l.Debug("here", &logger.LogContext{Caller: "somewhere.go:12"})
	require.Contains(t, b.String(), "somewhere.go:12 'here'")
}

func TestLogContextMarshalText(t *testing.T) {
	// Arrange
	lc := logger.LogContext{}

	// Act
	b, err := lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, "{}", string(b))

	// Arrange
	lc = logger.LogContext{Data: map[string]any{"test": "data"}, Error: errors.New("test")}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, `{"data":{"test":"data"},"error":"test"}`, string(b))

	// Arrange
	r := httptest.NewRequest("GET", "https://example.com/notes/1?token=secret", nil)
	lc = logger.LogContext{Request: r}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, `{"request":{"method":"GET","path":"/notes/1"}}`, string(b))
}

func TestLogContextFault(t *testing.T) {
	// Arrange
	f := burrow.NewFault(burrow.KindInvalidInput, 400, "bad title")
	r := httptest.NewRequest("POST", "/notes", nil)
	ctx := context.WithValue(r.Context(), burrow.RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, burrow.IpAddrKey, "10.0.0.1")
	lc := logger.LogContext{Error: fmt.Errorf("creating note: %w", f), Request: r.WithContext(ctx)}

	// Act
	b, err := lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.JSONEq(t, `{
		"error": "creating note: InvalidInput: bad title (400)",
		"fault": {"kind": "InvalidInput", "code": 400},
		"request": {"method": "POST", "path": "/notes", "id": "req-1", "ip": "10.0.0.1"}
	}`, string(b))
}
