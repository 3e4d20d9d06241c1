package logger

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/burrow"
)

var _ encoding.TextMarshaler = LogContext{}

// A LogContext carries what a log line's message leaves out:
// the error behind it, the request being served and any other data.
type LogContext struct {
	// Caller replaces the file and line number a log line names.
	// It is not part of the text of a LogContext.
	Caller string

	Data map[string]any

	// Error is logged by its message.
	// A *burrow.Fault, or an error wrapping one, also logs its kind and code.
	Error error

	// Request is logged by its method, path and the id and IP address
	// the middleware stack stashed in its context.
	Request *http.Request
}

// MarshalText encodes the set fields of LogContext as a JSON object.
//
// MarshalText implements [encoding.TextMarshaler].
func (lc LogContext) MarshalText() ([]byte, error) {
	m := make(map[string]any)
	if lc.Data != nil {
		m["data"] = lc.Data
	}

	if lc.Error != nil {
		m["error"] = lc.Error.Error()

		var f *burrow.Fault
		if errors.As(lc.Error, &f) {
			m["fault"] = map[string]any{"kind": f.Kind, "code": f.Code}
		}
	}

	if lc.Request != nil {
		m["request"] = requestFields(lc.Request)
	}

	return json.Marshal(m)
}

func requestFields(r *http.Request) map[string]any {
	fields := map[string]any{
		"method": r.Method,
		"path":   r.URL.Path,
	}

	id, _ := r.Context().Value(burrow.RequestIDKey).(string)
	if id == "" {
		id = r.Header.Get("X-Request-Id")
	}

	if id != "" {
		fields["id"] = id
	}

	if ip, _ := r.Context().Value(burrow.IpAddrKey).(string); ip != "" {
		fields["ip"] = ip
	}

	return fields
}

func (lc LogContext) String() string {
	b, err := lc.MarshalText()
	if err != nil {
		return fmt.Sprintf("%q", err.Error())
	}

	return string(b)
}
