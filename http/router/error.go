package router

import (
	"fmt"
	"net/http"

	"github.com/xy-planning-network/burrow"
	"github.com/xy-planning-network/burrow/logger"
)

// An ErrorHandler responds to a request whose dispatch failed with f.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, f *burrow.Fault)

// DefaultErrorHandler logs f with l and responds with the status f maps to
// and a "<Kind>: <message> (<code>)" plain text body.
//
// Faults mapping to a 5xx status are logged as errors, others as warnings.
func DefaultErrorHandler(l logger.Logger) ErrorHandler {
	return func(w http.ResponseWriter, r *http.Request, f *burrow.Fault) {
		status := f.Status()
		if l != nil {
			ctx := &logger.LogContext{Error: f, Request: r}
			if status >= http.StatusInternalServerError {
				l.Error(f.Error(), ctx)
			} else {
				l.Warn(f.Error(), ctx)
			}
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(status)
		fmt.Fprint(w, f.Error())
	}
}
