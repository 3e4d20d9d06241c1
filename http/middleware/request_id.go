package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/burrow"
)

// RequestIDHeader carries the id RequestID assigns a request.
const RequestIDHeader = "X-Request-Id"

// RequestID assigns each request a uuid, stashing it in the request context under burrow.RequestIDKey
// and setting it on the RequestIDHeader of both the request and the response.
//
// A valid uuid already set on the request's RequestIDHeader is kept.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			r = r.Clone(context.WithValue(r.Context(), burrow.RequestIDKey, id))
			r.Header.Set(RequestIDHeader, id)
			w.Header().Set(RequestIDHeader, id)

			h.ServeHTTP(w, r)
		})
	}
}

// GetRequestID returns the id RequestID stashed in ctx, if any.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(burrow.RequestIDKey).(string)
	return id
}
