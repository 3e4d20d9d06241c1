package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS sets "Access-Control-Allow" style headers on a response for requests from origins.
// Preflight requests are answered before reaching the router,
// so routes need not handle http.MethodOptions.
//
// If origins is empty, NoopAdapter returns and this middleware does nothing.
func CORS(origins ...string) Adapter {
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
		return NoopAdapter
	}

	return handlers.CORS(
		handlers.AllowedHeaders([]string{
			"Content-Type",
			"X-CSRF-Token",
			RequestIDHeader,
		}),
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{
			http.MethodDelete,
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
			http.MethodPatch,
			http.MethodPost,
			http.MethodPut,
		}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)
}
