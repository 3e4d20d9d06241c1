package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/felixge/httpsnoop"
	"github.com/xy-planning-network/burrow/logger"
)

// MaskedValue replaces the values of sensitive query params in request logs.
const MaskedValue = "xxxxxxx"

var maskedParams = []string{"password", "secret", "token"}

// A LogRequestRecord is what LogRequest records about a request and its response.
type LogRequestRecord struct {
	BodySize       int64  `json:"bodySize"`
	Duration       string `json:"duration"`
	Host           string `json:"host"`
	ID             string `json:"id,omitempty"`
	IPAddr         string `json:"ipAddr,omitempty"`
	Method         string `json:"method"`
	Path           string `json:"path"`
	Protocol       string `json:"protocol"`
	Referrer       string `json:"referrer,omitempty"`
	ReqContentType string `json:"reqContentType,omitempty"`
	Status         int    `json:"status"`
	URI            string `json:"uri"`
	UserAgent      string `json:"userAgent,omitempty"`
}

func (rec LogRequestRecord) data() map[string]any {
	return map[string]any{
		"bodySize":       rec.BodySize,
		"duration":       rec.Duration,
		"host":           rec.Host,
		"id":             rec.ID,
		"ipAddr":         rec.IPAddr,
		"method":         rec.Method,
		"path":           rec.Path,
		"protocol":       rec.Protocol,
		"referrer":       rec.Referrer,
		"reqContentType": rec.ReqContentType,
		"status":         rec.Status,
		"uri":            rec.URI,
		"userAgent":      rec.UserAgent,
	}
}

// LogRequest logs a LogRequestRecord of every request once it has been responded to,
// using the enclosed implementation of logger.Logger.
//
// LogRequest masks the values of the password, secret and token query params.
//
// If l is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(l logger.Logger) Adapter {
	if l == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(h, w, r)

			rec := LogRequestRecord{
				BodySize:       m.Written,
				Duration:       m.Duration.String(),
				Host:           r.Host,
				ID:             GetRequestID(r.Context()),
				Method:         r.Method,
				Path:           r.URL.Path,
				Protocol:       r.Proto,
				Referrer:       r.Referer(),
				ReqContentType: r.Header.Get("Content-Type"),
				Status:         m.Code,
				URI:            maskedURI(r),
				UserAgent:      r.UserAgent(),
			}
			if ip := IPAddress(r.Context()); ip != UnknownIPAddress {
				rec.IPAddr = ip
			}

			msg := fmt.Sprintf("%s %s %d", rec.Method, rec.URI, rec.Status)
			ctx := &logger.LogContext{Data: rec.data()}
			switch {
			case rec.Status >= http.StatusInternalServerError:
				l.Error(msg, ctx)
			case rec.Status >= http.StatusBadRequest:
				l.Warn(msg, ctx)
			default:
				l.Info(msg, ctx)
			}
		})
	}
}

func maskedURI(r *http.Request) string {
	uri := r.URL.Path
	q := r.URL.Query()
	for key := range q {
		for _, masked := range maskedParams {
			if strings.EqualFold(key, masked) {
				q.Set(key, MaskedValue)
			}
		}
	}

	if query := q.Encode(); query != "" {
		uri += "?" + query
	}

	return uri
}
