package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const visitorTTL = time.Hour

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	burst     int
	every     rate.Limit
	lastSwept time.Time
	val       map[string]Visitor
	sync.Mutex
}

// NewVisitors constructs a *Visitors allowing each visitor perSecond requests every second
// with bursts of up to burst.
// Non-positive values default to 5 requests every second with bursts of up to 20.
func NewVisitors(perSecond float64, burst int) *Visitors {
	if perSecond <= 0 {
		perSecond = 5
	}

	if burst <= 0 {
		burst = 20
	}

	return &Visitors{
		burst:     burst,
		every:     rate.Limit(perSecond),
		lastSwept: time.Now(),
		val:       make(map[string]Visitor),
	}
}

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.every, vs.burst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// Len returns the number of visitors tracked.
func (vs *Visitors) Len() int {
	vs.Lock()
	defer vs.Unlock()

	return len(vs.val)
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
// Sweeps run at most once a minute.
func (vs *Visitors) cleanup(now time.Time) {
	vs.Lock()
	defer vs.Unlock()

	if now.Sub(vs.lastSwept) < time.Minute {
		return
	}

	vs.lastSwept = now
	for ip, v := range vs.val {
		if now.Sub(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}
}

// RateLimit responds with 429 Too Many Requests to a client
// making requests faster than visitors allows.
// Clients are told apart by IP address; use InjectIPAddress before RateLimit.
//
// NOTE: implementation found here:
// https://www.alexedwards.net/blog/how-to-rate-limit-http-requests
func RateLimit(visitors *Visitors) Adapter {
	if visitors == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !visitors.Fetch(IPAddress(r.Context())).Limiter.Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			visitors.cleanup(time.Now())
			h.ServeHTTP(w, r)
		})
	}
}
