package router

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/burrow"
	"github.com/xy-planning-network/burrow/http/middleware"
	"github.com/xy-planning-network/burrow/logger"
)

// AnyMethod registers a route matching requests of every HTTP method.
const AnyMethod = "ANY"

// A Handler responds to a request matching a route.
// args are the capture groups of the route's pattern.
type Handler func(w http.ResponseWriter, r *http.Request, args ...string) error

// A Route maps an HTTP method and a pattern to a Handler.
type Route struct {
	Method  string
	Pattern string
	Handler Handler

	re *regexp.Regexp
}

// A Match is the Route a path and method dispatch to, along with the arguments captured from the path.
type Match struct {
	Route
	Args []string
}

// Router dispatches requests along its routes.
type Router struct {
	basePath      string
	everyReqStack []middleware.Adapter
	logger        logger.Logger
	onError       ErrorHandler

	mu      sync.RWMutex
	handler http.Handler
	routes  []Route
}

// New constructs a *Router logging with l.
//
// Paths of requests are matched after trimming basePath from them.
func New(basePath string, l logger.Logger) *Router {
	if l == nil {
		l = logger.New()
	}

	r := &Router{
		basePath: strings.TrimRight(basePath, "/"),
		logger:   l,
	}
	r.onError = DefaultErrorHandler(l)
	r.build()

	return r
}

// BasePath returns the prefix trimmed from request paths.
func (r *Router) BasePath() string { return r.basePath }

// Handle registers the Route, prepending it to the routing table.
func (r *Router) Handle(route Route) {
	r.Register(route.Method, route.Pattern, route.Handler)
}

// HandleRoutes registers each of routes in order.
// The last of routes is checked first.
func (r *Router) HandleRoutes(routes []Route) {
	for _, route := range routes {
		r.Handle(route)
	}
}

// Register prepends a route for requests with method whose path matches pattern.
// An empty method or "any", in any case, matches every method.
//
// A pattern failing to compile is logged and its route never matches.
func (r *Router) Register(method, pattern string, handler Handler) {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = AnyMethod
	}

	route := Route{Method: method, Pattern: pattern, Handler: handler}

	re, err := regexp.Compile(trimPattern(pattern))
	if err != nil {
		r.logger.Error(fmt.Sprintf("route %s %q never matches", method, pattern), &logger.LogContext{Error: err})
	} else {
		route.re = re
	}

	if handler == nil {
		r.logger.Warn(fmt.Sprintf("route %s %q has no handler", method, pattern), nil)
	}

	r.mu.Lock()
	r.routes = append([]Route{route}, r.routes...)
	r.mu.Unlock()

	r.build()
}

// Routes returns the routing table in the order routes are checked.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]Route(nil), r.routes...)
}

// Match scans the routing table for the first route whose pattern matches path
// and whose method matches method.
// path is expected to be normalized already.
func (r *Router) Match(path, method string) (Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, route := range r.routes {
		if args, ok := route.match(path, method); ok {
			return Match{Route: route, Args: args}, true
		}
	}

	return Match{}, false
}

// OnEveryRequest appends the middlewares to the existing stack
// that the *Router applies to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.mu.Lock()
	r.everyReqStack = append(r.everyReqStack, middlewares...)
	r.mu.Unlock()

	r.build()
}

// SetErrorHandler replaces the ErrorHandler faults are handed to.
// A nil h restores DefaultErrorHandler.
func (r *Router) SetErrorHandler(h ErrorHandler) {
	if h == nil {
		h = DefaultErrorHandler(r.logger)
	}

	r.mu.Lock()
	r.onError = h
	r.mu.Unlock()
}

// ServeHTTP dispatches the request to the first matching route.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.RLock()
	h := r.handler
	r.mu.RUnlock()

	h.ServeHTTP(w, req)
}

// Normalize reduces path to what route patterns match against.
func (r *Router) Normalize(path string) string {
	if r.basePath != "" && strings.HasPrefix(path, r.basePath) {
		path = strings.TrimPrefix(path, r.basePath)
	}

	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	return strings.Trim(path, "/")
}

// build rebuilds the mux.Router requests are served by from the routing table.
func (r *Router) build() {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := mux.NewRouter().SkipClean(true)
	for _, route := range r.routes {
		route := route
		m.MatcherFunc(func(req *http.Request, rm *mux.RouteMatch) bool {
			args, ok := route.match(r.Normalize(req.URL.Path), req.Method)
			if !ok {
				return false
			}

			rm.Vars = argsVars(args)
			return true
		}).Handler(r.dispatch(route))
	}

	m.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.fail(w, req, burrow.NotFound(""))
	})

	r.handler = middleware.Chain(m, r.everyReqStack...)
}

// dispatch calls the route's Handler, recovering a panic into a fault.
func (r *Router) dispatch(route Route) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				err, ok := p.(error)
				if !ok {
					err = fmt.Errorf("%v", p)
				}

				r.fail(w, req, &burrow.Fault{
					Kind:    burrow.KindError,
					Message: fmt.Sprintf("panic: %s", err),
					Err:     err,
				})
			}
		}()

		args, ok := varsArgs(mux.Vars(req))
		if !ok {
			args, _ = route.match(r.Normalize(req.URL.Path), req.Method)
		}

		if route.Handler == nil {
			r.fail(w, req, burrow.NewFault(burrow.KindConfig, http.StatusInternalServerError, "Route has no handler."))
			return
		}

		if err := route.Handler(w, req, args...); err != nil && !errors.Is(err, burrow.ErrHalt) {
			r.fail(w, req, burrow.AsFault(err))
		}
	})
}

// fail hands f to the ErrorHandler.
func (r *Router) fail(w http.ResponseWriter, req *http.Request, f *burrow.Fault) {
	r.mu.RLock()
	h := r.onError
	r.mu.RUnlock()

	h(w, req, f)
}

func (route Route) match(path, method string) ([]string, bool) {
	if route.re == nil {
		return nil, false
	}

	found := route.re.FindStringSubmatch(path)
	if found == nil {
		return nil, false
	}

	if route.Method != AnyMethod && !strings.EqualFold(route.Method, method) {
		return nil, false
	}

	return found[1:], true
}

// argsVars keys the captured args by their position, as mux.Vars exposes them.
func argsVars(args []string) map[string]string {
	vars := make(map[string]string, len(args))
	for i, arg := range args {
		vars[strconv.Itoa(i)] = arg
	}

	return vars
}

// varsArgs reverses argsVars.
// It reports false when vars were not set by a route's matcher.
func varsArgs(vars map[string]string) ([]string, bool) {
	if vars == nil {
		return nil, false
	}

	args := make([]string, len(vars))
	for i := range args {
		arg, ok := vars[strconv.Itoa(i)]
		if !ok {
			return nil, false
		}
		args[i] = arg
	}

	return args, true
}

// trimPattern drops a leading slash from pattern, even past a "^".
func trimPattern(pattern string) string {
	if strings.HasPrefix(pattern, "^/") {
		return "^" + pattern[2:]
	}

	return strings.TrimPrefix(pattern, "/")
}
