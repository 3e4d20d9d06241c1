package controller

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/xy-planning-network/burrow"
	"github.com/xy-planning-network/burrow/http/req"
	"github.com/xy-planning-network/burrow/http/router"
)

var defaultParser = req.NewParser()

// An Action handles a request routed to a Controller.
type Action = router.Handler

// A Lookup reports the Action found under Name, if any.
type Lookup struct {
	Name   string
	Action Action
	Found  bool
}

// A Controller maps names to actions.
type Controller struct {
	Name  string
	Input *req.Parser

	mu      sync.RWMutex
	actions map[string]Action
}

// New constructs a *Controller called name.
func New(name string) *Controller {
	return &Controller{
		Name:    name,
		Input:   req.NewParser(),
		actions: make(map[string]Action),
	}
}

// Handle names action by name, replacing any action already named so.
func (c *Controller) Handle(name string, action Action) *Controller {
	c.mu.Lock()
	defer c.mu.Unlock()

	if action == nil {
		delete(c.actions, name)
		return c
	}

	c.actions[name] = action
	return c
}

// Lookup finds the action named name.
func (c *Controller) Lookup(name string) Lookup {
	c.mu.RLock()
	defer c.mu.RUnlock()

	action, ok := c.actions[name]
	return Lookup{Name: name, Action: action, Found: ok}
}

// Actions lists the names of the actions handled, sorted.
func (c *Controller) Actions() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.actions))
	for name := range c.actions {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Call calls the action named name.
// Calling an action that is not handled fails with a not found *burrow.Fault.
func (c *Controller) Call(name string, w http.ResponseWriter, r *http.Request, args ...string) error {
	l := c.Lookup(name)
	if !l.Found {
		return c.notImplemented(name)
	}

	return l.Action(w, r, args...)
}

// Action adapts the action named name for registering on a router.
// The action is looked up when called,
// so it may be handled after registering.
func (c *Controller) Action(name string) router.Handler {
	return func(w http.ResponseWriter, r *http.Request, args ...string) error {
		return c.Call(name, w, r, args...)
	}
}

// ParseBody decodes the JSON body of r into structPtr and validates it.
func (c *Controller) ParseBody(r *http.Request, structPtr any) error {
	return c.parser().ParseBody(r.Body, structPtr)
}

// ParseForm decodes the form values of r into structPtr and validates it.
func (c *Controller) ParseForm(r *http.Request, structPtr any) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("%w: cannot parse form: %s", burrow.ErrNotValid, err)
	}

	return c.parser().ParseValues(r.Form, structPtr)
}

// ParseQuery decodes the query params of r into structPtr and validates it.
func (c *Controller) ParseQuery(r *http.Request, structPtr any) error {
	return c.parser().ParseValues(r.URL.Query(), structPtr)
}

// Redirect responds to r redirecting to url with code, http.StatusFound by default.
// Redirect returns burrow.ErrHalt so the router stops handling r.
func (c *Controller) Redirect(w http.ResponseWriter, r *http.Request, url string, code ...int) error {
	return Redirect(w, r, url, code...)
}

// Redirect responds to r redirecting to url with code, http.StatusFound by default.
// Redirect returns burrow.ErrHalt so the router stops handling r.
func Redirect(w http.ResponseWriter, r *http.Request, url string, code ...int) error {
	status := http.StatusFound
	if len(code) > 0 && code[0] > 0 {
		status = code[0]
	}

	http.Redirect(w, r, url, status)
	return burrow.ErrHalt
}

// URL joins the base path routes are served under with path.
func URL(basePath, path string, query url.Values) string {
	u := url.URL{Path: strings.TrimRight(basePath, "/") + "/" + strings.TrimLeft(path, "/")}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	return u.String()
}

func (c *Controller) notImplemented(name string) error {
	return burrow.NotFound(fmt.Sprintf("Action %q is not implemented in %s.", name, c.Name))
}

func (c *Controller) parser() *req.Parser {
	if c.Input == nil {
		return defaultParser
	}

	return c.Input
}
