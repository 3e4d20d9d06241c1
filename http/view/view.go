package view

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/xy-planning-network/burrow/http/template"
)

// A View writes a response from the values it holds.
type View interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// A Header is a response header a view sends.
type Header struct {
	Name  string
	Value any
}

// Pool of *bytes.Buffer to prerender responses into
var pool = &sync.Pool{New: func() any { return new(bytes.Buffer) }}

var _, pretty = template.Pretty()

// Base holds the values and headers every view renders.
//
// Base renders its values as plain text; JSON and HTML render them in their formats.
// The zero value is ready to use.
type Base struct {
	Bag

	code    int
	headers []Header
}

// NewBase constructs a *Base with an empty Bag.
func NewBase() *Base { return &Base{Bag: make(Bag)} }

// Set names val by key, allocating the Bag if need be.
func (v *Base) Set(key string, val any) {
	if v.Bag == nil {
		v.Bag = make(Bag)
	}

	v.Bag.Set(key, val)
}

// AddHeader sets the header name to value, replacing the value of an existing header name.
// Headers are sent in the order first added.
// A nil value is not sent.
func (v *Base) AddHeader(name string, value any) *Base {
	for i := range v.headers {
		if strings.EqualFold(v.headers[i].Name, name) {
			v.headers[i].Value = value
			return v
		}
	}

	v.headers = append(v.headers, Header{Name: name, Value: value})
	return v
}

// RemoveHeader unsets the header name.
func (v *Base) RemoveHeader(name string) *Base {
	for i := range v.headers {
		if strings.EqualFold(v.headers[i].Name, name) {
			v.headers = append(v.headers[:i], v.headers[i+1:]...)
			break
		}
	}

	return v
}

// Headers returns the headers set, in order.
func (v *Base) Headers() []Header { return append([]Header(nil), v.headers...) }

// Code sets the response status code.
func (v *Base) Code(code int) *Base {
	v.code = code
	return v
}

// Status returns the response status code, http.StatusOK by default.
func (v *Base) Status() int {
	if v.code == 0 {
		return http.StatusOK
	}

	return v.code
}

// SendHeaders writes every header with a non-nil value to w.
func (v *Base) SendHeaders(w http.ResponseWriter) {
	for _, h := range v.headers {
		if h.Value == nil {
			continue
		}

		w.Header().Set(h.Name, fmt.Sprint(h.Value))
	}
}

// String dumps the values held.
func (v *Base) String() string { return pretty(map[string]any(v.Bag)) }

// Render sends the headers, status and the dump of values held.
func (v *Base) Render(w http.ResponseWriter, r *http.Request) error {
	if v.Bag == nil {
		v.Bag = make(Bag)
	}

	return v.write(w, "text/plain; charset=UTF-8", []byte(v.String()))
}

func (v *Base) write(w http.ResponseWriter, contentType string, body []byte) error {
	v.AddHeader("Content-Type", contentType)
	v.SendHeaders(w)
	w.WriteHeader(v.Status())
	_, err := w.Write(body)
	return err
}
