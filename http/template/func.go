package template

import (
	"encoding/json"
	"fmt"
	html "html/template"
	"net/url"

	"github.com/google/uuid"
	"github.com/xy-planning-network/burrow"
)

// AddFn includes the named function in the Parse function map.
func (p *Parse) AddFn(name string, fn any) Parser {
	if p.fns == nil {
		p.fns = make(html.FuncMap)
	}
	p.fns[name] = fn

	return p
}

// Env encloses some string representing an environment.
// It returns "env" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning the enclosed value when called.
func Env(e burrow.Environment) (string, func() string) {
	return "env", func() string { return e.String() }
}

// Nonce returns "nonce" as the name of the function for convenient passing to a template.FuncMap
// and returns a function generating a uuid.
func Nonce() (string, func() string) {
	return "nonce", func() string { return uuid.NewString() }
}

// Pretty returns "pretty" as the name of the function for convenient passing to a template.FuncMap
// and returns a function formatting any value as indented JSON,
// falling back to Go syntax for values JSON cannot represent.
func Pretty() (string, func(any) string) {
	return "pretty", func(v any) string {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Sprintf("%#v", v)
		}

		return string(b)
	}
}

// RootURL encloses the *url.URL representing the base URL of the web app.
// It returns "rootURL" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning its *url.URL.String().
// If u is nil, that function will always return an empty string.
func RootURL(u *url.URL) (string, func() string) {
	if u == nil {
		return "rootURL", func() string { return "" }
	}

	s := u.String()
	return "rootURL", func() string { return s }
}
