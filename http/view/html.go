package view

import (
	"bytes"
	"fmt"
	"net/http"
	"path"

	"github.com/xy-planning-network/burrow"
	"github.com/xy-planning-network/burrow/http/template"
)

const htmlContentType = "text/html; charset=UTF-8"

// HTML renders its values through a template.
// The values held are the data of the template, i.e., {{ .title }}.
// An HTML must be constructed with NewHTML; the zero value has no parser to render with.
type HTML struct {
	Base

	parser   template.Parser
	tmpl     string
	partials []string
}

// NewHTML constructs an *HTML rendering tmpl, which is parsed along with partials.
// An empty tmpl leaves setting the template to SetTemplate.
//
// NewHTML fails with a config *burrow.Fault if a template does not exist.
func NewHTML(p template.Parser, tmpl string, partials ...string) (*HTML, error) {
	if p == nil {
		return nil, configFault("No template parser is configured.")
	}

	v := &HTML{Base: Base{Bag: make(Bag)}, parser: p}
	for _, partial := range partials {
		if !p.Exists(partial) {
			return nil, notAvailable(partial)
		}
	}
	v.partials = partials

	if tmpl != "" {
		if err := v.SetTemplate(tmpl); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// SetTemplate replaces the template rendered.
// SetTemplate fails with a config *burrow.Fault if tmpl does not exist.
func (v *HTML) SetTemplate(tmpl string) error {
	if v.parser == nil {
		return configFault("No template parser is configured.")
	}

	if !v.parser.Exists(tmpl) {
		return notAvailable(tmpl)
	}

	v.tmpl = tmpl
	return nil
}

// Template returns the template rendered.
func (v *HTML) Template() string { return v.tmpl }

// Render sends the headers, status and the template executed with the values held.
// Content-Type is text/html.
//
// Nothing is written if the template fails to execute.
func (v *HTML) Render(w http.ResponseWriter, r *http.Request) error {
	if v.tmpl == "" {
		return configFault("No template is set.")
	}

	return v.execute(w, append([]string{v.tmpl}, v.partials...)...)
}

// Dump sends the headers, status and the values held in a <pre> block
// instead of rendering the template.
func (v *HTML) Dump(w http.ResponseWriter, r *http.Request) error {
	return v.execute(w, template.DumpTemplate)
}

func (v *HTML) execute(w http.ResponseWriter, tmpls ...string) error {
	if v.parser == nil {
		return configFault("No template parser is configured.")
	}

	tmpl, err := v.parser.Parse(tmpls...)
	if err != nil {
		return fmt.Errorf("%w: cannot parse %s: %s", burrow.ErrBadConfig, tmpls[0], err)
	}

	b := pool.Get().(*bytes.Buffer)
	b.Reset()
	defer pool.Put(b)

	data := v.Bag
	if data == nil {
		data = make(Bag)
	}

	if err := tmpl.ExecuteTemplate(b, path.Base(tmpls[0]), map[string]any(data)); err != nil {
		return fmt.Errorf("%w: cannot execute %s: %s", burrow.ErrUnexpected, tmpls[0], err)
	}

	return v.write(w, htmlContentType, b.Bytes())
}

func configFault(msg string) error {
	return &burrow.Fault{Kind: burrow.KindConfig, Message: msg, Code: http.StatusInternalServerError, Err: burrow.ErrBadConfig}
}

func notAvailable(tmpl string) error {
	return configFault(fmt.Sprintf("Template %q is not available.", tmpl))
}
