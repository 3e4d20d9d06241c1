package template_test

import (
	"bytes"
	html "html/template"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/burrow/http/template"
)

type testFn func(*testing.T, *html.Template, error)

func newParser(files map[string]string) template.Parser {
	mfs := make(fstest.MapFS, len(files))
	for name, data := range files {
		mfs[name] = &fstest.MapFile{Data: []byte(data)}
	}

	return template.NewParser(template.WithFS(mfs))
}

func TestParse(t *testing.T) {
	stub := "<!DOCTYPE html>\n<html></html>"
	tcs := []struct {
		name   string
		parser template.Parser
		fns    map[string]any
		fps    []string
		assert testFn
	}{
		{
			name:   "Zero-Value",
			parser: newParser(nil),
			fps:    []string{},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.ErrorIs(t, err, template.ErrNoFiles)
				require.Nil(t, tmpl)
			},
		},
		{
			name:   "Empty-String",
			parser: newParser(nil),
			fps:    []string{"", ""},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.ErrorIs(t, err, template.ErrNoFiles)
				require.Nil(t, tmpl)
			},
		},
		{
			name:   "No-File",
			parser: newParser(nil),
			fps:    []string{"example.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.NotNil(t, err)
				require.Nil(t, tmpl)
			},
		},
		{
			name:   "Not-Empty-File",
			parser: newParser(map[string]string{"example.tmpl": stub}),
			fps:    []string{"", "example.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)
				require.Equal(t, "example.tmpl", tmpl.Name())

				b := new(bytes.Buffer)
				require.Nil(t, tmpl.Execute(b, nil))
				require.Equal(t, stub, b.String())
			},
		},
		{
			name: "Many-Files",
			parser: newParser(map[string]string{
				"example.tmpl":       `<!DOCTYPE html><html>{{ template "test" }}</html>`,
				"partials/test.tmpl": `{{ define "test" }}<p>sup</p>{{ end }}`,
			}),
			fps: []string{"example.tmpl", "partials/test.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)
				require.Equal(t, "example.tmpl", tmpl.Name())

				b := new(bytes.Buffer)
				require.Nil(t, tmpl.ExecuteTemplate(b, "example.tmpl", nil))
				require.Equal(t, "<!DOCTYPE html><html><p>sup</p></html>", b.String())
			},
		},
		{
			name:   "Add-Fns",
			parser: newParser(map[string]string{"example.tmpl": `<!DOCTYPE html><html>{{ test }} {{ second "cool" }}</html>`}),
			fns: map[string]any{
				"test":   func() string { return "test" },
				"second": func(s string) string { return s },
			},
			fps: []string{"example.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)

				b := new(bytes.Buffer)
				require.Nil(t, tmpl.Execute(b, nil))
				require.Equal(t, "<!DOCTYPE html><html>test cool</html>", b.String())
			},
		},
		{
			name:   "Packaged-Dump",
			parser: newParser(nil),
			fps:    []string{template.DumpTemplate},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)

				b := new(bytes.Buffer)
				require.Nil(t, tmpl.Execute(b, map[string]any{"id": 1}))
				require.Equal(t, "<pre>{\n  &#34;id&#34;: 1\n}</pre>\n", b.String())
			},
		},
		{
			name:   "User-Overrides-Packaged",
			parser: newParser(map[string]string{template.DumpTemplate: "dumped"}),
			fps:    []string{template.DumpTemplate},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)

				b := new(bytes.Buffer)
				require.Nil(t, tmpl.Execute(b, nil))
				require.Equal(t, "dumped", b.String())
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.fns {
				tc.parser = tc.parser.AddFn(k, v)
			}

			tmpl, err := tc.parser.Parse(tc.fps...)
			tc.assert(t, tmpl, err)
		})
	}
}

func TestExists(t *testing.T) {
	p := newParser(map[string]string{"notes/show.tmpl": "hi"})

	require.True(t, p.Exists("notes/show.tmpl"))
	require.True(t, p.Exists(template.DumpTemplate))
	require.False(t, p.Exists("notes"))
	require.False(t, p.Exists("notes/missing.tmpl"))
	require.False(t, p.Exists("../notes/show.tmpl"))
	require.False(t, p.Exists(""))
}
