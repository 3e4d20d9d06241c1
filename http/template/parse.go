package template

import (
	"fmt"
	html "html/template"
	"io/fs"
	"os"
	"path"
)

// DumpTemplate names the template shipped with this package
// that renders its data in a <pre> block.
const DumpTemplate = "dump.tmpl"

// Parser is the interface for parsing HTML templates with the functions provided.
type Parser interface {
	AddFn(name string, fn any) Parser
	Exists(fp string) bool
	Parse(fps ...string) (*html.Template, error)
}

// Parse implements Parser with a focus on utilizing embedded HTML templates through fs.FS.
//
// Templates are looked up in the user filesystem first,
// then in those shipped with this package, like DumpTemplate.
type Parse struct {
	fs  fs.FS
	fns html.FuncMap
}

// NewParser constructs a Parse with the provided functional options.
// Without WithFS, templates are read from the current working directory.
func NewParser(opts ...ParserOptFn) *Parse {
	p := &Parse{fns: make(html.FuncMap)}
	p.AddFn(Pretty())
	for _, opt := range opts {
		opt(p)
	}

	userFS := p.fs
	if userFS == nil {
		userFS = os.DirFS(".")
	}

	p.fs = &mergeFS{
		cache:   make(map[string]func(string) (fs.File, error)),
		userDir: userFS,
		pkgDir:  pkgFS,
	}

	return p
}

// Exists asserts whether fp names a readable template.
func (p *Parse) Exists(fp string) bool {
	if fp == "" || !fs.ValidPath(fp) {
		return false
	}

	f, err := p.fs.Open(fp)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	return err == nil && !info.IsDir()
}

// Parse parses files found in the *Parse.fs with those functions provided previously.
// The first file names the returned template.
func (p *Parse) Parse(fps ...string) (*html.Template, error) {
	files := make([]string, 0, len(fps))
	for _, fp := range fps {
		if fp != "" {
			files = append(files, fp)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w", ErrNoFiles)
	}

	return html.New(path.Base(files[0])).Funcs(p.fns).ParseFS(p.fs, files...)
}

var _ Parser = (*Parse)(nil)
