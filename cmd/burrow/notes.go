package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/xy-planning-network/burrow"
	"github.com/xy-planning-network/burrow/http/controller"
	"github.com/xy-planning-network/burrow/http/router"
	"github.com/xy-planning-network/burrow/http/template"
	"github.com/xy-planning-network/burrow/http/view"
	"github.com/xy-planning-network/burrow/model"
)

type noteInput struct {
	Title  string `json:"title" validate:"required,max=200"`
	Body   string `json:"body"`
	Pinned bool   `json:"pinned"`
}

// A noteOrder picks which end of the notes table latest reads from.
type noteOrder string

const (
	newestFirst noteOrder = "newest"
	oldestFirst noteOrder = "oldest"
)

func (o noteOrder) Valid() error {
	switch o {
	case newestFirst, oldestFirst:
		return nil
	default:
		return fmt.Errorf("%w: order %q is neither %q nor %q", burrow.ErrNotValid, o, newestFirst, oldestFirst)
	}
}

type latestQuery struct {
	N     int       `schema:"n" validate:"omitempty,min=1,max=100"`
	Order noteOrder `schema:"order" validate:"omitempty,enum"`
}

// NotesController handles requests for notes.
type NotesController struct {
	*controller.Controller

	basePath string
	notes    *model.Store[*Note]
	p        template.Parser
}

func newNotesController(basePath string, notes *model.Store[*Note], p template.Parser) *NotesController {
	c := &NotesController{
		Controller: controller.New("NotesController"),
		basePath:   basePath,
		notes:      notes,
		p:          p,
	}

	c.Handle("index", c.index)
	c.Handle("list", c.list)
	c.Handle("latest", c.latest)
	c.Handle("show", c.show)
	c.Handle("create", c.create)
	c.Handle("update", c.update)
	c.Handle("delete", c.delete)
	c.Handle("root", c.root)

	return c
}

// routes registers the routes NotesController handles.
// Routes registered later are checked first.
func (c *NotesController) routes(r *router.Router) {
	r.HandleRoutes([]router.Route{
		{Method: http.MethodGet, Pattern: `^$`, Handler: c.Action("root")},
		{Method: http.MethodGet, Pattern: `^notes$`, Handler: c.Action("index")},
		{Method: http.MethodGet, Pattern: `^notes\.json$`, Handler: c.Action("list")},
		{Method: http.MethodPost, Pattern: `^notes$`, Handler: c.Action("create")},
		{Method: http.MethodGet, Pattern: `^notes/(\d+)$`, Handler: c.Action("show")},
		{Method: http.MethodPut, Pattern: `^notes/(\d+)$`, Handler: c.Action("update")},
		{Method: http.MethodDelete, Pattern: `^notes/(\d+)$`, Handler: c.Action("delete")},
		{Method: http.MethodGet, Pattern: `^notes/latest$`, Handler: c.Action("latest")},
		{Method: router.AnyMethod, Pattern: `^notes/(\d+)/archive$`, Handler: c.Action("archive")},
	})
}

func (c *NotesController) root(w http.ResponseWriter, r *http.Request, _ ...string) error {
	return c.Redirect(w, r, controller.URL(c.basePath, "notes", nil), http.StatusSeeOther)
}

func (c *NotesController) index(w http.ResponseWriter, r *http.Request, _ ...string) error {
	notes, err := c.notes.GetAll(r.Context())
	if err != nil {
		return err
	}

	v, err := view.NewHTML(c.p, "notes/index.tmpl")
	if err != nil {
		return err
	}

	v.Set("title", "Notes")
	v.Set("notes", notes)
	return v.Render(w, r)
}

func (c *NotesController) list(w http.ResponseWriter, r *http.Request, _ ...string) error {
	notes, err := c.notes.GetAll(r.Context())
	if err != nil {
		return err
	}

	v := view.NewJSON()
	v.Set("notes", notes)
	return v.Render(w, r)
}

func (c *NotesController) latest(w http.ResponseWriter, r *http.Request, _ ...string) error {
	q := latestQuery{N: 1, Order: newestFirst}
	if err := c.ParseQuery(r, &q); err != nil {
		return err
	}

	fetch := c.notes.GetLatest
	if q.Order == oldestFirst {
		fetch = c.notes.GetOldest
	}

	notes, err := fetch(r.Context(), q.N)
	if err != nil {
		return err
	}

	v := view.NewJSON()
	v.Set("notes", notes)
	return v.Render(w, r)
}

func (c *NotesController) show(w http.ResponseWriter, r *http.Request, args ...string) error {
	note, err := c.find(r, args)
	if err != nil {
		return err
	}

	return renderNote(w, r, note, http.StatusOK)
}

func (c *NotesController) create(w http.ResponseWriter, r *http.Request, _ ...string) error {
	var in noteInput
	if err := c.ParseBody(r, &in); err != nil {
		return err
	}

	note, err := c.notes.Add(r.Context(), &Note{Title: in.Title, Body: in.Body, Pinned: in.Pinned})
	if err != nil {
		return err
	}

	return renderNote(w, r, note, http.StatusCreated)
}

func (c *NotesController) update(w http.ResponseWriter, r *http.Request, args ...string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	var in noteInput
	if err := c.ParseBody(r, &in); err != nil {
		return err
	}

	note := &Note{Title: in.Title, Body: in.Body, Pinned: in.Pinned}
	note.SetID(id)

	note, err = c.notes.Update(r.Context(), note)
	if err != nil {
		return err
	}

	return renderNote(w, r, note, http.StatusOK)
}

func (c *NotesController) delete(w http.ResponseWriter, r *http.Request, args ...string) error {
	note, err := c.find(r, args)
	if err != nil {
		return err
	}

	if _, err := c.notes.Delete(r.Context(), note); err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return burrow.ErrHalt
}

func (c *NotesController) find(r *http.Request, args []string) (*Note, error) {
	id, err := parseID(args)
	if err != nil {
		return nil, err
	}

	return c.notes.GetByID(r.Context(), id)
}

func renderNote(w http.ResponseWriter, r *http.Request, note *Note, code int) error {
	v := view.NewJSON()
	v.Code(code)
	v.Set("note", note)
	return v.Render(w, r)
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, burrow.NotFound("")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, burrow.NotFound("")
	}

	return id, nil
}
