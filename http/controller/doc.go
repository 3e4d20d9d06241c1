/*
Package controller groups the actions handling requests for a resource.

A [*Controller] holds an explicit table of named actions.
Looking up an action that was never handled reports it is not found,
and calling one fails with the same not found fault the router raises for unmatched paths.

	notes := controller.New("NotesController")
	notes.Handle("show", func(w http.ResponseWriter, r *http.Request, args ...string) error {
		v := view.NewJSON()
		v.Set("id", args[0])
		return v.Render(w, r)
	})

	rt.Register(http.MethodGet, `^notes/(\d+)$`, notes.Action("show"))
*/
package controller
