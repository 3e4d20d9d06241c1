/*
Package model maps entities onto single tables keyed by an "id" column.

An entity embeds [Base] and implements [Entity] by extending Inflate and Deflate
with its own columns:

	type Note struct {
		model.Base
		Title string
	}

	func (n *Note) Inflate(r database.Row) error {
		if err := n.Base.Inflate(r); err != nil {
			return err
		}

		var err error
		n.Title, err = r.String("title")
		return err
	}

	func (n *Note) Deflate() database.Row {
		r := n.Base.Deflate()
		r["title"] = n.Title
		return r
	}

A [Store] then reads and writes Notes:

	notes, err := model.NewStore(db, "notes", func() *Note { return new(Note) })
	note, err := notes.Add(ctx, &Note{Title: "groceries"})

Fetching a single absent row fails with burrow.ErrNotFound.
Updating or deleting an absent row fails with burrow.ErrNotExist without writing.
*/
package model
