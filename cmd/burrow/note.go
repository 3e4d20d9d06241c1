package main

import (
	"context"
	"fmt"

	"github.com/xy-planning-network/burrow/database"
	"github.com/xy-planning-network/burrow/model"
)

const notesSchema = `CREATE TABLE IF NOT EXISTS "notes" (
	"id" %s,
	"title" TEXT NOT NULL,
	"body" TEXT NOT NULL DEFAULT '',
	"pinned" BOOLEAN NOT NULL DEFAULT FALSE
)`

// notesDDL renders notesSchema for the named gorm dialect.
func notesDDL(dialect string) string {
	id := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if dialect == database.DriverPostgres {
		id = "BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
	}

	return fmt.Sprintf(notesSchema, id)
}

// A Note is a titled piece of text.
type Note struct {
	model.Base
	Title  string `json:"title"`
	Body   string `json:"body"`
	Pinned bool   `json:"pinned"`
}

func newNote() *Note { return new(Note) }

func (n *Note) Inflate(r database.Row) error {
	if err := n.Base.Inflate(r); err != nil {
		return err
	}

	var err error
	if n.Title, err = r.String("title"); err != nil {
		return err
	}

	if n.Body, err = r.String("body"); err != nil {
		return err
	}

	n.Pinned, err = r.Bool("pinned")
	return err
}

func (n *Note) Deflate() database.Row {
	r := n.Base.Deflate()
	r["title"] = n.Title
	r["body"] = n.Body
	r["pinned"] = n.Pinned
	return r
}

// newNoteStore bootstraps the notes table, if need be, and constructs a store for it.
func newNoteStore(ctx context.Context, db *database.DB) (*model.Store[*Note], error) {
	if _, err := db.Exec(ctx, notesDDL(db.Gorm().Dialector.Name())); err != nil {
		return nil, err
	}

	return model.NewStore(db, "notes", newNote)
}
