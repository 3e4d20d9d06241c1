package model

import (
	"github.com/xy-planning-network/burrow/database"
)

// An Entity is a record a Store persists to a single table keyed by the "id" column.
//
// Implementations embed Base and extend Inflate and Deflate with their own columns.
// For every row shape an Entity declares, Deflate after Inflate reproduces the row.
type Entity interface {
	GetID() int64
	SetID(id int64)

	// Inflate copies the columns of r into the Entity.
	Inflate(r database.Row) error

	// Deflate builds the column name to value mapping written for the Entity.
	Deflate() database.Row
}

// Base supplies the "id" column every Entity carries.
// An ID of zero marks an Entity not yet saved.
type Base struct {
	ID int64 `json:"id"`
}

// GetID returns the ID of the record.
func (b *Base) GetID() int64 { return b.ID }

// SetID replaces the ID of the record.
func (b *Base) SetID(id int64) { b.ID = id }

// Inflate coerces the "id" column of r into the ID.
func (b *Base) Inflate(r database.Row) error {
	id, err := r.Int64(idColumn)
	if err != nil {
		return err
	}

	b.ID = id
	return nil
}

// Deflate returns a Row holding only the "id" column.
func (b *Base) Deflate() database.Row { return database.Row{idColumn: b.ID} }
