package database

//go:generate mockgen -destination=mock/mock_querier.go -package=mock github.com/xy-planning-network/burrow/database Querier

import (
	"context"
	"fmt"

	"github.com/xy-planning-network/burrow"
	"gorm.io/gorm"
)

// A Querier executes SQL with bound parameters.
//
// *DB implements Querier.
type Querier interface {
	// Query executes sql and returns every resulting row.
	Query(ctx context.Context, sql string, params ...any) ([]Row, error)

	// Exec executes sql and returns the number of rows affected.
	Exec(ctx context.Context, sql string, params ...any) (int64, error)
}

var _ Querier = (*DB)(nil)

// A DB is the connection an app shares between its models.
//
// Values are always passed as params, never interpolated into sql.
type DB struct {
	// *gorm.DB's chainable methods mutate the statement they build.
	// Every method here starts from WithContext, which hands back a fresh one.
	db *gorm.DB
}

// NewDB constructs a *DB from a *gorm.DB.
func NewDB(db *gorm.DB) *DB { return &DB{db: db} }

// Gorm exposes the underlying *gorm.DB backing DB.
//
// NB: use in exceptional circumstances only.
func (db *DB) Gorm() *gorm.DB { return db.db }

// Query executes sql, binding params, and returns all rows it yields
// as column name to value mappings.
func (db *DB) Query(ctx context.Context, sql string, params ...any) ([]Row, error) {
	if err := db.valid(); err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := db.db.WithContext(ctx).Raw(sql, params...).Scan(&rows).Error; err != nil {
		return nil, translate(err)
	}

	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Row(r)
	}

	return out, nil
}

// Exec executes sql, binding params, and reports how many rows were affected.
func (db *DB) Exec(ctx context.Context, sql string, params ...any) (int64, error) {
	if err := db.valid(); err != nil {
		return 0, err
	}

	res := db.db.WithContext(ctx).Exec(sql, params...)
	if res.Error != nil {
		return 0, translate(res.Error)
	}

	return res.RowsAffected, nil
}

// Begin starts a transaction, returning a *DB bound to it.
// Finish the transaction with Commit or Rollback on the returned *DB.
func (db *DB) Begin(ctx context.Context) (*DB, error) {
	if err := db.valid(); err != nil {
		return nil, err
	}

	tx := db.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}

	return &DB{db: tx}, nil
}

// Commit commits the transaction begun with Begin.
func (db *DB) Commit() error {
	if err := db.valid(); err != nil {
		return err
	}

	if err := db.db.Commit().Error; err != nil {
		return translate(err)
	}

	return nil
}

// Rollback rolls back the transaction begun with Begin.
func (db *DB) Rollback() error {
	if err := db.valid(); err != nil {
		return err
	}

	if err := db.db.Rollback().Error; err != nil {
		return translate(err)
	}

	return nil
}

// Transaction calls fn with a *DB bound to a new transaction.
// The transaction commits if fn returns nil and rolls back otherwise,
// including when fn panics.
func (db *DB) Transaction(ctx context.Context, fn func(tx *DB) error) error {
	if err := db.valid(); err != nil {
		return err
	}

	return db.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DB{db: tx})
	})
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	if err := db.valid(); err != nil {
		return err
	}

	sqlDB, err := db.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %s", burrow.ErrUnexpected, err)
	}

	return sqlDB.Close()
}

func (db *DB) valid() error {
	if db == nil || db.db == nil {
		return fmt.Errorf("%w: a connection must be set up with Connect or NewDB before querying", burrow.ErrBadConfig)
	}

	return nil
}
