package database

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xy-planning-network/burrow"
)

// PostgreSQL error codes translated to sentinel errors.
//
// Cf., https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgSyntaxError         = "42601"
	pgInvalidText         = "22P02"
	pgUndefinedTable      = "42P01"
	pgUndefinedColumn     = "42703"
)

var (
	// These messages originate from SQLite, which reports no SQLSTATE.
	errSQLiteUniq       = regexp.MustCompile(`UNIQUE constraint failed`)
	errSQLiteConstraint = regexp.MustCompile(`(NOT NULL|FOREIGN KEY|CHECK) constraint failed`)
	errSQLiteSyntax     = regexp.MustCompile(`(syntax error|no such table|no such column|has no column)`)
)

// translate converts an error from the driver into a *burrow.Fault of kind burrow.KindStorage
// wrapping a burrow sentinel error:
//
//   - unique violations wrap burrow.ErrExists
//   - other constraint violations and malformed statements wrap burrow.ErrNotValid
//   - everything else wraps burrow.ErrUnexpected
func translate(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return storageFault(burrow.ErrExists, err)
		case pgNotNullViolation, pgForeignKeyViolation, pgSyntaxError, pgInvalidText, pgUndefinedTable, pgUndefinedColumn:
			return storageFault(burrow.ErrNotValid, err)
		default:
			return storageFault(burrow.ErrUnexpected, err)
		}
	}

	msg := err.Error()
	switch {
	case errSQLiteUniq.MatchString(msg):
		return storageFault(burrow.ErrExists, err)
	case errSQLiteConstraint.MatchString(msg), errSQLiteSyntax.MatchString(msg):
		return storageFault(burrow.ErrNotValid, err)
	default:
		return storageFault(burrow.ErrUnexpected, err)
	}
}

func storageFault(sentinel, err error) error {
	return &burrow.Fault{
		Kind:    burrow.KindStorage,
		Message: err.Error(),
		Err:     fmt.Errorf("%w: %s", sentinel, err),
	}
}
