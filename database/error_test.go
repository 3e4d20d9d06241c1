package database

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/burrow"
)

func TestTranslate(t *testing.T) {
	tcs := []struct {
		name     string
		err      error
		expected error
	}{
		{"pg-unique", &pgconn.PgError{Code: "23505"}, burrow.ErrExists},
		{"pg-fk", &pgconn.PgError{Code: "23503"}, burrow.ErrNotValid},
		{"pg-not-null", &pgconn.PgError{Code: "23502"}, burrow.ErrNotValid},
		{"pg-syntax", &pgconn.PgError{Code: "42601"}, burrow.ErrNotValid},
		{"pg-text", &pgconn.PgError{Code: "22P02"}, burrow.ErrNotValid},
		{"pg-other", &pgconn.PgError{Code: "53300"}, burrow.ErrUnexpected},
		{"sqlite-unique", errors.New("constraint failed: UNIQUE constraint failed: notes.title (2067)"), burrow.ErrExists},
		{"sqlite-fk", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), burrow.ErrNotValid},
		{"sqlite-syntax", errors.New(`SQL logic error: near "SELEC": syntax error (1)`), burrow.ErrNotValid},
		{"other", errors.New("connection reset"), burrow.ErrUnexpected},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			actual := translate(tc.err)
			require.ErrorIs(t, actual, tc.expected)

			f := burrow.AsFault(actual)
			require.Equal(t, burrow.KindStorage, f.Kind)
		})
	}

	require.Nil(t, translate(nil))
}
