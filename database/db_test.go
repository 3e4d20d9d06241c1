package database_test

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xy-planning-network/burrow"
	"github.com/xy-planning-network/burrow/database"
	"github.com/xy-planning-network/burrow/logger"
)

const schema = `CREATE TABLE "notes" (
	"id" INTEGER PRIMARY KEY AUTOINCREMENT,
	"title" TEXT NOT NULL UNIQUE,
	"body" TEXT
)`

type DBTestSuite struct {
	suite.Suite

	ctx context.Context
	db  *database.DB
}

func TestDBTestSuite(t *testing.T) {
	suite.Run(t, new(DBTestSuite))
}

func (s *DBTestSuite) SetupTest() {
	var err error
	l := logger.New(logger.WithLogger(log.New(io.Discard, "", 0)))

	s.ctx = context.Background()
	s.db, err = database.Connect(database.CxnConfig{Driver: database.DriverSQLite}, burrow.Testing, l)
	s.Require().Nil(err)

	_, err = s.db.Exec(s.ctx, schema)
	s.Require().Nil(err)
}

func (s *DBTestSuite) TearDownTest() {
	s.Require().Nil(s.db.Close())
}

func (s *DBTestSuite) TestQueryExec() {
	// Arrange
	n, err := s.db.Exec(s.ctx, `INSERT INTO "notes" ("title", "body") VALUES (?, ?), (?, ?)`, "first", "hello", "second", nil)
	s.Require().Nil(err)
	s.Require().EqualValues(2, n)

	// Act
	rows, err := s.db.Query(s.ctx, `SELECT * FROM "notes" ORDER BY "id" ASC`)

	// Assert
	s.Require().Nil(err)
	s.Require().Len(rows, 2)

	id, err := rows[0].Int64("id")
	s.Require().Nil(err)
	s.Require().EqualValues(1, id)

	title, err := rows[1].String("title")
	s.Require().Nil(err)
	s.Require().Equal("second", title)

	body, err := rows[1].String("body")
	s.Require().Nil(err)
	s.Require().Equal("", body)
}

func (s *DBTestSuite) TestQueryNoRows() {
	rows, err := s.db.Query(s.ctx, `SELECT * FROM "notes" WHERE "id" = ?`, 42)
	s.Require().Nil(err)
	s.Require().Empty(rows)
}

func (s *DBTestSuite) TestQueryReturning() {
	rows, err := s.db.Query(s.ctx, `INSERT INTO "notes" ("title") VALUES (?) RETURNING "id"`, "returned")
	s.Require().Nil(err)
	s.Require().Len(rows, 1)

	id, err := rows[0].Int64("id")
	s.Require().Nil(err)
	s.Require().EqualValues(1, id)
}

func (s *DBTestSuite) TestTransaction() {
	// Act
	err := s.db.Transaction(s.ctx, func(tx *database.DB) error {
		_, err := tx.Exec(s.ctx, `INSERT INTO "notes" ("title") VALUES (?)`, "kept")
		return err
	})
	s.Require().Nil(err)

	err = s.db.Transaction(s.ctx, func(tx *database.DB) error {
		if _, err := tx.Exec(s.ctx, `INSERT INTO "notes" ("title") VALUES (?)`, "dropped"); err != nil {
			return err
		}

		return burrow.ErrHalt
	})
	s.Require().ErrorIs(err, burrow.ErrHalt)

	// Assert
	rows, err := s.db.Query(s.ctx, `SELECT "title" FROM "notes"`)
	s.Require().Nil(err)
	s.Require().Len(rows, 1)

	title, err := rows[0].String("title")
	s.Require().Nil(err)
	s.Require().Equal("kept", title)
}

func (s *DBTestSuite) TestBeginCommitRollback() {
	tx, err := s.db.Begin(s.ctx)
	s.Require().Nil(err)

	_, err = tx.Exec(s.ctx, `INSERT INTO "notes" ("title") VALUES (?)`, "rolled back")
	s.Require().Nil(err)
	s.Require().Nil(tx.Rollback())

	tx, err = s.db.Begin(s.ctx)
	s.Require().Nil(err)

	_, err = tx.Exec(s.ctx, `INSERT INTO "notes" ("title") VALUES (?)`, "committed")
	s.Require().Nil(err)
	s.Require().Nil(tx.Commit())

	rows, err := s.db.Query(s.ctx, `SELECT "title" FROM "notes"`)
	s.Require().Nil(err)
	s.Require().Len(rows, 1)

	title, err := rows[0].String("title")
	s.Require().Nil(err)
	s.Require().Equal("committed", title)
}

func (s *DBTestSuite) TestTranslatedErrors() {
	_, err := s.db.Exec(s.ctx, `INSERT INTO "notes" ("title") VALUES (?)`, "dup")
	s.Require().Nil(err)

	tcs := []struct {
		name     string
		sql      string
		params   []any
		expected error
	}{
		{"unique", `INSERT INTO "notes" ("title") VALUES (?)`, []any{"dup"}, burrow.ErrExists},
		{"not-null", `INSERT INTO "notes" ("body") VALUES (?)`, []any{"no title"}, burrow.ErrNotValid},
		{"syntax", `SELEC 1`, nil, burrow.ErrNotValid},
		{"no-table", `SELECT * FROM "missing"`, nil, burrow.ErrNotValid},
	}

	for _, tc := range tcs {
		s.Run(tc.name, func() {
			_, err := s.db.Exec(s.ctx, tc.sql, tc.params...)
			s.Require().ErrorIs(err, tc.expected)

			var f *burrow.Fault
			s.Require().True(errors.As(err, &f))
			s.Require().Equal(burrow.KindStorage, f.Kind)
			s.Require().Equal(500, f.Status())
		})
	}
}

func TestNoConnection(t *testing.T) {
	ctx := context.Background()

	var db *database.DB
	_, err := db.Query(ctx, "SELECT 1")
	require.ErrorIs(t, err, burrow.ErrBadConfig)

	_, err = database.NewDB(nil).Exec(ctx, "SELECT 1")
	require.ErrorIs(t, err, burrow.ErrBadConfig)

	err = db.Transaction(ctx, func(*database.DB) error { return nil })
	require.ErrorIs(t, err, burrow.ErrBadConfig)
}

func TestConnectUnknownDriver(t *testing.T) {
	_, err := database.Connect(database.CxnConfig{Driver: "oracle"}, burrow.Testing, nil)
	require.ErrorIs(t, err, burrow.ErrBadConfig)
}
