package model

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/xy-planning-network/burrow"
	"github.com/xy-planning-network/burrow/database"
)

const idColumn = "id"

// identRegex is the allow-list every table and column name must match
// before it is quoted into SQL text.
var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// A Store reads and writes entities of type E to a single table.
//
// Values are always bound as parameters.
// Table and column names are checked against an allow-list and quoted.
type Store[E Entity] struct {
	q     database.Querier
	table string
	newE  func() E
}

// NewStore constructs a *Store persisting to table through q.
// newE must return a fresh, non-nil E for every row read.
//
// NewStore fails with burrow.ErrBadConfig if table is not a plain identifier,
// or q or newE are nil.
func NewStore[E Entity](q database.Querier, table string, newE func() E) (*Store[E], error) {
	if q == nil || newE == nil {
		return nil, fmt.Errorf("%w: a Store requires a Querier and a constructor", burrow.ErrBadConfig)
	}

	if !identRegex.MatchString(table) {
		return nil, fmt.Errorf("%w: table name %q is not allowed", burrow.ErrBadConfig, table)
	}

	return &Store[E]{q: q, table: table, newE: newE}, nil
}

// Table returns the name of the table the *Store persists to.
func (s *Store[E]) Table() string { return s.table }

// With returns a copy of the *Store using q, such as a transaction begun with database.DB.Begin.
func (s *Store[E]) With(q database.Querier) *Store[E] {
	newS := *s
	newS.q = q
	return &newS
}

// Accept asserts v is a non-nil E.
// Use it to guard values whose type is only known at runtime.
func (s *Store[E]) Accept(v any) (E, error) {
	e, ok := v.(E)
	if !ok {
		var zero E
		return zero, fmt.Errorf("%w: %T does not belong to the %s table", burrow.ErrTypeMismatch, v, s.table)
	}

	if err := s.check(e); err != nil {
		return e, err
	}

	return e, nil
}

// GetByID fetches the row whose id is id.
// If there is none, GetByID returns an error wrapping burrow.ErrNotFound.
func (s *Store[E]) GetByID(ctx context.Context, id int64) (E, error) {
	list, err := s.fetch(ctx, fmt.Sprintf(`SELECT * FROM %s WHERE "id" = ? LIMIT 1`, quote(s.table)), id)
	if err != nil {
		var zero E
		return zero, err
	}

	if len(list) == 0 {
		var zero E
		return zero, fmt.Errorf("%w: no %s with id %d", burrow.ErrNotFound, s.table, id)
	}

	return list[0], nil
}

// GetAll fetches every row, ordered by id.
func (s *Store[E]) GetAll(ctx context.Context) ([]E, error) {
	return s.fetch(ctx, fmt.Sprintf(`SELECT * FROM %s ORDER BY "id" ASC`, quote(s.table)))
}

// Get fetches the rows whose ids are listed, ordered by id.
// Ids without a row are skipped.
// With no ids, Get fetches every row like GetAll.
func (s *Store[E]) Get(ctx context.Context, ids ...int64) ([]E, error) {
	if len(ids) == 0 {
		return s.GetAll(ctx)
	}

	return s.fetch(ctx, fmt.Sprintf(`SELECT * FROM %s WHERE "id" IN ? ORDER BY "id" ASC`, quote(s.table)), ids)
}

// GetLatest fetches up to n rows with the greatest ids, greatest first.
// An n less than 1 fetches 1.
func (s *Store[E]) GetLatest(ctx context.Context, n int) ([]E, error) {
	return s.fetch(ctx, fmt.Sprintf(`SELECT * FROM %s ORDER BY "id" DESC LIMIT ?`, quote(s.table)), max(n, 1))
}

// GetOldest fetches up to n rows with the least ids, least first.
// An n less than 1 fetches 1.
func (s *Store[E]) GetOldest(ctx context.Context, n int) ([]E, error) {
	return s.fetch(ctx, fmt.Sprintf(`SELECT * FROM %s ORDER BY "id" ASC LIMIT ?`, quote(s.table)), max(n, 1))
}

// Latest fetches the row with the greatest id.
// If the table is empty, Latest returns an error wrapping burrow.ErrNotFound.
func (s *Store[E]) Latest(ctx context.Context) (E, error) {
	return first(s.GetLatest(ctx, 1))
}

// Oldest fetches the row with the least id.
// If the table is empty, Oldest returns an error wrapping burrow.ErrNotFound.
func (s *Store[E]) Oldest(ctx context.Context) (E, error) {
	return first(s.GetOldest(ctx, 1))
}

// Has reports whether a row with the id of e exists.
func (s *Store[E]) Has(ctx context.Context, e E) (bool, error) {
	if err := s.check(e); err != nil {
		return false, err
	}

	return s.has(ctx, e.GetID())
}

// Add inserts every column of e but its id,
// returning the row the insert created.
func (s *Store[E]) Add(ctx context.Context, e E) (E, error) {
	var zero E
	if err := s.check(e); err != nil {
		return zero, err
	}

	cols, vals, err := s.columns(e)
	if err != nil {
		return zero, err
	}

	var sql string
	if len(cols) == 0 {
		sql = fmt.Sprintf(`INSERT INTO %s DEFAULT VALUES RETURNING "id"`, quote(s.table))
	} else {
		sql = fmt.Sprintf(
			`INSERT INTO %s (%s) VALUES (%s) RETURNING "id"`,
			quote(s.table),
			strings.Join(cols, ", "),
			strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "),
		)
	}

	rows, err := s.q.Query(ctx, sql, vals...)
	if err != nil {
		return zero, err
	}

	if len(rows) == 0 {
		return zero, fmt.Errorf("%w: insert into %s reported no id", burrow.ErrUnexpected, s.table)
	}

	id, err := rows[0].Int64(idColumn)
	if err != nil {
		return zero, err
	}

	return s.GetByID(ctx, id)
}

// Update writes every column of e but its id to the row with the id of e,
// returning the row as updated.
//
// If no such row exists, Update writes nothing and
// returns an error wrapping burrow.ErrNotExist.
func (s *Store[E]) Update(ctx context.Context, e E) (E, error) {
	var zero E
	if err := s.check(e); err != nil {
		return zero, err
	}

	cols, vals, err := s.columns(e)
	if err != nil {
		return zero, err
	}

	if err := s.mustExist(ctx, "update", e.GetID()); err != nil {
		return zero, err
	}

	if len(cols) > 0 {
		sets := make([]string, len(cols))
		for i, col := range cols {
			sets[i] = col + " = ?"
		}

		sql := fmt.Sprintf(`UPDATE %s SET %s WHERE "id" = ?`, quote(s.table), strings.Join(sets, ", "))
		if _, err := s.q.Exec(ctx, sql, append(vals, e.GetID())...); err != nil {
			return zero, err
		}
	}

	return s.GetByID(ctx, e.GetID())
}

// Delete removes the row with the id of e, returning e as it was passed in.
//
// If no such row exists, Delete writes nothing and
// returns an error wrapping burrow.ErrNotExist.
func (s *Store[E]) Delete(ctx context.Context, e E) (E, error) {
	var zero E
	if err := s.check(e); err != nil {
		return zero, err
	}

	if err := s.mustExist(ctx, "delete", e.GetID()); err != nil {
		return zero, err
	}

	if _, err := s.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE "id" = ?`, quote(s.table)), e.GetID()); err != nil {
		return zero, err
	}

	return e, nil
}

// DeleteAll removes every row, reporting how many there were.
func (s *Store[E]) DeleteAll(ctx context.Context) (int64, error) {
	return s.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, quote(s.table)))
}

// check guards against nil entities, which a type parameter cannot rule out.
func (s *Store[E]) check(e E) error {
	v := reflect.ValueOf(e)
	if !v.IsValid() {
		return fmt.Errorf("%w: nil entity passed for the %s table", burrow.ErrTypeMismatch, s.table)
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return fmt.Errorf("%w: nil %T passed for the %s table", burrow.ErrTypeMismatch, e, s.table)
		}
	}

	return nil
}

// columns deflates e into quoted column names and their values, sorted by name,
// leaving out the id.
func (s *Store[E]) columns(e E) ([]string, []any, error) {
	row := e.Deflate()
	names := make([]string, 0, len(row))
	for name := range row {
		if name == idColumn {
			continue
		}

		if !identRegex.MatchString(name) {
			return nil, nil, fmt.Errorf("%w: column name %q is not allowed", burrow.ErrBadConfig, name)
		}

		names = append(names, name)
	}

	slices.Sort(names)

	cols := make([]string, len(names))
	vals := make([]any, len(names))
	for i, name := range names {
		cols[i] = quote(name)
		vals[i] = row[name]
	}

	return cols, vals, nil
}

func (s *Store[E]) fetch(ctx context.Context, sql string, params ...any) ([]E, error) {
	rows, err := s.q.Query(ctx, sql, params...)
	if err != nil {
		return nil, err
	}

	list := make([]E, 0, len(rows))
	for _, row := range rows {
		e := s.newE()
		if err := e.Inflate(row); err != nil {
			return nil, fmt.Errorf("cannot inflate %s row: %w", s.table, err)
		}

		list = append(list, e)
	}

	return list, nil
}

func (s *Store[E]) has(ctx context.Context, id int64) (bool, error) {
	rows, err := s.q.Query(ctx, fmt.Sprintf(`SELECT "id" FROM %s WHERE "id" = ? LIMIT 1`, quote(s.table)), id)
	if err != nil {
		return false, err
	}

	return len(rows) > 0, nil
}

func (s *Store[E]) mustExist(ctx context.Context, op string, id int64) error {
	ok, err := s.has(ctx, id)
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("%w: cannot %s %s with id %d", burrow.ErrNotExist, op, s.table, id)
	}

	return nil
}

func first[E Entity](list []E, err error) (E, error) {
	var zero E
	if err != nil {
		return zero, err
	}

	if len(list) == 0 {
		return zero, fmt.Errorf("%w: no rows", burrow.ErrNotFound)
	}

	return list[0], nil
}

// quote wraps an allow-listed identifier in double quotes.
func quote(ident string) string { return `"` + ident + `"` }
