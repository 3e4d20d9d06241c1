/*
Package database manages the connection an app shares between its models.

[Connect] opens a PostgreSQL or SQLite connection through GORM.
[*DB] executes raw, parameterized SQL with [*DB.Query] and [*DB.Exec],
returning rows as [Row] mappings, and controls transactions with
[*DB.Begin], [*DB.Commit], [*DB.Rollback] and [*DB.Transaction].

Driver errors are translated into burrow sentinel errors:
unique violations wrap burrow.ErrExists,
other constraint violations and malformed statements wrap burrow.ErrNotValid,
and everything else wraps burrow.ErrUnexpected.

The [Querier] interface lets callers, like package model, be tested without a database.
*/
package database
