// Code in this package follows the shape sqlc generates from db/query/*.sql
// against db/migration/*.sql: a DBTX-backed Queries struct implementing
// Querier, hand-maintained here because the SQL sources are simple enough
// not to warrant running the generator.
package sqlc

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, matching sqlc's generated
// interface so Queries can run inside or outside a transaction.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

// New wraps a DBTX in a Queries, the sqlc-generated entry point.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}
