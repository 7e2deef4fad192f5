// Package dbx provides tiny DB helpers shared by the PostgreSQL repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx, and
// classification of driver errors and identifiers.
package dbx

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err carries a PostgreSQL unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// IsUUID reports whether id can be compared against a uuid column.
// Anything else would make PostgreSQL fail the whole statement.
func IsUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
