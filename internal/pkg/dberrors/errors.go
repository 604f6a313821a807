package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const codeUndefinedTable = "42P01"

// IsUndefinedTable reports whether err is PostgreSQL's undefined_table error,
// which means the migrations have not run
func IsUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUndefinedTable
}
