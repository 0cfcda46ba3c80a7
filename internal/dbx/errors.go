package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE of unique_violation.
const pgUniqueViolation = "23505"

// UniqueViolation reports whether err is a Postgres unique violation and
// returns the name of the violated constraint or index.
func UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// NullIfEmpty maps "" to SQL NULL for optional text and uuid columns.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
