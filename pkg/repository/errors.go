package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// Errors names the domain errors that database errors translate to.
// A nil field leaves the matching database error unchanged.
type Errors struct {
	NotFound  error
	Duplicate error
	Invalid   error
}

// MapError translates database errors to domain errors.
// sql.ErrNoRows maps to NotFound, a PostgreSQL unique violation (23505) to
// Duplicate, and a check constraint violation (23514) to Invalid.
// Other errors are returned unchanged.
func MapError(err error, domain Errors) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) && domain.NotFound != nil {
		return domain.NotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation && domain.Duplicate != nil:
			return domain.Duplicate
		case pgErr.Code == pgCheckViolation && domain.Invalid != nil:
			return domain.Invalid
		}
	}

	return err
}
