package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Errors every repository implementation reports in place of driver errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	// ErrConflict covers writes the schema rejects: dangling broker
	// references, out-of-range values and stale status updates.
	ErrConflict = errors.New("conflict")
)

// MapPgError turns driver errors the services act on into the errors
// above. Anything else is returned as is so callers can still wrap it.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return ErrAlreadyExists
	case pgerrcode.ForeignKeyViolation,
		pgerrcode.CheckViolation,
		pgerrcode.RestrictViolation,
		pgerrcode.ExclusionViolation:
		return ErrConflict
	}
	return err
}
