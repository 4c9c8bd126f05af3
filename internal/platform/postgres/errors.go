package postgres

import (
	"errors"
	"strings"

	"github.com/ecomstack/account-api/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const pgUniqueViolationCode = "23505"

// Constraint names created by the accounts table migration.
const (
	usernameUniqueConstraint = "accounts_username_key"
	emailUniqueConstraint    = "accounts_email_key"
)

// mapUniqueViolation translates a PostgreSQL unique constraint violation
// into the corresponding store error. This is the backstop for concurrent
// writers: the service layer pre-checks uniqueness, but only the database
// constraint can reject a racing duplicate insert, and callers must see
// the same typed error either way.
//
// Returns nil if the error is not a unique violation.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolationCode {
		return nil
	}

	switch {
	case pgErr.ConstraintName == usernameUniqueConstraint,
		strings.Contains(pgErr.ConstraintName, "username"):
		return store.ErrUsernameExists
	case pgErr.ConstraintName == emailUniqueConstraint,
		strings.Contains(pgErr.ConstraintName, "email"):
		return store.ErrEmailExists
	default:
		return store.ErrDuplicate
	}
}
