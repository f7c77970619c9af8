package store

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

var (
	// ErrDenied is returned when a write fails the policy check before it
	// reaches the database. Callers must treat it as "the operation did not
	// happen"; it carries no detail about why.
	ErrDenied = errors.New("operation rejected")

	// ErrInvalidAmount is returned for a contribution that is not strictly
	// positive, matching the check constraint on savings.amount.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrConstraint wraps any other database constraint violation (foreign
	// key, duplicate key). Like ErrDenied it is opaque to callers.
	ErrConstraint = errors.New("constraint violation")
)

// Postgres error classes folded into the store's error surface.
const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
	pqCheckViolation      = "23514"
	pqRowSecurityDenied   = "42501"
)

// wrapWriteError maps database-level rejections onto the store's small error
// surface. Row-security denials from Postgres fold into ErrDenied so the
// in-database enforcement reads the same as the in-process one. SQLite (the
// test database) only reports constraint failures by message, so those are
// matched by text.
func wrapWriteError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqCheckViolation:
			return ErrInvalidAmount
		case pqForeignKeyViolation, pqUniqueViolation:
			return ErrConstraint
		case pqRowSecurityDenied:
			return ErrDenied
		}
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "CHECK constraint failed"):
		return ErrInvalidAmount
	case strings.Contains(msg, "constraint failed"),
		strings.Contains(msg, "constraint violation"):
		return ErrConstraint
	}

	return err
}
