// Package policy is the single source of truth for row-level access control
// over the shared ledger. Every rule is a pure function of the caller's
// identity and the row under evaluation, mirroring the USING / WITH CHECK
// split of the database policies installed by db.InstallPolicies: Allows
// evaluates the existing row a statement touches, Checks evaluates the row a
// statement would produce. The store consults this package on every
// operation; the database enforces the same table independently.
package policy

import "github.com/duopot/duopot/internal/models"

// Identity is the authenticated caller, threaded explicitly into every
// store-facing operation. The zero value is the unauthenticated caller.
type Identity struct {
	UserID uint
}

// Anonymous is the identity of an unauthenticated caller. Every operation
// is denied for it.
var Anonymous = Identity{}

func (i Identity) Authenticated() bool {
	return i.UserID != 0
}

// Operation is a row-level statement kind, named after the SQL it guards.
type Operation int

const (
	OpSelect Operation = iota
	OpInsert
	OpUpdate
	OpDelete
)

func (op Operation) String() string {
	switch op {
	case OpSelect:
		return "select"
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

// AllowsProfile reports whether id may perform op against an existing
// profile row. Profiles are readable by any authenticated caller (the ledger
// is shared between its two parties); mutation requires ownership, and
// delete is never granted at the application surface (rows leave only by
// cascade when the account itself is removed).
func AllowsProfile(id Identity, op Operation, row models.Profile) bool {
	if !id.Authenticated() {
		return false
	}
	switch op {
	case OpSelect:
		return true
	case OpUpdate:
		return row.ID == id.UserID
	default:
		return false
	}
}

// ChecksProfile reports whether id may produce the given profile row via op.
// A profile may only ever be written carrying the caller's own id, so a row
// can neither be created for someone else nor reassigned to someone else.
func ChecksProfile(id Identity, op Operation, row models.Profile) bool {
	if !id.Authenticated() {
		return false
	}
	switch op {
	case OpInsert, OpUpdate:
		return row.ID == id.UserID
	default:
		return false
	}
}

// AllowsSaving reports whether id may perform op against an existing saving
// row. Reads are shared; update and delete require ownership of the row.
func AllowsSaving(id Identity, op Operation, row models.Saving) bool {
	if !id.Authenticated() {
		return false
	}
	switch op {
	case OpSelect:
		return true
	case OpUpdate, OpDelete:
		return row.UserID == id.UserID
	default:
		return false
	}
}

// ChecksSaving reports whether id may produce the given saving row via op:
// the contributor column must always be the caller itself.
func ChecksSaving(id Identity, op Operation, row models.Saving) bool {
	if !id.Authenticated() {
		return false
	}
	switch op {
	case OpInsert, OpUpdate:
		return row.UserID == id.UserID
	default:
		return false
	}
}
