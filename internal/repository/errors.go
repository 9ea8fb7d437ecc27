// Package repository defines error types that are reused across
// multiple repositories. These sentinel values allow higher layers
// such as handlers to distinguish between different failure
// scenarios: ErrLockHeld signals that another moderator already holds
// the editing claim on an advert, ErrDuplicateDonorURL that an
// ingested advert was already stored, and ErrNotFound that a
// referenced entity does not exist.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a referenced entity is absent.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrLockHeld is returned when a lock acquisition loses the race
// against another user's claim on the same advert. Handlers translate
// this into a user-facing conflict message, not a transport error.
var ErrLockHeld = errors.New("advert already in work")

// ErrDuplicateDonorURL is returned when an ingested advert collides
// with an existing donor_url. The dedupe key is a unique constraint.
var ErrDuplicateDonorURL = errors.New("donor url already exists")

// ErrConflict is returned when an update cannot proceed because of
// conflicting state. Handlers should translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// isDuplicateKey reports whether err is a MySQL 1062 duplicate-entry
// error. Matching the code in the message avoids a hard dependency on
// the driver's error type in every repository.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
