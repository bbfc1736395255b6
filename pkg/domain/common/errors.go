// Package common defines the error kinds shared across the domain.
// Services wrap these sentinels with context via %w; the HTTP layer maps
// each kind to a status code and everything unclassified to a 500.
package common

import "errors"

var (
	// ErrNotFound marks a lookup for a resource that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks an operation colliding with existing state, such
	// as a duplicate email or an already submitted registration.
	ErrConflict = errors.New("conflict")

	// ErrPreconditionFailed marks a lifecycle transition attempted from
	// the wrong state.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrValidation marks input that fails a business rule.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthenticated marks a missing or unusable identity: bad
	// credentials, or a token whose account no longer exists.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden marks an authenticated caller lacking the role or
	// capability an operation requires.
	ErrForbidden = errors.New("forbidden")
)
