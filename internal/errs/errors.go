package errs

import (
	"errors"
	"fmt"
)

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	ErrInvalid  = errors.New("invalid")
	// ErrConflict is returned when a write would break a uniqueness rule.
	ErrConflict  = errors.New("conflict")
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthenticated signals a credential mismatch at login.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// NotFoundError names the entity type and lookup key that produced no row.
// Relation is set when the missing entity was referenced by another one
// (a foreign id in a request body) rather than addressed directly.
type NotFoundError struct {
	Entity   string
	Key      string
	Relation bool
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s could not be found!", e.Entity, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Missing builds a NotFoundError for a direct lookup.
func Missing(entity string, key any) error {
	return &NotFoundError{Entity: entity, Key: fmt.Sprint(key)}
}

// Unresolved builds a NotFoundError for a referenced entity.
func Unresolved(entity string, key any) error {
	return &NotFoundError{Entity: entity, Key: fmt.Sprint(key), Relation: true}
}

// Invalid wraps ErrInvalid with a human readable detail.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Conflict wraps ErrConflict with a human readable detail.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// IsNotFound reports whether err signals a missing entity.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
