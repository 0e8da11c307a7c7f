package port

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by repository primitives that target a missing
	// row. The use case recovers it into a nil or false result.
	ErrNotFound = errors.New("not found")

	// ErrReferentialViolation marks a create or update whose parent id does
	// not resolve, or resolves to a deleted parent.
	ErrReferentialViolation = errors.New("referential violation")

	// ErrStillReferenced is returned when a hard delete is refused because
	// child rows still point at the row.
	ErrStillReferenced = fmt.Errorf("still referenced by child rows: %w", ErrReferentialViolation)

	// ErrInvalidTransition marks a status change the lifecycle does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrValidation marks malformed input rejected at the transport boundary.
	ErrValidation = errors.New("validation failure")
)

// ReferenceError describes a parent reference that could not be honoured.
type ReferenceError struct {
	Entity   string // entity being written, e.g. "ad set"
	Parent   string // parent entity, e.g. "campaign"
	ParentID int64
	Reason   string // "not found" or "deleted"
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: %s with id %d %s", e.Entity, e.Parent, e.ParentID, e.Reason)
}

// Is lets errors.Is(err, ErrReferentialViolation) match.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrReferentialViolation
}

// MissingParent builds the error returned when a parent id does not exist.
func MissingParent(entity, parent string, id int64) error {
	return &ReferenceError{Entity: entity, Parent: parent, ParentID: id, Reason: "not found"}
}

// DeletedParent builds the error returned when a parent is soft-deleted.
func DeletedParent(entity, parent string, id int64) error {
	return &ReferenceError{Entity: entity, Parent: parent, ParentID: id, Reason: "is deleted"}
}

// Kind classifies the outcome of a store operation.
type Kind int

const (
	KindOK Kind = iota
	KindNotFound
	KindReferentialViolation
	KindInvalidTransition
	KindValidation
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindNotFound:
		return "not_found"
	case KindReferentialViolation:
		return "referential_violation"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindValidation:
		return "validation_failure"
	default:
		return "storage_failure"
	}
}

// KindOf maps an error returned by the store to its Kind. Anything not
// recognised is a storage failure.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrReferentialViolation):
		return KindReferentialViolation
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrValidation):
		return KindValidation
	default:
		return KindStorage
	}
}
