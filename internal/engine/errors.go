package engine

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or missing input. The engine state is
// untouched when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError reports a booking overlap on a specific device or cable,
// or an attempt to remove a resource that is still reserved.
type ConflictError struct {
	Resource      string // "holter" or "cable"
	ResourceID    string
	AppointmentID string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("%s %s is already reserved by appointment %s for an overlapping period",
		e.Resource, e.ResourceID, e.AppointmentID)
}

// NotFoundError reports an operation that referenced a nonexistent record.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce ConflictError
	return errors.As(err, &ce)
}

func IsNotFound(err error) bool {
	var ne NotFoundError
	return errors.As(err, &ne)
}
