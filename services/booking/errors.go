package booking

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("booking record not found")

type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("booking record %q not found", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InvalidAuditError rejects an audit entry the boundary should not have built.
type InvalidAuditError struct {
	Field   string
	Message string
}

func (e *InvalidAuditError) Error() string {
	return fmt.Sprintf("invalid audit entry %s: %s", e.Field, e.Message)
}

// InvalidStatusError rejects a status outside the known lifecycle.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("unknown booking status %q", e.Status)
}

// InvariantViolation signals a store defect such as a trail that went backwards in time.
type InvariantViolation struct {
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("booking store invariant violated: %s", e.Detail)
}
