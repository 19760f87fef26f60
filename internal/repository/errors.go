package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// TransportError wraps a database/network failure. Retrying is left to the
// user (manual refresh); nothing retries automatically.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError reports payload problems (missing required fields,
// out-of-enum values). The write is blocked before reaching the database.
type ValidationError struct {
	Entity   string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s payload: %s", e.Entity, strings.Join(e.Problems, "; "))
}

// NotFoundError means the record id no longer exists, a distinct outcome from
// a transport failure (typically a concurrent delete).
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %d no longer exists", e.Entity, e.ID) }

// ConflictError reports a write blocked by a referential or uniqueness
// constraint. Reason is user-facing.
type ConflictError struct {
	Entity string
	ID     uint
	Reason string
}

func (e *ConflictError) Error() string { return fmt.Sprintf("%s %d: %s", e.Entity, e.ID, e.Reason) }

// PartialFailureError reports a two-sided relation write whose second half
// failed after the first committed, leaving the mirror inconsistent.
// CompletedSide names the side that did commit so an operator can reconcile.
type PartialFailureError struct {
	CompletedSide string
	Err           error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("inconsistent assignment: %s side committed, mirror write failed: %v", e.CompletedSide, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

// Postgres error codes surfaced through lib/pq.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps a gorm error to the taxonomy. ErrRecordNotFound becomes
// NotFoundError, constraint violations become ConflictError, anything else is
// a TransportError.
func translate(entity string, id uint, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &ConflictError{Entity: entity, ID: id, Reason: "duplicate value: " + pgErr.Detail}
		case pgForeignKeyViolation:
			return &ConflictError{Entity: entity, ID: id, Reason: "still referenced by other records"}
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &ConflictError{Entity: entity, ID: id, Reason: "duplicate value"}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &ConflictError{Entity: entity, ID: id, Reason: "still referenced by other records"}
	}
	return &TransportError{Op: op, Err: err}
}
