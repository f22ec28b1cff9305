// Package apperrors holds the typed errors returned by the scoring core.
// Every error carries the constraint that was violated.
package apperrors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeNotFound         Code = "NOT_FOUND"
	CodeValidation       Code = "VALIDATION_ERROR"
	CodeApprovalMismatch Code = "APPROVAL_MISMATCH"
	CodeUnknown          Code = "UNKNOWN"
)

// Coded is implemented by every error in this package.
type Coded interface {
	error
	Code() Code
}

// PermissionDenied is returned when the role gate refuses an action.
type PermissionDenied struct {
	Reason string // insufficient-role, not-approved, club-mismatch, unauthenticated
	Action string
}

func (e *PermissionDenied) Error() string {
	if e.Action == "" {
		return fmt.Sprintf("permission denied: %s", e.Reason)
	}
	return fmt.Sprintf("permission denied for %s: %s", e.Action, e.Reason)
}

func (e *PermissionDenied) Code() Code { return CodePermissionDenied }

// NotFound is returned when a referenced entity does not exist.
type NotFound struct {
	Entity string
	ID     string
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFound) Code() Code { return CodeNotFound }

// Validation is returned when an input violates a field constraint.
type Validation struct {
	Field      string
	Constraint string
}

func (e *Validation) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Constraint)
}

func (e *Validation) Code() Code { return CodeValidation }

// ApprovalMismatch is returned when a club tries to approve a gymnast
// affiliated with a different club.
type ApprovalMismatch struct {
	ExpectedClub string
}

func (e *ApprovalMismatch) Error() string {
	return fmt.Sprintf("approval requires club %q", e.ExpectedClub)
}

func (e *ApprovalMismatch) Code() Code { return CodeApprovalMismatch }

// NewNotFound builds a NotFound error.
func NewNotFound(entity, id string) error {
	return &NotFound{Entity: entity, ID: id}
}

// NewValidation builds a Validation error.
func NewValidation(field, constraint string) error {
	return &Validation{Field: field, Constraint: constraint}
}

// CodeOf returns the code of the first coded error in err's chain.
func CodeOf(err error) Code {
	var coded Coded
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return CodeUnknown
}

// IsNotFound reports whether err wraps a NotFound error.
func IsNotFound(err error) bool {
	var nf *NotFound
	return errors.As(err, &nf)
}
