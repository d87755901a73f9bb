package domain

import (
	"errors"
	"fmt"
	"strings"
)

func transitionError(entity, from, to string) error {
	return fmt.Errorf("%w: %s %s -> %s", ErrIllegalTransition, entity, from, to)
}

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrInvalidInput   = errors.New("invalid input")
)

// Workflow errors
var (
	ErrIllegalTransition  = errors.New("illegal status transition")
	ErrReportNotEditable  = errors.New("report is not editable in its current status")
	ErrReportNotDeletable = errors.New("report is not deletable in its current status")
	ErrRejectionReason    = errors.New("rejection reason is required")
	ErrTaskCompleted      = errors.New("task is already completed")
	ErrTaskCancelled      = errors.New("task is already cancelled")
	ErrProgressRange      = errors.New("progress must be between 0 and 100")
)

// FieldError describes a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every rule violation found on an entity so
// callers can show all problems at once instead of the first one.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// AsValidationErrors unwraps err into ValidationErrors if it carries any.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
