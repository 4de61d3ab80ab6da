// Package errors provides the engine's error taxonomy: a single AppError
// type carrying a Code, so callers (and the CLI exit-status mapping) can
// branch on failure class without string matching.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a failure. The five solve-facing codes map directly to
// spec.md §7; the rest support boundary parsing and persistence.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL_ERROR"

	// InputError: the team, calendar, or config failed validation before
	// a solve was ever attempted (bad CSV, duplicate names, horizon out
	// of 1..24, contradictory constraints on a single person).
	CodeInputError Code = "INPUT_ERROR"

	// Infeasible: every seeded attempt exhausted its budget without
	// finding a schedule satisfying all hard constraints H1-H6.
	CodeInfeasible Code = "INFEASIBLE"

	// Timeout: the driver's overall deadline elapsed before any attempt
	// converged.
	CodeTimeout Code = "TIMEOUT"

	// SolverError: an internal invariant broke during solving (a bug, not
	// a property of the input) — distinct from Infeasible.
	CodeSolverError Code = "SOLVER_ERROR"

	// Cancelled: the caller's context was cancelled mid-solve.
	CodeCancelled Code = "CANCELLED"

	CodeConstraintViolation Code = "CONSTRAINT_VIOLATION"
	CodeScheduleConflict    Code = "SCHEDULE_CONFLICT"
	CodeDatabaseError       Code = "DATABASE_ERROR"
	CodeValidationFail      Code = "VALIDATION_FAILED"
)

// AppError is the engine's single error type.
type AppError struct {
	Code       Code                   `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	HTTPStatus int                    `json:"-"`
	Cause      error                  `json:"-"`
	Fields     map[string]interface{} `json:"fields,omitempty"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithField(key string, value interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// New creates an AppError with the given code and message.
func New(code Code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// codeToHTTPStatus is kept for parity with the teacher's API surface even
// though the CLI's own exit-status mapping (cmd/rosterctl) is what spec.md
// §6.4 actually governs.
func codeToHTTPStatus(code Code) int {
	switch code {
	case CodeInputError, CodeValidationFail:
		return http.StatusBadRequest
	case CodeScheduleConflict:
		return http.StatusConflict
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeInfeasible:
		return http.StatusUnprocessableEntity
	case CodeCancelled:
		return 499
	default:
		return http.StatusInternalServerError
	}
}

// Is reports whether err is an AppError with the given code.
func Is(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the Code from err, or CodeUnknown if err is not an
// AppError.
func GetCode(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetHTTPStatus extracts the HTTP status from err, or 500.
func GetHTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

var (
	ErrInternal   = New(CodeInternal, "internal error")
	ErrTimeout    = New(CodeTimeout, "solve deadline exceeded")
	ErrInfeasible = New(CodeInfeasible, "no feasible schedule found")
	ErrCancelled  = New(CodeCancelled, "solve cancelled")
)

// InputError creates a CodeInputError AppError for a named field.
func InputError(field, reason string) *AppError {
	return New(CodeInputError, fmt.Sprintf("field %q invalid: %s", field, reason))
}

// Infeasible creates a CodeInfeasible AppError.
func Infeasible(reason string) *AppError {
	return New(CodeInfeasible, reason)
}

// SolverError creates a CodeSolverError AppError — an internal invariant
// broke during solving, not a property of the input.
func SolverError(reason string) *AppError {
	return New(CodeSolverError, reason)
}

// ConstraintViolation creates a CodeConstraintViolation AppError.
func ConstraintViolation(constraint, details string) *AppError {
	return New(CodeConstraintViolation, fmt.Sprintf("violated %q: %s", constraint, details))
}

// ScheduleConflict creates a CodeScheduleConflict AppError.
func ScheduleConflict(person, position, details string) *AppError {
	return New(CodeScheduleConflict, fmt.Sprintf("%s at %s: %s", person, position, details))
}

// ValidationErrors collects one or more field-level validation failures.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// ValidationError is a single field-level failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (ve *ValidationErrors) Error() string {
	if len(ve.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s - %s", ve.Errors[0].Field, ve.Errors[0].Message)
}

// Add appends a field-level failure.
func (ve *ValidationErrors) Add(field, message string) {
	ve.Errors = append(ve.Errors, ValidationError{Field: field, Message: message})
}

// HasErrors reports whether any failure was added.
func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Errors) > 0
}

// ToAppError converts the collected failures into one CodeInputError
// AppError, keyed by field in Fields.
func (ve *ValidationErrors) ToAppError() *AppError {
	err := New(CodeInputError, "validation failed")
	err.Fields = make(map[string]interface{})
	for _, e := range ve.Errors {
		err.Fields[e.Field] = e.Message
	}
	return err
}
