package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used for classification with errors.Is.
// Each concrete error type below unwraps to exactly one of these,
// which lets the transport layer map failures to response codes
// without knowing the concrete types.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrForbidden         = errors.New("operation is forbidden")
	ErrConflict          = errors.New("conflict")
	ErrExternalService   = errors.New("external service failed")
)

// sanitize removes newlines from values interpolated into error messages
// so a single error always renders as a single log line.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError indicates that no object matches the given identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a provided value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a numeric value is outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without a cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(paramName string, value, minValue, maxValue any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, sanitize(e.Cause))
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ForbiddenError indicates that the acting role is not permitted to perform an action.
type ForbiddenError struct {
	Role   string
	Action string
	Cause  error
}

// NewForbiddenError creates a ForbiddenError without a cause.
func NewForbiddenError(role, action string) *ForbiddenError {
	return &ForbiddenError{Role: role, Action: action}
}

func (e *ForbiddenError) Error() string {
	msg := fmt.Sprintf("%s: %s is not allowed to %s", ErrForbidden, e.Role, sanitize(e.Action))
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, sanitize(e.Cause))
	}
	return msg
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// ConflictError indicates that an operation could not complete because of a
// uniqueness or state conflict, such as exhausting tracking number retries.
type ConflictError struct {
	ParamName string
	Cause     error
}

// NewConflictError creates a ConflictError without a cause.
func NewConflictError(paramName string) *ConflictError {
	return &ConflictError{ParamName: paramName}
}

// NewConflictErrorWithCause creates a ConflictError wrapping an underlying cause.
func NewConflictErrorWithCause(paramName string, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrConflict, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrConflict, e.ParamName)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ExternalServiceError indicates that an external collaborator was unreachable
// or returned malformed data.
type ExternalServiceError struct {
	Service string
	Cause   error
}

// NewExternalServiceError creates an ExternalServiceError wrapping an underlying cause.
func NewExternalServiceError(service string, cause error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Cause: cause}
}

func (e *ExternalServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrExternalService, e.Service, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrExternalService, e.Service)
}

func (e *ExternalServiceError) Unwrap() error {
	return ErrExternalService
}
