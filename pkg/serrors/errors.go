package serrors

import "fmt"

// BaseError is a coded error shared across modules. Code is stable and safe to
// match on; Message is for operators, not end users.
type BaseError struct {
	Code    string
	Message string
	Details string
}

func NewError(code, message, details string) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

func (e *BaseError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
}

func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// ValidationErrors maps struct field names to coded errors.
type ValidationErrors map[string]*BaseError

func NewFieldRequiredError(field string) *BaseError {
	return NewError("FIELD_REQUIRED", fmt.Sprintf("field %q is required", field), "")
}

func NewInvalidFieldError(field, reason string) *BaseError {
	return NewError("FIELD_INVALID", fmt.Sprintf("field %q is invalid", field), reason)
}
