package domain

import "fmt"

// ValidationError is an advisory, user-facing rejection. It is never a fault.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	ErrBlankInput = &ValidationError{
		Code:    "BLANK_INPUT",
		Message: "Enter a phone number before calling.",
	}
	ErrInvalidFormat = &ValidationError{
		Code:    "INVALID_FORMAT",
		Message: "Enter a valid phone number format.",
	}
)
