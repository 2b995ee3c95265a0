package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/lifetracker/internal/logger"
)

var (
	// ErrNotFound is returned when a mutation or deletion target does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a business key is already taken
	ErrConflict = errors.New("conflict")
	// ErrValidation is returned when a request cannot be decoded or is malformed
	ErrValidation = errors.New("validation failed")
)

// Error pairs one of the sentinel kinds with a message that is safe to show
// to API clients.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// NotFound builds an ErrNotFound error with a client-facing message
func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

// Conflict builds an ErrConflict error with a client-facing message
func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

// Validation builds an ErrValidation error wrapping the decoding cause
func Validation(msg string, cause error) error {
	return &Error{Kind: ErrValidation, Message: msg, Err: cause}
}

// Detail returns the client-facing message of err, or fallback when err does
// not carry one.
func Detail(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Err != nil && errors.Is(e.Kind, ErrValidation) {
			return e.Error()
		}
		return e.Message
	}
	return fallback
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
