package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "taxonomy error",
			err:      NotFound("Task not found"),
			expected: "Error: Task not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"not found", NotFound("missing"), ErrNotFound},
		{"conflict", Conflict("taken"), ErrConflict},
		{"validation", Validation("bad body", errors.New("eof")), ErrValidation},
		{"wrapped not found", fmt.Errorf("update: %w", NotFound("missing")), ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.kind)
			}
		})
	}
}

func TestValidationUnwrapsCause(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Validation("invalid request body", cause)
	if !errors.Is(err, cause) {
		t.Error("validation error does not unwrap to its cause")
	}
	if got := err.Error(); got != "invalid request body: unexpected EOF" {
		t.Errorf("Error() = %q", got)
	}
}

func TestDetail(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", NotFound("Task not found"), "Task not found"},
		{"conflict wrapped", fmt.Errorf("create: %w", Conflict("exists")), "exists"},
		{"validation includes cause", Validation("invalid date", errors.New("month out of range")), "invalid date: month out of range"},
		{"plain error uses fallback", errors.New("disk I/O error"), "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detail(tt.err, "Internal server error"); got != tt.want {
				t.Errorf("Detail() = %q, want %q", got, tt.want)
			}
		})
	}
}
