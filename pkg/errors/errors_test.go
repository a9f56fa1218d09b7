package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidRecord, "line %d: expected 7 fields", 3)

	if err.Code != ErrCodeInvalidRecord {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidRecord)
	}

	if err.Message != "line 3: expected 7 fields" {
		t.Errorf("Message = %v, want %v", err.Message, "line 3: expected 7 fields")
	}

	expected := "INVALID_RECORD: line 3: expected 7 fields"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, cause, "decompose block")

	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidRecord, "test"),
			code:     ErrCodeInvalidRecord,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidRecord, "test"),
			code:     ErrCodeInconsistency,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInconsistency, New(ErrCodeInvalidRecord, "inner"), "outer"),
			code:     ErrCodeInconsistency,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidRecord,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidRecord,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"structured error", New(ErrCodeInvalidBlock, "skip"), ErrCodeInvalidBlock},
		{"wrapped structured error", Wrap(ErrCodeInternal, New(ErrCodeInvalidBlock, "inner"), "outer"), ErrCodeInternal},
		{"plain error", errors.New("plain"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	structured := New(ErrCodeInvalidRecord, "line 7 is malformed")
	if got := UserMessage(structured); got != "line 7 is malformed" {
		t.Errorf("UserMessage() = %q, want %q", got, "line 7 is malformed")
	}

	plain := errors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain failure")
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"inconsistency", New(ErrCodeInconsistency, "virtual edge has no twin"), true},
		{"internal", New(ErrCodeInternal, "boom"), true},
		{"malformed record", New(ErrCodeInvalidRecord, "bad line"), false},
		{"invalid block", New(ErrCodeInvalidBlock, "too few edges"), false},
		{"plain error", errors.New("plain"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatal(tt.err); got != tt.want {
				t.Errorf("IsFatal() = %v, want %v", got, tt.want)
			}
		})
	}
}
