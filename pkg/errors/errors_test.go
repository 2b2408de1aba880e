package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeRaggedGrid, "row 2 has 5 columns, want 4"),
			want: "STRUCTURAL_RAGGED_GRID: row 2 has 5 columns, want 4",
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeInvalidDocument, stderrors.New("yaml: bad indent"), "decode maze.yaml"),
			want: "STRUCTURAL_INVALID_DOCUMENT: decode maze.yaml: yaml: bad indent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeHubTooSmall, "radius 1.0 below minimum 1.91")

	if !Is(err, ErrCodeHubTooSmall) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeRaggedGrid) {
		t.Error("Is() = true for non-matching code")
	}
	if Is(stderrors.New("plain"), ErrCodeHubTooSmall) {
		t.Error("Is() = true for non-coded error")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeDuplicateToken, "token '#' already registered")
	outer := fmt.Errorf("parse config: %w", inner)

	if !Is(outer, ErrCodeDuplicateToken) {
		t.Error("Is() should unwrap fmt.Errorf chains")
	}
	if GetCode(outer) != ErrCodeDuplicateToken {
		t.Errorf("GetCode() = %q, want %q", GetCode(outer), ErrCodeDuplicateToken)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidToken, "token must be a single character")
	if got := UserMessage(err); got != "token must be a single character" {
		t.Errorf("UserMessage() = %q", got)
	}

	plain := stderrors.New("plain error")
	if got := UserMessage(plain); got != "plain error" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{New(ErrCodeRaggedGrid, "x"), "STRUCTURAL"},
		{New(ErrCodeDuplicateValue, "x"), "ELEMENT"},
		{New(ErrCodeHubTooSmall, "x"), "GEOMETRY"},
		{New(ErrCodeDanglingConnector, "x"), "REFERENCE"},
		{New(ErrCodeTypeMismatch, "x"), "TYPE"},
		{stderrors.New("plain"), ""},
	}

	for _, tt := range tests {
		if got := Category(tt.err); got != tt.want {
			t.Errorf("Category(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
