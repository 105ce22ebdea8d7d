package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	e := NewAppError(CodeValidation, "bad input", nil)
	if e.Error() != "bad input" {
		t.Errorf("Error()=%q; want bad input", e.Error())
	}

	wrapped := NewAppError(CodeInternal, "storage failure", errors.New("disk full"))
	if wrapped.Error() != "storage failure: disk full" {
		t.Errorf("Error()=%q; want wrapped message", wrapped.Error())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	e := NewAppError(CodeInternal, "outer", inner)
	if !errors.Is(e, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestCodeHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"not_found sentinel", ErrNotFound, IsNotFound, true},
		{"not_found constructed", NewAppError(CodeNotFound, "gone", nil), IsNotFound, true},
		{"not_found wrapped", fmt.Errorf("query: %w", ErrNotFound), IsNotFound, true},
		{"not_found mismatch", ErrValidation, IsNotFound, false},
		{"missing_reference", NewMissingReference("employee", "E1"), IsMissingReference, true},
		{"validation", ErrValidation, IsValidation, true},
		{"internal", ErrInternal, IsInternal, true},
		{"plain error", errors.New("boom"), IsInternal, false},
		{"nil", nil, IsNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("got %v; want %v", got, tt.want)
			}
		})
	}
}

func TestNewMissingReference_Message(t *testing.T) {
	e := NewMissingReference("location", 42)
	want := `referenced location "42" does not exist`
	if e.Message != want {
		t.Errorf("Message=%q; want %q", e.Message, want)
	}
}

func TestHTTPStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not_found", ErrNotFound, http.StatusNotFound},
		{"missing_reference", NewMissingReference("employee", "E1"), http.StatusNotFound},
		{"validation", ErrValidation, http.StatusBadRequest},
		{"internal", ErrInternal, http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusCode(tt.err); got != tt.want {
				t.Errorf("HTTPStatusCode=%d; want %d", got, tt.want)
			}
		})
	}
}
