package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("contact_email", "must be a valid email address")

	if err.Field != "contact_email" {
		t.Errorf("expected field 'contact_email', got: %s", err.Field)
	}
	if err.Category() != CategoryValidation {
		t.Errorf("expected category validation, got: %s", err.Category())
	}

	expected := "validation error: contact_email must be a valid email address"
	if err.Error() != expected {
		t.Errorf("expected error '%s', got: %s", expected, err.Error())
	}
}

func TestFieldErrorsMessageIsSorted(t *testing.T) {
	errs := FieldErrors{
		"quantity": "must be at least 1",
		"name":     "is required",
	}

	expected := "validation failed: name is required; quantity must be at least 1"
	if errs.Error() != expected {
		t.Errorf("expected error '%s', got: %s", expected, errs.Error())
	}
	if errs.Category() != CategoryValidation {
		t.Errorf("expected category validation, got: %s", errs.Category())
	}
}

func TestFieldErrorsEmpty(t *testing.T) {
	errs := FieldErrors{}
	if errs.Error() != "validation failed" {
		t.Errorf("unexpected message: %s", errs.Error())
	}
}

func TestSubmissionError(t *testing.T) {
	cause := New("backend said no")
	err := NewSubmissionError("suppliers", cause)

	if err.Category() != CategorySubmission {
		t.Errorf("expected category submission, got: %s", err.Category())
	}
	if err.Unwrap() != cause {
		t.Error("expected Unwrap to return cause")
	}
	if !Is(err, cause) {
		t.Error("expected Is to find the cause through the wrapper")
	}
}

func TestDeletionError(t *testing.T) {
	cause := New("409 conflict")
	err := NewDeletionError("homes", "h-1", cause)

	if err.Category() != CategoryDeletion {
		t.Errorf("expected category deletion, got: %s", err.Category())
	}
	expected := "deleting homes h-1: 409 conflict"
	if err.Error() != expected {
		t.Errorf("expected error '%s', got: %s", expected, err.Error())
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Category
	}{
		{
			name:     "fetch error",
			err:      NewFetchError("rooms", New("timeout")),
			expected: CategoryFetch,
		},
		{
			name:     "upload error",
			err:      NewUploadError("plan.pdf", New("too large")),
			expected: CategoryUpload,
		},
		{
			name:     "wrapped fetch error keeps its category",
			err:      Wrap(NewFetchError("rooms", New("timeout")), "loading page"),
			expected: CategoryFetch,
		},
		{
			name:     "field errors are validation",
			err:      FieldErrors{"name": "is required"},
			expected: CategoryValidation,
		},
		{
			name:     "plain error falls back to internal",
			err:      New("boom"),
			expected: CategoryInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategoryOf(tt.err)
			if got != tt.expected {
				t.Errorf("CategoryOf() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestCategoryPredicates(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		check    func(error) bool
		expected bool
	}{
		{"validation matches", FieldErrors{"name": "is required"}, IsValidation, true},
		{"submission matches", NewSubmissionError("homes", New("x")), IsSubmission, true},
		{"deletion matches", NewDeletionError("homes", "h-1", New("x")), IsDeletion, true},
		{"fetch matches", NewFetchError("homes", New("x")), IsFetch, true},
		{"upload matches", NewUploadError("a.png", New("x")), IsUpload, true},
		{"mismatch is false", NewFetchError("homes", New("x")), IsDeletion, false},
		{"nil is false", nil, IsValidation, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("expected Wrap(nil) to be nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("expected Wrapf(nil) to be nil")
	}
}
