// Package errors provides error types and utilities for the application.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Category represents error classification for handling decisions.
type Category string

const (
	// CategoryValidation indicates client-side input validation failures.
	CategoryValidation Category = "validation"
	// CategorySubmission indicates the backend rejected a create or update.
	CategorySubmission Category = "submission"
	// CategoryDeletion indicates a delete operation failed.
	CategoryDeletion Category = "deletion"
	// CategoryFetch indicates a list or detail fetch failed.
	CategoryFetch Category = "fetch"
	// CategoryUpload indicates a file upload failed, possibly partially.
	CategoryUpload Category = "upload"
	// CategoryInternal indicates internal/unexpected errors.
	CategoryInternal Category = "internal"
)

// Categorized is an error that has a category.
type Categorized interface {
	error
	Category() Category
}

// CategoryOf returns the category of an error, or CategoryInternal when the
// error carries none.
func CategoryOf(err error) Category {
	var cat Categorized
	if errors.As(err, &cat) {
		return cat.Category()
	}
	return CategoryInternal
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return is(err, CategoryValidation)
}

// IsSubmission checks if an error is a submission error.
func IsSubmission(err error) bool {
	return is(err, CategorySubmission)
}

// IsDeletion checks if an error is a deletion error.
func IsDeletion(err error) bool {
	return is(err, CategoryDeletion)
}

// IsFetch checks if an error is a fetch error.
func IsFetch(err error) bool {
	return is(err, CategoryFetch)
}

// IsUpload checks if an error is an upload error.
func IsUpload(err error) bool {
	return is(err, CategoryUpload)
}

func is(err error, c Category) bool {
	var cat Categorized
	if errors.As(err, &cat) {
		return cat.Category() == c
	}
	return false
}

// Wrap adds context to an error.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf adds formatted context to an error.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// New creates a simple error.
func New(msg string) error {
	return errors.New(msg)
}

// Newf creates a formatted error.
func Newf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Is is errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join combines multiple errors into one.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s %s", e.Field, e.Message)
}

func (e *ValidationError) Category() Category {
	return CategoryValidation
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// FieldErrors maps field names to their validation messages. Surfaced inline
// next to the offending field, never sent to the backend.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+" "+fe[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (fe FieldErrors) Category() Category {
	return CategoryValidation
}

// SubmissionError represents a backend rejection of a create or update.
// The draft that produced it must be preserved so the user can correct
// and resubmit.
type SubmissionError struct {
	Resource string
	Cause    error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submitting %s: %v", e.Resource, e.Cause)
}

func (e *SubmissionError) Category() Category {
	return CategorySubmission
}

func (e *SubmissionError) Unwrap() error {
	return e.Cause
}

// NewSubmissionError creates a new submission error.
func NewSubmissionError(resource string, cause error) *SubmissionError {
	return &SubmissionError{Resource: resource, Cause: cause}
}

// DeletionError represents a failed delete. Surfaced in the confirmation
// dialog; the session stays open so the user can retry or cancel.
type DeletionError struct {
	Resource string
	ID       string
	Cause    error
}

func (e *DeletionError) Error() string {
	return fmt.Sprintf("deleting %s %s: %v", e.Resource, e.ID, e.Cause)
}

func (e *DeletionError) Category() Category {
	return CategoryDeletion
}

func (e *DeletionError) Unwrap() error {
	return e.Cause
}

// NewDeletionError creates a new deletion error.
func NewDeletionError(resource, id string, cause error) *DeletionError {
	return &DeletionError{Resource: resource, ID: id, Cause: cause}
}

// FetchError represents a failed list or detail fetch. The previously held
// page stays visible alongside the message.
type FetchError struct {
	Resource string
	Cause    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Resource, e.Cause)
}

func (e *FetchError) Category() Category {
	return CategoryFetch
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// NewFetchError creates a new fetch error.
func NewFetchError(resource string, cause error) *FetchError {
	return &FetchError{Resource: resource, Cause: cause}
}

// UploadError represents a failed upload of one file within a batch.
type UploadError struct {
	Filename string
	Cause    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("uploading %s: %v", e.Filename, e.Cause)
}

func (e *UploadError) Category() Category {
	return CategoryUpload
}

func (e *UploadError) Unwrap() error {
	return e.Cause
}

// NewUploadError creates a new upload error.
func NewUploadError(filename string, cause error) *UploadError {
	return &UploadError{Filename: filename, Cause: cause}
}

// InternalError represents unexpected internal failures.
type InternalError struct {
	Operation string
	Cause     error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("internal error in %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("internal error in %s", e.Operation)
}

func (e *InternalError) Category() Category {
	return CategoryInternal
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

// NewInternalError creates a new internal error.
func NewInternalError(operation string, cause error) *InternalError {
	return &InternalError{Operation: operation, Cause: cause}
}
