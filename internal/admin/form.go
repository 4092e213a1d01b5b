package admin

import (
	"context"
	"sync"

	"github.com/vivla-tech/vivla-guides-sub001/internal/api"
	"github.com/vivla-tech/vivla-guides-sub001/internal/pkg/errors"
)

// Reloader is the slice of the list controller the form and session layers
// depend on: triggering reloads and inspecting the current page. Both sides
// of the pattern stay siblings; the reload trigger is the only shared state.
type Reloader interface {
	Reload(ctx context.Context) error
	ReloadAt(ctx context.Context, page int) error
	Page() int
	Len() int
}

// CreateFunc submits a new record to the backend.
type CreateFunc func(ctx context.Context, payload map[string]any) (api.Record, error)

// ErrSubmitPending is returned when a submit is attempted while another is
// in flight. The duplicate attempt is a no-op, never a queued request.
var ErrSubmitPending = errors.New("a submission is already in flight")

// FormController owns a validated draft for creating a new record.
type FormController struct {
	mu     sync.Mutex
	schema *Schema
	list   Reloader
	create CreateFunc

	draft  Draft
	staged []string
	busy   bool
	err    error
}

// NewFormController creates a form bound to a schema, its sibling list, and
// the create operation.
func NewFormController(schema *Schema, list Reloader, create CreateFunc) *FormController {
	return &FormController{
		schema: schema,
		list:   list,
		create: create,
		draft:  NewDraft(),
	}
}

// Schema returns the form's schema.
func (f *FormController) Schema() *Schema {
	return f.schema
}

// SetField stores one field of the draft.
func (f *FormController) SetField(name string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Set(name, value)
}

// Draft returns the current draft.
func (f *FormController) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Err returns the last submission error, if any.
func (f *FormController) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Busy reports whether a submission is in flight.
func (f *FormController) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// StageUploads records asset URLs uploaded for this draft. They are embedded
// into the payload on submit and must be cleaned up by the caller if the
// draft is abandoned.
func (f *FormController) StageUploads(field string, urls []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.staged = append(f.staged, urls...)
	existing := f.draft.Strings(field)
	f.draft.Set(field, append(existing, urls...))
}

// StagedUploads returns the URLs staged for the current draft.
func (f *FormController) StagedUploads() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.staged
}

// Discard drops the draft and returns the staged upload URLs so the caller
// can hand them to the storage service for best-effort cleanup. While a
// submit is in flight the discard is refused: the create may still commit a
// record embedding the staged URLs, so nothing is released until the submit
// resolves.
func (f *FormController) Discard() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return nil
	}
	orphaned := f.staged
	f.draft = NewDraft()
	f.staged = nil
	f.err = nil
	return orphaned
}

// Validate checks the draft against the schema without submitting.
func (f *FormController) Validate() errors.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.schema.Validate(f.draft)
}

// Submit validates and creates the record. On success the draft and staged
// uploads are cleared and the sibling list reloads at page 1 so the new
// record is visible. On failure the draft is retained so the user's input
// is not lost. At most one submission is in flight per form.
func (f *FormController) Submit(ctx context.Context) (api.Record, error) {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return nil, ErrSubmitPending
	}
	if errs := f.schema.Validate(f.draft); errs != nil {
		f.mu.Unlock()
		return nil, errs
	}
	f.busy = true
	payload := f.schema.Payload(f.draft)
	f.mu.Unlock()

	rec, err := f.create(ctx, payload)

	f.mu.Lock()
	f.busy = false
	if err != nil {
		f.err = err
		f.mu.Unlock()
		return nil, err
	}
	f.draft = NewDraft()
	f.staged = nil
	f.err = nil
	f.mu.Unlock()

	if err := f.list.ReloadAt(ctx, 1); err != nil {
		// The create committed; a failed reload only leaves the list stale.
		return rec, nil
	}
	return rec, nil
}
