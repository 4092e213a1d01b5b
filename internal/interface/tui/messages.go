package tui

import (
	"time"

	"github.com/vivla-tech/vivla-guides-sub001/internal/api"
	"github.com/vivla-tech/vivla-guides-sub001/internal/storage"
)

// TickMsg drives the result bar timer.
type TickMsg time.Time

// ListLoadedMsg signals that a list fetch resolved. The controller already
// holds the outcome (or discarded it as stale); the screen just re-renders.
type ListLoadedMsg struct {
	Resource api.ResourceType
}

// SearchDebounceMsg fires after the debounce interval for one keystroke.
// The ticket decides whether this keystroke is still the latest one.
type SearchDebounceMsg struct {
	Resource api.ResourceType
	Ticket   uint64
}

// FormSubmittedMsg reports the outcome of a create submission.
type FormSubmittedMsg struct {
	Resource api.ResourceType
	Err      error
}

// EditCommittedMsg reports the outcome of an edit commit.
type EditCommittedMsg struct {
	Resource api.ResourceType
	Err      error
}

// DeleteDoneMsg reports the outcome of a confirmed deletion.
type DeleteDoneMsg struct {
	Resource api.ResourceType
	Err      error
}

// UploadsDoneMsg reports a staged upload batch. Gen identifies the form the
// batch was started from; a result arriving after that form closed is an
// orphan and must not attach to whatever form is open now.
type UploadsDoneMsg struct {
	Resource api.ResourceType
	Field    string
	Gen      uint64
	Results  []storage.UploadResult
	Err      error
}

// DetailLoadedMsg carries the full record behind the selected row.
type DetailLoadedMsg struct {
	Resource api.ResourceType
	Record   api.Record
	Err      error
}

// OptionsLoadedMsg carries the lookup page for a reference field.
type OptionsLoadedMsg struct {
	Resource api.ResourceType
	Field    string
	Options  []api.Record
	Err      error
}

// ResultMsg flashes an outcome in the result bar.
type ResultMsg struct {
	Text string
	Err  error
}
