package admin

import (
	"context"
	"sync"

	"github.com/vivla-tech/vivla-guides-sub001/internal/api"
	"github.com/vivla-tech/vivla-guides-sub001/internal/pkg/errors"
)

// SessionKind tags the single session slot. Modeling the slot as one tagged
// variant instead of two nullable fields makes "edit and delete both open"
// unrepresentable.
type SessionKind int

const (
	SessionClosed SessionKind = iota
	SessionEdit
	SessionDelete
)

func (k SessionKind) String() string {
	switch k {
	case SessionClosed:
		return "closed"
	case SessionEdit:
		return "edit"
	case SessionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// UpdateFunc applies a partial update to an existing record.
type UpdateFunc func(ctx context.Context, id string, partial map[string]any) (api.Record, error)

// DeleteFunc removes a record.
type DeleteFunc func(ctx context.Context, id string) error

// ErrNoSession is returned when a commit is attempted with no open session.
var ErrNoSession = errors.New("no session is open")

// ErrCommitPending is returned when a commit is attempted while one is in
// flight for the same session.
var ErrCommitPending = errors.New("a commit is already in flight")

// ErrSessionSuperseded is returned when a commit resolves after its session
// was cancelled or replaced. The result was discarded; callers must not
// treat it as success.
var ErrSessionSuperseded = errors.New("the session was closed before the commit resolved")

// SessionManager holds the single edit-or-delete session slot for one
// resource screen. Opening a session while another is open replaces it; a
// commit that resolves after its session was replaced or cancelled is
// discarded rather than applied to the wrong state.
type SessionManager struct {
	mu     sync.Mutex
	schema *Schema
	list   Reloader
	update UpdateFunc
	delete DeleteFunc

	kind   SessionKind
	target api.Record
	id     string
	draft  Draft
	busy   bool
	err    error

	// gen identifies the currently open session; in-flight commits carry the
	// gen they were started under and lose if it moved.
	gen uint64
}

// NewSessionManager creates the session slot for a resource screen.
func NewSessionManager(schema *Schema, list Reloader, update UpdateFunc, del DeleteFunc) *SessionManager {
	return &SessionManager{
		schema: schema,
		list:   list,
		update: update,
		delete: del,
	}
}

// Kind returns the open session kind, or SessionClosed.
func (s *SessionManager) Kind() SessionKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind
}

// Target returns the record the open session is bound to.
func (s *SessionManager) Target() api.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// Draft returns the edit session's draft.
func (s *SessionManager) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Err returns the last commit error for the open session.
func (s *SessionManager) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Busy reports whether a commit is in flight.
func (s *SessionManager) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// OpenEdit binds the slot to target with a draft seeded from its current
// values. Re-opening with a different target replaces the session.
func (s *SessionManager) OpenEdit(target api.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.kind = SessionEdit
	s.target = target
	s.id = api.RecordID(target)
	s.draft = SeedDraft(s.schema, target)
	s.err = nil
}

// OpenDelete binds the slot to target for confirmation. The delete API is
// only reachable through ConfirmDelete on an open session.
func (s *SessionManager) OpenDelete(target api.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.kind = SessionDelete
	s.target = target
	s.id = api.RecordID(target)
	s.draft = nil
	s.err = nil
}

// Cancel closes the slot with no side effect. An in-flight commit started
// before the cancel completes but its result is discarded.
func (s *SessionManager) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.close()
}

func (s *SessionManager) close() {
	s.gen++
	s.kind = SessionClosed
	s.target = nil
	s.id = ""
	s.draft = nil
	s.err = nil
	s.busy = false
}

// SetField stores one field of the edit draft.
func (s *SessionManager) SetField(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kind == SessionEdit {
		s.draft.Set(name, value)
	}
}

// CommitEdit validates the draft and sends a partial update containing only
// the schema's fields; everything else keeps its server-side value. On
// success the session closes and the list reloads at the current page (the
// edited record's position is presumed unchanged).
func (s *SessionManager) CommitEdit(ctx context.Context) (api.Record, error) {
	s.mu.Lock()
	if s.kind != SessionEdit {
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	if s.busy {
		s.mu.Unlock()
		return nil, ErrCommitPending
	}
	if errs := s.schema.Validate(s.draft); errs != nil {
		s.mu.Unlock()
		return nil, errs
	}
	gen := s.gen
	id := s.id
	partial := s.schema.Payload(s.draft)
	s.busy = true
	s.mu.Unlock()

	rec, err := s.update(ctx, id, partial)

	s.mu.Lock()
	if gen != s.gen {
		// Session was cancelled or replaced mid-commit; drop the result.
		s.mu.Unlock()
		return nil, ErrSessionSuperseded
	}
	s.busy = false
	if err != nil {
		s.err = err
		s.mu.Unlock()
		return nil, err
	}
	s.close()
	s.mu.Unlock()

	_ = s.list.Reload(ctx)
	return rec, nil
}

// ConfirmDelete executes the deletion the open delete session is bound to.
// On success the session closes and the list reloads; when the deleted row
// was the only one on a page past the first, the reload steps back a page so
// the user does not land on an empty page. On failure the session stays open
// so the user can retry or cancel from the dialog.
func (s *SessionManager) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	if s.kind != SessionDelete {
		s.mu.Unlock()
		return ErrNoSession
	}
	if s.busy {
		s.mu.Unlock()
		return ErrCommitPending
	}
	gen := s.gen
	id := s.id
	s.busy = true
	s.mu.Unlock()

	err := s.delete(ctx, id)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return ErrSessionSuperseded
	}
	s.busy = false
	if err != nil {
		s.err = err
		s.mu.Unlock()
		return err
	}
	s.close()
	s.mu.Unlock()

	page := s.list.Page()
	if s.list.Len() == 1 && page > 1 {
		_ = s.list.ReloadAt(ctx, page-1)
	} else {
		_ = s.list.Reload(ctx)
	}
	return nil
}
