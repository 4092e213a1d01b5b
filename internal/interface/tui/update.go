package tui

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vivla-tech/vivla-guides-sub001/internal/admin"
	"github.com/vivla-tech/vivla-guides-sub001/internal/api"
	"github.com/vivla-tech/vivla-guides-sub001/internal/interface/tui/mode"
	"github.com/vivla-tech/vivla-guides-sub001/internal/pkg/errors"
	"github.com/vivla-tech/vivla-guides-sub001/internal/storage"
)

// Update handles messages and advances the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.searchInput.Width = m.width - 20
		m.paletteInput.Width = m.width - 20
		// Redraw from scratch so abrupt resizes leave no artifacts.
		return m, tea.ClearScreen

	case tea.KeyMsg:
		switch m.mode {
		case mode.Normal:
			return m.updateNormalMode(msg)
		case mode.Create, mode.Edit:
			return m.updateFormMode(msg)
		case mode.ConfirmDelete:
			return m.updateConfirmMode(msg)
		case mode.Search:
			return m.updateSearchMode(msg)
		case mode.Command:
			return m.updateCommandMode(msg)
		case mode.Help, mode.Detail:
			m.exitToNormal()
			return m, nil
		}

	case TickMsg:
		if m.showResult && m.resultTimer > 0 {
			m.resultTimer--
			if m.resultTimer == 0 {
				m.clearResult()
			}
		}
		return m, m.tick()

	case ListLoadedMsg:
		if msg.Resource == m.schema().Resource {
			m.clampCursor()
			if err := m.workspace().List.State().Err; err != nil {
				m.setResult("", err)
			}
		}
		return m, nil

	case SearchDebounceMsg:
		ws := m.workspaceFor(admin.SchemaFor(msg.Resource))
		if !ws.Search.Current(msg.Ticket) {
			// A newer keystroke superseded this one.
			return m, nil
		}
		return m, m.applySearch(ws, ws.Search.Term())

	case FormSubmittedMsg:
		return m.handleFormSubmitted(msg)

	case EditCommittedMsg:
		return m.handleEditCommitted(msg)

	case DeleteDoneMsg:
		return m.handleDeleteDone(msg)

	case UploadsDoneMsg:
		return m.handleUploadsDone(msg)

	case DetailLoadedMsg:
		if msg.Err != nil {
			m.setResult("", msg.Err)
			return m, nil
		}
		if m.mode == mode.Normal && msg.Resource == m.schema().Resource {
			m.detail = msg.Record
			m.mode = mode.Detail
		}
		return m, nil

	case OptionsLoadedMsg:
		if m.mode != mode.Create && m.mode != mode.Edit {
			return m, nil
		}
		if m.form.focus < len(m.form.fields) && m.form.fields[m.form.focus].Name == msg.Field {
			if msg.Err == nil {
				m.form.allOptions = msg.Options
				m.filterOptions(strings.TrimSpace(m.form.inputs[m.form.focus].Value()))
			}
		}
		return m, nil

	case ResultMsg:
		m.setResult(msg.Text, msg.Err)
		return m, nil
	}

	return m, nil
}

// Normal mode

func (m Model) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = mode.Help
		return m, nil

	case key.Matches(msg, m.keys.Command):
		m.mode = mode.Command
		m.paletteInput.SetValue("")
		m.paletteInput.Focus()
		m.updateFilteredHints()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Search):
		m.mode = mode.Search
		m.searchInput.SetValue(m.workspace().Search.Term())
		m.searchInput.CursorEnd()
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.NextScreen):
		return m.switchScreen((m.active + 1) % len(m.schemas))

	case key.Matches(msg, m.keys.PrevScreen):
		return m.switchScreen((m.active + len(m.schemas) - 1) % len(m.schemas))

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadList(m.workspace())

	case key.Matches(msg, m.keys.Up):
		res := m.schema().Resource
		if m.cursor[res] > 0 {
			m.cursor[res]--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		res := m.schema().Resource
		if m.cursor[res] < m.workspace().List.Len()-1 {
			m.cursor[res]++
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		ws := m.workspace()
		return m, m.setPage(ws, ws.List.Page()-1)

	case key.Matches(msg, m.keys.NextPage):
		ws := m.workspace()
		return m, m.setPage(ws, ws.List.Page()+1)

	case key.Matches(msg, m.keys.Enter):
		target := m.selectedRecord()
		if target == nil {
			return m, nil
		}
		return m, m.loadDetail(m.workspace(), api.RecordID(target))

	case key.Matches(msg, m.keys.New):
		return m.enterCreate()

	case key.Matches(msg, m.keys.Edit):
		return m.enterEdit()

	case key.Matches(msg, m.keys.Delete):
		return m.enterDelete()
	}

	return m, nil
}

// switchScreen activates another resource screen and refetches its page.
func (m Model) switchScreen(idx int) (tea.Model, tea.Cmd) {
	m.active = idx
	return m, m.loadList(m.workspace())
}

// Create / Edit form mode

// enterCreate opens the create form. The draft survives a failed submission,
// so reopening the form restores the user's input.
func (m Model) enterCreate() (tea.Model, tea.Cmd) {
	ws := m.workspace()
	m.mode = mode.Create
	m.buildForm(ws.Form.Draft())
	return m, m.focusField(0)
}

// enterEdit opens the edit session for the selected record.
func (m Model) enterEdit() (tea.Model, tea.Cmd) {
	target := m.selectedRecord()
	if target == nil {
		m.setResult("", errors.New("nothing selected"))
		return m, nil
	}
	ws := m.workspace()
	ws.Session.OpenEdit(target)
	m.mode = mode.Edit
	m.buildForm(ws.Session.Draft())
	return m, m.focusField(0)
}

// enterDelete opens the delete confirmation for the selected record.
func (m Model) enterDelete() (tea.Model, tea.Cmd) {
	target := m.selectedRecord()
	if target == nil {
		m.setResult("", errors.New("nothing selected"))
		return m, nil
	}
	m.workspace().Session.OpenDelete(target)
	m.mode = mode.ConfirmDelete
	return m, nil
}

// buildForm creates one text input per schema field, seeded from the draft.
func (m *Model) buildForm(draft admin.Draft) {
	schema := m.schema()
	m.form = formState{
		fields: schema.Fields,
		inputs: make([]textinput.Model, len(schema.Fields)),
		errs:   map[string]string{},
	}
	for i, f := range schema.Fields {
		ti := textinput.New()
		ti.CharLimit = 512
		ti.Width = 48
		switch f.Kind {
		case admin.FieldImages:
			ti.Placeholder = "path to upload (C-u)"
		case admin.FieldRef:
			ti.Placeholder = "↑↓ pick, Enter apply"
			ti.SetValue(draft.String(f.Name))
		default:
			ti.SetValue(draft.String(f.Name))
		}
		m.form.inputs[i] = ti
	}
}

// focusField moves focus and, on a reference field, fetches its options.
func (m *Model) focusField(idx int) tea.Cmd {
	if len(m.form.inputs) == 0 {
		return nil
	}
	if idx < 0 {
		idx = len(m.form.inputs) - 1
	}
	if idx >= len(m.form.inputs) {
		idx = 0
	}
	for i := range m.form.inputs {
		m.form.inputs[i].Blur()
	}
	m.form.focus = idx
	m.form.inputs[idx].Focus()
	m.form.options = nil
	m.form.allOptions = nil
	m.form.optionIdx = 0

	f := m.form.fields[idx]
	if f.Kind == admin.FieldRef {
		return m.loadOptions(m.workspace(), f)
	}
	return nil
}

func (m Model) updateFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ws := m.workspace()
	field := m.form.fields[m.form.focus]

	switch {
	case key.Matches(msg, m.keys.Escape):
		if m.mode == mode.Create {
			if ws.Form.Busy() {
				// The in-flight save decides the draft's fate; discarding now
				// could delete assets a committed record references.
				return m, nil
			}
			orphans := ws.Form.Discard()
			m.exitToNormal()
			return m, m.cleanupUploads(orphans)
		}
		ws.Session.Cancel()
		m.exitToNormal()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.form.uploads > 0 {
			m.setResult("", errors.New("uploads still in progress"))
			return m, nil
		}
		if m.mode == mode.Create {
			return m, m.submitForm(ws)
		}
		return m, m.commitEdit(ws)

	case msg.String() == "tab", msg.String() == "down":
		if field.Kind == admin.FieldRef && len(m.form.options) > 0 && msg.String() == "down" {
			if m.form.optionIdx < len(m.form.options)-1 {
				m.form.optionIdx++
			}
			return m, nil
		}
		return m, m.focusField(m.form.focus + 1)

	case msg.String() == "shift+tab", msg.String() == "up":
		if field.Kind == admin.FieldRef && len(m.form.options) > 0 && msg.String() == "up" {
			if m.form.optionIdx > 0 {
				m.form.optionIdx--
			}
			return m, nil
		}
		return m, m.focusField(m.form.focus - 1)

	case key.Matches(msg, m.keys.Enter):
		if field.Kind == admin.FieldRef && len(m.form.options) > 0 {
			opt := m.form.options[m.form.optionIdx]
			id := api.RecordID(opt)
			m.form.inputs[m.form.focus].SetValue(id)
			m.syncField(ws, field, id)
		}
		return m, m.focusField(m.form.focus + 1)

	case key.Matches(msg, m.keys.Upload):
		if field.Kind != admin.FieldImages {
			return m, nil
		}
		path := strings.TrimSpace(m.form.inputs[m.form.focus].Value())
		if path == "" {
			return m, nil
		}
		m.form.uploads++
		m.form.inputs[m.form.focus].SetValue("")
		return m, m.uploadFiles(ws, field.Name, path)

	default:
		var cmd tea.Cmd
		m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
		if field.Kind != admin.FieldImages {
			m.syncField(ws, field, m.form.inputs[m.form.focus].Value())
		}
		if field.Kind == admin.FieldRef {
			// Typing narrows the fetched options; a pasted raw ID stays in the
			// draft even when it matches nothing.
			m.filterOptions(strings.TrimSpace(m.form.inputs[m.form.focus].Value()))
		}
		return m, cmd
	}
}

// syncField mirrors a keystroke into the draft that owns it.
func (m Model) syncField(ws *admin.Workspace, field admin.Field, value string) {
	if m.mode == mode.Create {
		ws.Form.SetField(field.Name, value)
		return
	}
	ws.Session.SetField(field.Name, value)
}

func (m Model) handleFormSubmitted(msg FormSubmittedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		var fieldErrs errors.FieldErrors
		if errors.As(msg.Err, &fieldErrs) {
			m.form.errs = fieldErrs
			return m, nil
		}
		if errors.Is(msg.Err, admin.ErrSubmitPending) {
			return m, nil
		}
		m.setResult("", msg.Err)
		return m, nil
	}
	res := msg.Resource
	m.cursor[res] = 0
	m.exitToNormal()
	m.setResult("record created", nil)
	return m, nil
}

func (m Model) handleEditCommitted(msg EditCommittedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		var fieldErrs errors.FieldErrors
		if errors.As(msg.Err, &fieldErrs) {
			m.form.errs = fieldErrs
			return m, nil
		}
		if errors.Is(msg.Err, admin.ErrCommitPending) ||
			errors.Is(msg.Err, admin.ErrNoSession) ||
			errors.Is(msg.Err, admin.ErrSessionSuperseded) {
			return m, nil
		}
		m.setResult("", msg.Err)
		return m, nil
	}
	m.exitToNormal()
	m.setResult("record updated", nil)
	return m, nil
}

// Confirm mode

func (m Model) updateConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ws := m.workspace()
	if ws.Session.Busy() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Yes):
		return m, m.confirmDelete(ws)

	case key.Matches(msg, m.keys.No), key.Matches(msg, m.keys.Escape):
		ws.Session.Cancel()
		m.exitToNormal()
		return m, nil
	}

	return m, nil
}

func (m Model) handleDeleteDone(msg DeleteDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, admin.ErrSessionSuperseded) {
			// Cancelled while the delete was in flight; already back at the
			// table.
			return m, nil
		}
		// The session stays open; the dialog shows the error and the user can
		// retry or cancel.
		return m, nil
	}
	m.exitToNormal()
	m.clampCursor()
	m.setResult("record deleted", nil)
	return m, nil
}

// Search mode

func (m Model) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ws := m.workspace()

	switch msg.String() {
	case "esc":
		// The applied filter stays; only the bar closes.
		m.exitToNormal()
		return m, nil

	case "enter":
		term := m.searchInput.Value()
		// Take a fresh ticket so a pending debounce cannot double-fire.
		ws.Search.Input(term)
		m.exitToNormal()
		return m, m.applySearch(ws, term)

	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		ticket, fire := ws.Search.Input(m.searchInput.Value())
		if !fire {
			return m, cmd
		}
		res := ws.Schema.Resource
		debounce := tea.Tick(ws.Search.Interval(), func(time.Time) tea.Msg {
			return SearchDebounceMsg{Resource: res, Ticket: ticket}
		})
		return m, tea.Batch(cmd, debounce)
	}
}

// Command palette

func (m Model) updateCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.exitToNormal()
		return m, nil

	case "enter":
		if m.paletteInput.Value() == "" && len(m.filtered) > 0 {
			m.applySelectedHint()
			return m, nil
		}
		input := m.paletteInput.Value()
		m.exitToNormal()
		return m.executeCommand(input)

	case "tab":
		m.applySelectedHint()
		return m, nil

	case "up", "ctrl+p":
		if m.paletteIdx > 0 {
			m.paletteIdx--
		}
		return m, nil

	case "down", "ctrl+n":
		if m.paletteIdx < len(m.filtered)-1 {
			m.paletteIdx++
		}
		return m, nil

	default:
		var cmd tea.Cmd
		m.paletteInput, cmd = m.paletteInput.Update(msg)
		m.updateFilteredHints()
		return m, cmd
	}
}

// applySelectedHint autocompletes the highlighted palette entry.
func (m *Model) applySelectedHint() {
	if m.paletteIdx >= len(m.filtered) {
		return
	}
	hint := m.filtered[m.paletteIdx].Hint
	value := hint.Command
	if hint.Args != "" {
		value += " "
	}
	m.paletteInput.SetValue(value)
	m.paletteInput.CursorEnd()
	m.updateFilteredHints()
}

// executeCommand runs one palette command.
func (m Model) executeCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	cmd, args := parts[0], parts[1:]
	ws := m.workspace()

	switch cmd {
	case "quit", "q":
		return m, tea.Quit

	case "new":
		return m.enterCreate()

	case "edit":
		return m.enterEdit()

	case "delete":
		return m.enterDelete()

	case "search":
		term := strings.Join(args, " ")
		ws.Search.Input(term)
		return m, m.applySearch(ws, term)

	case "goto":
		if len(args) == 0 {
			m.setResult("", errors.New("usage: goto <resource>"))
			return m, nil
		}
		for i, s := range m.schemas {
			if string(s.Resource) == args[0] || strings.EqualFold(s.Title, args[0]) {
				return m.switchScreen(i)
			}
		}
		m.setResult("", errors.Newf("unknown resource %q", args[0]))
		return m, nil

	case "page":
		if len(args) == 0 {
			m.setResult("", errors.New("usage: page <n>"))
			return m, nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			m.setResult("", errors.Newf("not a page number: %q", args[0]))
			return m, nil
		}
		return m, m.setPage(ws, n)

	case "page-size":
		if len(args) == 0 {
			m.setResult("", errors.New("usage: page-size <n>"))
			return m, nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			m.setResult("", errors.Newf("not a page size: %q", args[0]))
			return m, nil
		}
		return m, m.setPageSize(ws, n)

	case "reload":
		return m, m.loadList(ws)

	case "help":
		m.mode = mode.Help
		return m, nil

	default:
		m.setResult("", errors.Newf("unknown command: %s", cmd))
		return m, nil
	}
}

// Commands. Every fetch runs in its own goroutine via tea.Cmd; the
// controllers discard results that lost to a newer request.

func (m Model) loadList(ws *admin.Workspace) tea.Cmd {
	res := ws.Schema.Resource
	return func() tea.Msg {
		_ = ws.List.Load(context.Background())
		return ListLoadedMsg{Resource: res}
	}
}

func (m Model) setPage(ws *admin.Workspace, page int) tea.Cmd {
	res := ws.Schema.Resource
	return func() tea.Msg {
		_ = ws.List.SetPage(context.Background(), page)
		return ListLoadedMsg{Resource: res}
	}
}

func (m Model) setPageSize(ws *admin.Workspace, n int) tea.Cmd {
	res := ws.Schema.Resource
	return func() tea.Msg {
		_ = ws.List.SetPageSize(context.Background(), n)
		return ListLoadedMsg{Resource: res}
	}
}

func (m Model) applySearch(ws *admin.Workspace, term string) tea.Cmd {
	res := ws.Schema.Resource
	return func() tea.Msg {
		_ = ws.ApplySearch(context.Background(), term)
		return ListLoadedMsg{Resource: res}
	}
}

func (m Model) submitForm(ws *admin.Workspace) tea.Cmd {
	res := ws.Schema.Resource
	return func() tea.Msg {
		_, err := ws.Form.Submit(context.Background())
		return FormSubmittedMsg{Resource: res, Err: err}
	}
}

func (m Model) commitEdit(ws *admin.Workspace) tea.Cmd {
	res := ws.Schema.Resource
	return func() tea.Msg {
		_, err := ws.Session.CommitEdit(context.Background())
		return EditCommittedMsg{Resource: res, Err: err}
	}
}

func (m Model) confirmDelete(ws *admin.Workspace) tea.Cmd {
	res := ws.Schema.Resource
	return func() tea.Msg {
		err := ws.Session.ConfirmDelete(context.Background())
		return DeleteDoneMsg{Resource: res, Err: err}
	}
}

func (m Model) loadDetail(ws *admin.Workspace, id string) tea.Cmd {
	res := ws.Schema.Resource
	client := m.client
	return func() tea.Msg {
		rec, err := api.GetByID[api.Record](context.Background(), client, res, id)
		return DetailLoadedMsg{Resource: res, Record: rec, Err: err}
	}
}

func (m Model) loadOptions(ws *admin.Workspace, field admin.Field) tea.Cmd {
	res := ws.Schema.Resource
	return func() tea.Msg {
		options, err := ws.LookupOptions(context.Background(), field.Ref, 25)
		return OptionsLoadedMsg{Resource: res, Field: field.Name, Options: options, Err: err}
	}
}

func (m Model) uploadFiles(ws *admin.Workspace, field, path string) tea.Cmd {
	res := ws.Schema.Resource
	bucket := m.bucket
	gen := m.formGen
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return UploadsDoneMsg{Resource: res, Field: field, Gen: gen, Err: err}
		}
		files := []storage.File{{
			Name:        filepath.Base(path),
			ContentType: mime.TypeByExtension(filepath.Ext(path)),
			Data:        data,
		}}
		results, err := bucket.UploadMany(context.Background(), files, string(res))
		return UploadsDoneMsg{Resource: res, Field: field, Gen: gen, Results: results, Err: err}
	}
}

func (m Model) handleUploadsDone(msg UploadsDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.formGen {
		// The form this batch belonged to is gone. Nothing references the
		// uploaded assets, so remove them instead of attaching them to
		// whatever draft is open now.
		var orphans []string
		for _, r := range msg.Results {
			if r.Err == nil && r.URL != "" {
				orphans = append(orphans, r.URL)
			}
		}
		if len(orphans) == 0 {
			return m, nil
		}
		bucket := m.bucket
		return m, func() tea.Msg {
			bucket.DeleteMany(context.Background(), orphans)
			return nil
		}
	}
	if m.form.uploads > 0 {
		m.form.uploads--
	}
	if msg.Err != nil {
		m.setResult("", msg.Err)
		return m, nil
	}

	ws := m.workspaceFor(admin.SchemaFor(msg.Resource))
	var urls []string
	var failed int
	for _, r := range msg.Results {
		if r.Err != nil {
			failed++
			continue
		}
		urls = append(urls, r.URL)
	}
	if len(urls) > 0 {
		if m.mode == mode.Edit {
			existing := ws.Session.Draft().Strings(msg.Field)
			ws.Session.SetField(msg.Field, append(existing, urls...))
		} else {
			ws.Form.StageUploads(msg.Field, urls)
		}
	}
	if failed > 0 {
		m.setResult("", errors.Newf("%d upload(s) failed", failed))
	} else {
		m.setResult(fmt.Sprintf("%d file(s) uploaded", len(urls)), nil)
	}
	return m, nil
}

// cleanupUploads removes assets orphaned by a discarded draft, best effort.
func (m Model) cleanupUploads(urls []string) tea.Cmd {
	if len(urls) == 0 {
		return nil
	}
	bucket := m.bucket
	return func() tea.Msg {
		bucket.DeleteMany(context.Background(), urls)
		return ResultMsg{Text: "draft discarded"}
	}
}
