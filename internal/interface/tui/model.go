package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sahilm/fuzzy"

	"github.com/vivla-tech/vivla-guides-sub001/internal/admin"
	"github.com/vivla-tech/vivla-guides-sub001/internal/api"
	"github.com/vivla-tech/vivla-guides-sub001/internal/interface/tui/mode"
	"github.com/vivla-tech/vivla-guides-sub001/internal/storage"
)

// Model is the admin screen. One workspace per resource holds the list,
// create form, and session state; the model holds only what the terminal
// needs: sizes, mode, inputs, and cursors.
type Model struct {
	width  int
	height int
	ready  bool

	mode mode.Mode
	keys KeyMap

	client   *api.Client
	bucket   *storage.BucketClient
	pageSize int

	schemas    []*admin.Schema
	active     int
	workspaces map[api.ResourceType]*admin.Workspace

	// selected row per resource screen
	cursor map[api.ResourceType]int

	// form overlay state (Create and Edit modes)
	form formState

	// formGen identifies the mounted form; upload batches carry the gen they
	// were started under and their results are dropped if it moved
	formGen uint64

	// record shown by the detail overlay
	detail api.Record

	// search bar
	searchInput textinput.Model

	// command palette
	paletteInput textinput.Model
	hints        []CommandHint
	filtered     []filteredHint
	paletteIdx   int

	// result bar
	lastResult  string
	lastErr     error
	showResult  bool
	resultTimer int
}

// formState is the overlay state shared by the create and edit forms.
type formState struct {
	fields []admin.Field
	inputs []textinput.Model
	focus  int

	// field-level validation errors, keyed by payload name
	errs map[string]string

	// lookup options for the focused reference field; options is the view
	// narrowed by the typed text, allOptions the fetched page
	options    []api.Record
	allOptions []api.Record
	optionIdx  int

	// in-flight upload batches; saving is blocked until this hits zero
	uploads int
}

// CommandHint is one palette entry.
type CommandHint struct {
	Command     string
	Description string
	Args        string
}

// filteredHint is a hint that survived fuzzy matching, with the matched rune
// positions for highlighting.
type filteredHint struct {
	Hint           CommandHint
	MatchedIndexes []int
}

// hintSource adapts []CommandHint to the fuzzy matcher.
type hintSource []CommandHint

func (h hintSource) String(i int) string { return h[i].Command }
func (h hintSource) Len() int            { return len(h) }

// schema returns the active screen's schema.
func (m Model) schema() *admin.Schema {
	return m.schemas[m.active]
}

// workspace returns the active screen's workspace, creating it on first use.
func (m Model) workspace() *admin.Workspace {
	return m.workspaceFor(m.schema())
}

func (m Model) workspaceFor(schema *admin.Schema) *admin.Workspace {
	ws, ok := m.workspaces[schema.Resource]
	if !ok {
		ws = admin.NewWorkspace(m.client, schema, m.pageSize)
		m.workspaces[schema.Resource] = ws
	}
	return ws
}

// selectedRecord returns the record under the cursor, or nil on an empty page.
func (m Model) selectedRecord() api.Record {
	state := m.workspace().List.State()
	if len(state.Items) == 0 {
		return nil
	}
	idx := m.cursor[m.schema().Resource]
	if idx >= len(state.Items) {
		idx = len(state.Items) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return state.Items[idx]
}

// clampCursor keeps the cursor inside the loaded page.
func (m *Model) clampCursor() {
	res := m.schema().Resource
	n := m.workspace().List.Len()
	idx := m.cursor[res]
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	m.cursor[res] = idx
}

// updateFilteredHints re-runs fuzzy matching over the palette hints. An empty
// query shows everything.
func (m *Model) updateFilteredHints() {
	query := m.paletteInput.Value()
	if query == "" {
		m.filtered = make([]filteredHint, len(m.hints))
		for i, h := range m.hints {
			m.filtered[i] = filteredHint{Hint: h}
		}
		m.paletteIdx = 0
		return
	}

	matches := fuzzy.FindFrom(query, hintSource(m.hints))
	m.filtered = make([]filteredHint, len(matches))
	for i, match := range matches {
		m.filtered[i] = filteredHint{
			Hint:           m.hints[match.Index],
			MatchedIndexes: match.MatchedIndexes,
		}
	}
	m.paletteIdx = 0
}

// setResult flashes a message in the result bar for a few ticks.
func (m *Model) setResult(text string, err error) {
	m.lastResult = text
	m.lastErr = err
	m.showResult = true
	m.resultTimer = 5
}

func (m *Model) clearResult() {
	m.lastResult = ""
	m.lastErr = nil
	m.showResult = false
	m.resultTimer = 0
}

// exitToNormal leaves any overlay and resets its transient input state.
func (m *Model) exitToNormal() {
	m.mode = mode.Normal
	m.paletteInput.SetValue("")
	m.paletteInput.Blur()
	m.searchInput.Blur()
	m.form = formState{}
	m.formGen++
	m.detail = nil
}

// optionSource adapts lookup records to the fuzzy matcher by display label.
type optionSource []api.Record

func (o optionSource) String(i int) string { return optionLabel(o[i]) }
func (o optionSource) Len() int            { return len(o) }

// filterOptions narrows the focused reference field's options to those fuzzy-
// matching the typed text. Empty text restores the full fetched page.
func (m *Model) filterOptions(typed string) {
	if typed == "" {
		m.form.options = m.form.allOptions
		m.form.optionIdx = 0
		return
	}
	matches := fuzzy.FindFrom(typed, optionSource(m.form.allOptions))
	m.form.options = make([]api.Record, len(matches))
	for i, match := range matches {
		m.form.options[i] = m.form.allOptions[match.Index]
	}
	m.form.optionIdx = 0
}
