package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vivla-tech/vivla-guides-sub001/internal/admin"
	"github.com/vivla-tech/vivla-guides-sub001/internal/api"
	"github.com/vivla-tech/vivla-guides-sub001/internal/storage"
)

// Option configures the admin screen.
type Option func(*Model)

// WithStartResource sets the resource screen opened first. Unknown resources
// fall back to the first screen.
func WithStartResource(res api.ResourceType) Option {
	return func(m *Model) {
		for i, s := range m.schemas {
			if s.Resource == res {
				m.active = i
				return
			}
		}
	}
}

// WithPageSize sets the rows per page for every list screen.
func WithPageSize(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.pageSize = n
		}
	}
}

// NewApp creates the admin screen over the shared API and storage clients.
func NewApp(client *api.Client, bucket *storage.BucketClient, opts ...Option) *Model {
	search := textinput.New()
	search.Placeholder = "search..."
	search.CharLimit = 128
	search.Width = 40

	palette := textinput.New()
	palette.Placeholder = "command..."
	palette.CharLimit = 128
	palette.Width = 50

	m := &Model{
		keys:         DefaultKeyMap(),
		client:       client,
		bucket:       bucket,
		pageSize:     10,
		schemas:      admin.Schemas(),
		workspaces:   make(map[api.ResourceType]*admin.Workspace),
		cursor:       make(map[api.ResourceType]int),
		searchInput:  search,
		paletteInput: palette,
		hints:        defaultCommandHints(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// defaultCommandHints returns the palette entries.
func defaultCommandHints() []CommandHint {
	return []CommandHint{
		{Command: "new", Description: "Create a record on this screen"},
		{Command: "edit", Description: "Edit the selected record"},
		{Command: "delete", Description: "Delete the selected record"},
		{Command: "search", Description: "Filter this screen", Args: "<term>"},
		{Command: "goto", Description: "Switch resource screen", Args: "<resource>"},
		{Command: "page", Description: "Jump to a page", Args: "<n>"},
		{Command: "page-size", Description: "Change rows per page", Args: "<n>"},
		{Command: "reload", Description: "Refetch the current page"},
		{Command: "help", Description: "Show the key reference"},
		{Command: "quit", Description: "Exit"},
	}
}

// Init loads the first screen.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tick(),
		m.loadList(m.workspace()),
		textinput.Blink,
	)
}

// tick drives the result bar timer.
func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
