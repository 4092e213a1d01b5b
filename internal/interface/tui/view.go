package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vivla-tech/vivla-guides-sub001/internal/admin"
	"github.com/vivla-tech/vivla-guides-sub001/internal/api"
	"github.com/vivla-tech/vivla-guides-sub001/internal/interface/tui/components"
	"github.com/vivla-tech/vivla-guides-sub001/internal/interface/tui/mode"
)

// View renders the screen.
func (m Model) View() string {
	if !m.ready || m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderTabs())
	sections = append(sections, m.renderContent())

	if m.mode != mode.Normal && m.mode != mode.Help {
		sections = append(sections, m.renderModeOverlay())
	}

	if m.showResult {
		sections = append(sections, m.renderResultBar())
	}

	sections = append(sections, m.renderFooter())

	base := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.mode == mode.Help {
		return m.renderHelpOverlay(base)
	}

	// Fill the whole terminal so resizes leave no artifacts.
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Left,
		lipgloss.Top,
		base,
	)
}

func (m Model) renderModeOverlay() string {
	switch m.mode {
	case mode.Create, mode.Edit:
		return m.renderForm()
	case mode.ConfirmDelete:
		return m.renderConfirmDialog()
	case mode.Search:
		return m.renderSearchBar()
	case mode.Command:
		return m.renderCommandPalette()
	case mode.Detail:
		return m.renderDetailOverlay()
	default:
		return ""
	}
}

func (m Model) renderHeader() string {
	title := HeaderTitleStyle.Render("⌂ vivla-admin")

	modeStr := ""
	if m.mode != mode.Normal {
		modeStr = ModeStyle.Render(" [" + m.mode.String() + "]")
	}

	state := m.workspace().List.State()
	info := fmt.Sprintf("%s · %d records", m.schema().Title, state.Total)
	if term := m.workspace().Search.Term(); term != "" {
		info += fmt.Sprintf(" · search: %q", term)
	}
	if state.Loading {
		info += " · loading..."
	}

	header := lipgloss.JoinHorizontal(lipgloss.Left,
		title,
		modeStr,
		strings.Repeat(" ", 3),
		HeaderInfoStyle.Render(info),
	)

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(ColorMuted).
		Render(header)
}

func (m Model) renderTabs() string {
	var tabs []string
	for i, s := range m.schemas {
		style := InactiveTabStyle
		if i == m.active {
			style = ActiveTabStyle
		}
		tabs = append(tabs, style.Render(s.Title))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, tabs...)
}

func (m Model) renderContent() string {
	schema := m.schema()
	state := m.workspace().List.State()

	columns := make([]components.TableColumn, 0, len(schema.Columns)+1)
	columns = append(columns, components.TableColumn{Name: "ID", Width: 12})
	for _, col := range schema.Columns {
		columns = append(columns, components.TableColumn{Name: col.Title, Width: col.Width})
	}

	rows := make([][]string, len(state.Items))
	for i, rec := range state.Items {
		row := make([]string, 0, len(columns))
		row = append(row, api.RecordID(rec))
		for _, col := range schema.Columns {
			row = append(row, formatCell(rec[col.Key]))
		}
		rows[i] = row
	}

	table := components.NewTable(columns)
	table.SetRows(rows)
	if m.mode == mode.Normal {
		table.SetSelected(m.cursor[schema.Resource])
	} else {
		table.SetSelected(-1)
	}
	if term := m.workspace().Search.Term(); term != "" {
		table.SetEmptyMessage(fmt.Sprintf("no records match %q", term))
	}

	pageInfo := MutedStyle.Render(fmt.Sprintf("page %d/%d · %d total",
		state.Page, maxInt(state.TotalPages, 1), state.Total))

	content := lipgloss.JoinVertical(lipgloss.Left, table.View(), "", pageInfo)

	contentHeight := m.height - 10
	if contentHeight < 5 {
		contentHeight = 5
	}

	return lipgloss.NewStyle().
		Width(m.width - 2).
		Height(contentHeight).
		Padding(1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Render(content)
}

func (m Model) renderForm() string {
	width := m.width - 10
	if width < 56 {
		width = 56
	}

	ws := m.workspace()
	title := "New " + strings.TrimSuffix(m.schema().Title, "s")
	if m.mode == mode.Edit {
		title = "Edit " + strings.TrimSuffix(m.schema().Title, "s")
	}

	var lines []string
	lines = append(lines, FieldLabelStyle.Render(title))
	lines = append(lines, "")

	for i, f := range m.form.fields {
		label := f.Label
		if f.Required {
			label += " *"
		}
		lines = append(lines, FieldLabelStyle.Render(label))
		lines = append(lines, m.form.inputs[i].View())

		if msg, ok := m.form.errs[f.Name]; ok {
			lines = append(lines, FieldErrorStyle.Render("  ⚠ "+msg))
		}

		if f.Kind == admin.FieldImages {
			staged := m.stagedCount(f.Name)
			if staged > 0 {
				lines = append(lines, SuccessStyle.Render(fmt.Sprintf("  %d file(s) attached", staged)))
			}
		}

		if i == m.form.focus && f.Kind == admin.FieldRef {
			lines = append(lines, m.renderOptions()...)
		}
		lines = append(lines, "")
	}

	status := ""
	busy := ws.Form.Busy()
	if m.mode == mode.Edit {
		busy = ws.Session.Busy()
	}
	switch {
	case m.form.uploads > 0:
		status = WarningStyle.Render(fmt.Sprintf("uploading %d file(s)... save disabled", m.form.uploads))
	case busy:
		status = WarningStyle.Render("saving...")
	}
	if status != "" {
		lines = append(lines, status)
	}

	lines = append(lines, MutedStyle.Render("[C-s] save  [Tab] next  [C-u] upload  [Esc] cancel"))

	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Render(strings.Join(lines, "\n"))
}

// stagedCount reports how many values the focused draft holds for an images
// field.
func (m Model) stagedCount(field string) int {
	ws := m.workspace()
	if m.mode == mode.Edit {
		return len(ws.Session.Draft().Strings(field))
	}
	return len(ws.Form.Draft().Strings(field))
}

func (m Model) renderOptions() []string {
	if len(m.form.options) == 0 {
		return []string{OptionStyle.Render("  loading options...")}
	}

	var lines []string
	maxShown := 6
	for i, opt := range m.form.options {
		if i >= maxShown {
			lines = append(lines, OptionStyle.Render(fmt.Sprintf("  ... %d more", len(m.form.options)-maxShown)))
			break
		}
		label := optionLabel(opt)
		if i == m.form.optionIdx {
			lines = append(lines, OptionSelectedStyle.Render("  ▸ "+label))
		} else {
			lines = append(lines, OptionStyle.Render("    "+label))
		}
	}
	return lines
}

// optionLabel picks the friendliest display value a lookup record offers.
func optionLabel(rec api.Record) string {
	for _, key := range []string{"name", "title"} {
		if v, ok := rec[key].(string); ok && v != "" {
			return fmt.Sprintf("%s (%s)", v, api.RecordID(rec))
		}
	}
	return api.RecordID(rec)
}

// renderDetailOverlay shows every field the backend returned for the
// selected record, not just the table columns.
func (m Model) renderDetailOverlay() string {
	width := m.width - 20
	if width < 50 {
		width = 50
	}

	var lines []string
	lines = append(lines, FieldLabelStyle.Render(strings.TrimSuffix(m.schema().Title, "s")+" detail"))
	lines = append(lines, "")

	row := func(label string, v any) {
		lines = append(lines, fmt.Sprintf("%s %s",
			MutedStyle.Render(fmt.Sprintf("%-18s", label)),
			formatCell(v)))
	}

	row("id", api.RecordID(m.detail))
	shown := map[string]bool{"id": true}
	for _, f := range m.schema().Fields {
		row(f.Label, m.detail[f.Name])
		shown[f.Name] = true
	}
	for _, key := range []string{"created_at", "updated_at"} {
		if v, ok := m.detail[key]; ok && !shown[key] {
			row(key, v)
		}
	}

	lines = append(lines, "")
	lines = append(lines, MutedStyle.Render("press any key to close"))

	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderConfirmDialog() string {
	width := m.width - 30
	if width < 44 {
		width = 44
	}

	ws := m.workspace()
	target := ws.Session.Target()
	label := api.RecordID(target)
	if name := optionLabel(target); name != "" {
		label = name
	}

	var lines []string
	lines = append(lines, WarningStyle.Render("⚠ Delete "+strings.TrimSuffix(m.schema().Title, "s")))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Delete %s? This cannot be undone.", label))
	lines = append(lines, "")

	if err := ws.Session.Err(); err != nil {
		lines = append(lines, ErrorStyle.Render("✗ "+err.Error()))
		lines = append(lines, "")
	}
	if ws.Session.Busy() {
		lines = append(lines, WarningStyle.Render("deleting..."))
		lines = append(lines, "")
	}

	yes := SuccessStyle.Render("[Y] Yes")
	no := ErrorStyle.Render("[N] No")
	lines = append(lines, yes+"  "+no+"  "+MutedStyle.Render("[Esc] cancel"))

	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderSearchBar() string {
	width := m.width - 10
	if width < 50 {
		width = 50
	}

	prompt := FieldLabelStyle.Render("/") + m.searchInput.View()
	hint := MutedStyle.Render(fmt.Sprintf(
		"min %d chars · fires after %s pause · Enter applies now · Esc closes",
		admin.DefaultSearchMinLen, admin.DefaultSearchDebounce))

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Render(prompt + "\n" + hint)
}

func (m Model) renderCommandPalette() string {
	width := m.width - 10
	if width < 50 {
		width = 50
	}

	input := FieldLabelStyle.Render(":") + m.paletteInput.View()

	var hints []string
	maxHints := 8
	for i, filtered := range m.filtered {
		if i >= maxHints {
			break
		}

		cmdStyled := renderWithHighlight(filtered.Hint.Command, filtered.MatchedIndexes)

		prefix := "  "
		lineStyle := lipgloss.NewStyle()
		if i == m.paletteIdx {
			prefix = "▸ "
			lineStyle = OptionSelectedStyle
		}

		desc := MutedStyle.Render(filtered.Hint.Description)
		args := ""
		if filtered.Hint.Args != "" {
			args = MutedStyle.Render(" " + filtered.Hint.Args)
		}

		hints = append(hints, lineStyle.Render(fmt.Sprintf("%s%-12s %s%s", prefix, cmdStyled, desc, args)))
	}

	if len(hints) == 0 && m.paletteInput.Value() != "" {
		hints = append(hints, MutedStyle.Render("  no matching command"))
	}

	help := MutedStyle.Render("Tab: complete  ↑↓: select  Enter: run  Esc: cancel")

	content := lipgloss.JoinVertical(lipgloss.Left,
		input,
		strings.Repeat("─", width-4),
		strings.Join(hints, "\n"),
		"",
		help,
	)

	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Render(content)
}

// renderWithHighlight marks the fuzzy-matched runes.
func renderWithHighlight(cmd string, matchedIndexes []int) string {
	if len(matchedIndexes) == 0 {
		return cmd
	}

	matchSet := make(map[int]bool, len(matchedIndexes))
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	highlight := lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)

	var b strings.Builder
	for i, ch := range cmd {
		if matchSet[i] {
			b.WriteString(highlight.Render(string(ch)))
		} else {
			b.WriteString(string(ch))
		}
	}
	return b.String()
}

func (m Model) renderHelpOverlay(base string) string {
	if m.width < 40 || m.height < 15 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			"[?] Help (terminal too small)\npress any key")
	}

	overlayWidth := m.width * 70 / 100
	if overlayWidth > m.width-4 {
		overlayWidth = m.width - 4
	}
	if overlayWidth < 40 {
		overlayWidth = 40
	}

	titleStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true).Width(8)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	row := func(k, d string) string {
		return fmt.Sprintf("  %s %s", keyStyle.Render(k), descStyle.Render(d))
	}

	var lines []string
	lines = append(lines, titleStyle.Render("Help"))
	lines = append(lines, "")

	lines = append(lines, sectionStyle.Render("General"))
	lines = append(lines, row("q", "quit"))
	lines = append(lines, row(":", "command palette"))
	lines = append(lines, row("r", "reload current page"))
	lines = append(lines, row("?", "this help"))
	lines = append(lines, "")

	lines = append(lines, sectionStyle.Render("Screens and paging"))
	lines = append(lines, row("Tab", "next resource screen"))
	lines = append(lines, row("S-Tab", "previous resource screen"))
	lines = append(lines, row("←/→", "previous / next page"))
	lines = append(lines, row("↑/↓", "move row selection"))
	lines = append(lines, "")

	lines = append(lines, sectionStyle.Render("Workflow"))
	lines = append(lines, row("Enter", "view the selected record"))
	lines = append(lines, row("n", "create a record"))
	lines = append(lines, row("e", "edit the selected record"))
	lines = append(lines, row("d", "delete the selected record"))
	lines = append(lines, row("/", "search (debounced, min 3 chars)"))
	lines = append(lines, "")

	lines = append(lines, sectionStyle.Render("Form"))
	lines = append(lines, row("C-s", "save (blocked while uploading)"))
	lines = append(lines, row("C-u", "upload the file at the typed path"))
	lines = append(lines, row("Enter", "apply option / next field"))
	lines = append(lines, row("Esc", "discard and close"))
	lines = append(lines, "")

	lines = append(lines, MutedStyle.Render("press any key to close"))

	overlay := lipgloss.NewStyle().
		Width(overlayWidth-4).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Background(lipgloss.Color("235")).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		overlay,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("237")),
	)
}

func (m Model) renderResultBar() string {
	if m.lastErr != nil {
		return ErrorStyle.Bold(true).Render("✗ " + m.lastErr.Error())
	}
	return SuccessStyle.Bold(true).Render("✓ " + m.lastResult)
}

func (m Model) renderFooter() string {
	type kv struct{ key, desc string }

	var keys []kv
	switch m.mode {
	case mode.Create, mode.Edit:
		keys = []kv{{"C-s", "Save"}, {"Tab", "Next"}, {"C-u", "Upload"}, {"Esc", "Cancel"}}
	case mode.ConfirmDelete:
		keys = []kv{{"y", "Yes"}, {"n", "No"}, {"Esc", "Cancel"}}
	case mode.Search:
		keys = []kv{{"Enter", "Apply"}, {"Esc", "Close"}}
	case mode.Command:
		keys = []kv{{"Enter", "Run"}, {"Tab", "Complete"}, {"Esc", "Cancel"}}
	case mode.Detail:
		keys = []kv{{"Esc", "Close"}}
	default:
		keys = []kv{
			{"n", "New"}, {"e", "Edit"}, {"d", "Delete"}, {"/", "Search"},
			{"←→", "Page"}, {"Tab", "Screen"}, {":", "Command"}, {"?", "Help"}, {"q", "Quit"},
		}
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			FooterKeyStyle.Render("["+k.key+"]"),
			FooterDescStyle.Render(k.desc)))
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(ColorMuted).
		Render(strings.Join(parts, "  "))
}

// formatCell renders a record value for a table cell.
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', 2, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		return fmt.Sprintf("%d item(s)", len(val))
	default:
		return fmt.Sprintf("%v", val)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
