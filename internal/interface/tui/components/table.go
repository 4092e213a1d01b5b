// Package components holds the reusable rendering pieces of the admin screen.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62")).
				Padding(0, 1)

	tableRowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	tableSelectedStyle = tableRowStyle.
				Background(lipgloss.Color("236"))

	tableBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	tableEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 2)
)

// TableColumn defines one column.
type TableColumn struct {
	Name  string
	Width int
}

// Table renders a resource page with a selectable row.
type Table struct {
	columns  []TableColumn
	rows     [][]string
	selected int
	empty    string
}

// NewTable creates a table.
func NewTable(columns []TableColumn) *Table {
	return &Table{
		columns:  columns,
		selected: -1,
		empty:    "no records",
	}
}

// SetRows replaces the rows.
func (t *Table) SetRows(rows [][]string) {
	t.rows = rows
}

// SetSelected sets the highlighted row, -1 for none.
func (t *Table) SetSelected(idx int) {
	t.selected = idx
}

// SetEmptyMessage sets the text shown when there are no rows.
func (t *Table) SetEmptyMessage(msg string) {
	t.empty = msg
}

// View renders the table.
func (t *Table) View() string {
	var lines []string

	var headerCells []string
	for _, col := range t.columns {
		headerCells = append(headerCells, fmt.Sprintf("%-*s", col.Width, truncate(col.Name, col.Width)))
	}
	lines = append(lines, tableHeaderStyle.Render(strings.Join(headerCells, " ")))

	totalWidth := 0
	for _, col := range t.columns {
		totalWidth += col.Width + 1
	}
	lines = append(lines, tableBorderStyle.Render(strings.Repeat("─", totalWidth)))

	if len(t.rows) == 0 {
		lines = append(lines, tableEmptyStyle.Render(t.empty))
		return strings.Join(lines, "\n")
	}

	for i, row := range t.rows {
		var cells []string
		for j, cell := range row {
			if j < len(t.columns) {
				cells = append(cells, fmt.Sprintf("%-*s", t.columns[j].Width, truncate(cell, t.columns[j].Width)))
			}
		}
		rowStr := strings.Join(cells, " ")

		style := tableRowStyle
		if i == t.selected {
			style = tableSelectedStyle
		}
		lines = append(lines, style.Render(rowStr))
	}

	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
