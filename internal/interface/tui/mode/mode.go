// Package mode defines the interaction modes of the admin screen.
package mode

// Mode is the current interaction mode.
type Mode int

const (
	// Normal is the default table navigation mode.
	Normal Mode = iota
	// Create shows the new-record form overlay.
	Create
	// Edit shows the edit form overlay bound to the selected record.
	Edit
	// ConfirmDelete shows the delete confirmation dialog.
	ConfirmDelete
	// Search captures the debounced search input (/ key).
	Search
	// Command is the command palette (: key).
	Command
	// Help is the full-screen key reference.
	Help
	// Detail shows the full selected record.
	Detail
)

// String returns the mode name shown in the header.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "NORMAL"
	case Create:
		return "CREATE"
	case Edit:
		return "EDIT"
	case ConfirmDelete:
		return "DELETE"
	case Search:
		return "SEARCH"
	case Command:
		return "COMMAND"
	case Help:
		return "HELP"
	case Detail:
		return "DETAIL"
	default:
		return "UNKNOWN"
	}
}
