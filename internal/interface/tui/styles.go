package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("205")
	ColorSecondary = lipgloss.Color("62")
	ColorSuccess   = lipgloss.Color("82")
	ColorWarning   = lipgloss.Color("214")
	ColorError     = lipgloss.Color("196")
	ColorMuted     = lipgloss.Color("240")
	ColorWhite     = lipgloss.Color("255")
	ColorDark      = lipgloss.Color("236")
)

var (
	// Header
	HeaderTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorWhite)

	HeaderInfoStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ModeStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	// Resource tabs
	TabStyle = lipgloss.NewStyle().
			Padding(0, 1)

	ActiveTabStyle = TabStyle.
			Bold(true).
			Foreground(ColorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(ColorPrimary)

	InactiveTabStyle = TabStyle.
				Foreground(ColorMuted)

	// Form
	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	FieldErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	OptionStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	OptionSelectedStyle = lipgloss.NewStyle().
				Background(ColorDark).
				Foreground(ColorWhite)

	// Footer
	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Generic text
	BoldStyle = lipgloss.NewStyle().Bold(true)

	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().Foreground(ColorError)

	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
)
