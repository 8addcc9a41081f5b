package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7E1DFB") // Obsidian purple
	Secondary = lipgloss.Color("#10B981") // Green
	Accent    = lipgloss.Color("#60A5FA") // Blue
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Stats dashboard
	StatLabel = lipgloss.NewStyle().
			Foreground(Muted).
			Width(14)

	StatValue = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	StatPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 2)

	TagCount = lipgloss.NewStyle().
			Foreground(Muted).
			Width(6).
			Align(lipgloss.Right)

	Spinner = lipgloss.NewStyle().
		Foreground(Primary)

	// Markdown
	Heading1 = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(Primary)

	Heading2 = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	Heading3 = lipgloss.NewStyle().
			Bold(true).
			Foreground(Accent)

	Tag = lipgloss.NewStyle().
		Foreground(Secondary)

	Link = lipgloss.NewStyle().
		Foreground(Accent).
		Underline(true)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	WarningMsg = lipgloss.NewStyle().
			Foreground(Warning)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// HeadingStyle returns the style for a markdown heading of the given level
func HeadingStyle(level int) lipgloss.Style {
	switch level {
	case 1:
		return Heading1
	case 2:
		return Heading2
	default:
		return Heading3
	}
}
