package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"vaultstats/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, HelpKeys.Close) {
		return m, func() tea.Msg { return SwitchToStatsMsg{} }
	}
	return m, nil
}

// helpSection is a titled list of key and description pairs
type helpSection struct {
	title string
	rows  [][2]string
}

var helpSections = []helpSection{
	{"Dashboard", [][2]string{
		{"r", "Rescan the vault"},
		{"y", "Copy the summary to the clipboard"},
		{"n", "Capture a new idea"},
		{"s", "Show a note"},
	}},
	{"Forms", [][2]string{
		{"tab", "Next field"},
		{"enter", "Submit"},
		{"ctrl+e", "Save and open in $EDITOR"},
		{"esc", "Back to the dashboard"},
	}},
	{"General", [][2]string{
		{"?", "Toggle help"},
		{"q / Ctrl+C", "Quit"},
	}},
}

var helpKeyColumn = styles.HelpKey.Width(20)

// View renders the help view
func (m *HelpModel) View() string {
	v := NewViewBuilder().
		Title("Vaultstats Help").
		Subtitle("Link, word and tag statistics for your vault")

	for _, section := range helpSections {
		v.Section(section.title)
		for _, row := range section.rows {
			v.Line("  " + helpKeyColumn.Render(row[0]) + styles.HelpDesc.Render(row[1]))
		}
		v.BlankLine()
	}

	v.Section("Counting").
		Line(styles.MutedText.Render("  Links : [[target]]")).
		Line(styles.MutedText.Render("  Tags  : #word")).
		Line(styles.MutedText.Render("  Words : whitespace separated runs")).
		BlankLine()

	return v.Help(HelpKeys.Close).String()
}
