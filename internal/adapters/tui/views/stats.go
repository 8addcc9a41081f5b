package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vaultstats/internal/adapters/tui/styles"
	"vaultstats/internal/application/commands"
)

// StatsKeyMap defines key bindings for the stats dashboard
type StatsKeyMap struct {
	Rescan key.Binding
	Copy   key.Binding
	New    key.Binding
	Show   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var StatsKeys = StatsKeyMap{
	Rescan: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rescan"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new note"),
	),
	Show: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "show note"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// StatsLoadedMsg carries the outcome of a background scan
type StatsLoadedMsg struct {
	Result *commands.StatsResult
	Err    error
}

// StatsModel is the vault statistics dashboard
type StatsModel struct {
	ViewState

	scanner commands.Scanner
	root    string
	top     int
	clip    func(string) error

	spinner  spinner.Model
	scanning bool
	// stale marks a change seen while a scan was already running
	stale  bool
	result *commands.StatsResult
}

// NewStatsModel creates a dashboard scanning root. clip writes to the clipboard.
func NewStatsModel(scanner commands.Scanner, root string, top int, clip func(string) error) *StatsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &StatsModel{
		scanner: scanner,
		root:    root,
		top:     top,
		clip:    clip,
		spinner: s,
	}
}

// Init starts the first scan
func (m *StatsModel) Init() tea.Cmd {
	return m.Rescan()
}

// Rescan runs a fresh scan in the background
func (m *StatsModel) Rescan() tea.Cmd {
	m.scanning = true
	m.ClearMessage()

	scanner, root, top := m.scanner, m.root, m.top
	scan := func() tea.Msg {
		result, err := commands.NewStatsCommand(scanner, root, top).Execute(context.Background())
		return StatsLoadedMsg{Result: result, Err: err}
	}
	return tea.Batch(m.spinner.Tick, scan)
}

// RequestRescan starts a scan, or queues one to follow the scan in flight
func (m *StatsModel) RequestRescan() tea.Cmd {
	if m.scanning {
		m.stale = true
		return nil
	}
	return m.Rescan()
}

// Scanning reports whether a scan is in flight
func (m *StatsModel) Scanning() bool {
	return m.scanning
}

// Result returns the last completed scan, nil before the first one
func (m *StatsModel) Result() *commands.StatsResult {
	return m.result
}

// Update handles messages for the stats view
func (m *StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StatsLoadedMsg:
		m.scanning = false
		if msg.Err != nil {
			m.SetMessage(msg.Err.Error(), true)
		} else {
			m.result = msg.Result
		}
		if m.stale {
			m.stale = false
			return m, m.Rescan()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, StatsKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, StatsKeys.Rescan):
			if m.scanning {
				return m, nil
			}
			return m, m.Rescan()
		case key.Matches(msg, StatsKeys.Copy):
			m.copySummary()
			return m, nil
		case key.Matches(msg, StatsKeys.New):
			return m, func() tea.Msg { return SwitchToCreateMsg{} }
		case key.Matches(msg, StatsKeys.Show):
			return m, func() tea.Msg { return SwitchToShowMsg{} }
		case key.Matches(msg, StatsKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		}
	}

	return m, nil
}

func (m *StatsModel) copySummary() {
	if m.result == nil {
		m.SetMessage("Nothing to copy yet", true)
		return
	}
	if err := m.clip(m.result.Summary()); err != nil {
		m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
		return
	}
	m.SetMessage("Copied stats to clipboard", false)
}

// View renders the stats view
func (m *StatsModel) View() string {
	v := NewViewBuilder().
		Title("Vault Statistics").
		Subtitle(m.root)

	switch {
	case m.scanning:
		v.Line(m.spinner.View() + " Scanning vault...").BlankLine()
	case m.result != nil:
		report := m.result.Report
		panel := lipgloss.JoinVertical(lipgloss.Left,
			RenderStat("Vault Links", report.Totals.LinkCount),
			RenderStat("Vault Words", report.Totals.WordCount),
			RenderStat("Documents", report.Documents),
		)
		v.Line(styles.StatPanel.Render(panel)).BlankLine()

		v.Section(fmt.Sprintf("Most Frequent Tags (top %d)", m.top))
		v.Line(RenderTagRanking(m.result.TopTags)).BlankLine()

		if skipped := report.Skipped(); skipped > 0 {
			v.Line(styles.WarningMsg.Render(fmt.Sprintf("Skipped documents: %d", skipped))).BlankLine()
		}
		if unreadable := report.Unreadable(); unreadable > 0 {
			v.Line(styles.WarningMsg.Render(fmt.Sprintf("Unreadable entries: %d", unreadable))).BlankLine()
		}
	}

	return v.Message(m.Message, m.MessageErr).
		Help(StatsKeys.Rescan, StatsKeys.Copy, StatsKeys.New, StatsKeys.Show, StatsKeys.Help, StatsKeys.Quit).
		String()
}
