package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"vaultstats/internal/adapters/tui/views"
	"vaultstats/internal/application/commands"
	"vaultstats/internal/domain"
	"vaultstats/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewStats ViewState = iota
	ViewCreate
	ViewShow
	ViewHelp
)

// Deps holds what the application needs from the outside
type Deps struct {
	Root      string
	Scanner   commands.Scanner
	Repo      ports.NoteRepository
	Template  domain.Template
	Top       int
	Editor    ports.EditorOpener
	Clipboard func(string) error

	// Changes signals that vault documents changed. Nil disables auto rescan.
	Changes <-chan struct{}
}

// App is the main TUI application model
type App struct {
	editor  ports.EditorOpener
	changes <-chan struct{}

	state  ViewState
	stats  *views.StatsModel
	create *views.CreateModel
	show   *views.ShowModel
	help   *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(d Deps) *App {
	clip := d.Clipboard
	if clip == nil {
		clip = func(string) error { return fmt.Errorf("clipboard not available") }
	}

	return &App{
		editor:  d.Editor,
		changes: d.Changes,
		state:   ViewStats,
		stats:   views.NewStatsModel(d.Scanner, d.Root, d.Top, clip),
		create:  views.NewCreateModel(d.Repo, d.Template, d.Editor != nil),
		show:    views.NewShowModel(d.Repo),
		help:    views.NewHelpModel(),
	}
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.stats.Init(), a.waitForChange())
}

// vaultChangedMsg is sent when the watcher reports changed documents
type vaultChangedMsg struct{}

func (a *App) waitForChange() tea.Cmd {
	if a.changes == nil {
		return nil
	}
	changes := a.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return vaultChangedMsg{}
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.stats.SetSize(msg.Width, msg.Height)
		a.create.SetSize(msg.Width, msg.Height)
		a.show.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToStatsMsg:
		a.state = ViewStats
		return a, nil

	case views.SwitchToCreateMsg:
		a.state = ViewCreate
		a.create.Reset()
		return a, a.create.Init()

	case views.SwitchToShowMsg:
		a.state = ViewShow
		return a, a.show.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	// Background scans always report to the dashboard
	case views.StatsLoadedMsg, spinner.TickMsg:
		_, cmd := a.stats.Update(msg)
		return a, cmd

	// A new note changes the counts
	case views.NoteWrittenMsg:
		_, cmd := a.create.Update(msg)
		return a, tea.Batch(cmd, a.stats.RequestRescan())

	case vaultChangedMsg:
		return a, tea.Batch(a.stats.RequestRescan(), a.waitForChange())

	case views.OpenEditorMsg:
		a.state = ViewStats
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.stats.SetMessage(fmt.Sprintf("Editor failed: %v", msg.err), true)
			return a, nil
		}
		return a, a.stats.RequestRescan()
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewStats:
		_, cmd = a.stats.Update(msg)
	case ViewCreate:
		_, cmd = a.create.Update(msg)
	case ViewShow:
		_, cmd = a.show.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewCreate:
		return a.create.View()
	case ViewShow:
		return a.show.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.stats.View()
	}
}
