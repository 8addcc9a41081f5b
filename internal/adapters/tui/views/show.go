package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"vaultstats/internal/adapters/tui/styles"
	"vaultstats/internal/application/commands"
	"vaultstats/internal/ports"
)

// ShowKeyMap defines key bindings for the show view
type ShowKeyMap struct {
	Load key.Binding
	Up   key.Binding
	Down key.Binding
	Back key.Binding
}

var ShowKeys = ShowKeyMap{
	Load: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "load"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "pgup"),
		key.WithHelp("↑/pgup", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "pgdown"),
		key.WithHelp("↓/pgdn", "scroll down"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

// showChrome is the number of lines used around the viewport
const showChrome = 14

// ShowModel renders a note with its tags and links highlighted
type ShowModel struct {
	ViewState

	repo     ports.NoteRepository
	input    textinput.Model
	viewport viewport.Model
	path     string
	loaded   bool
}

// NewShowModel creates a new show view model
func NewShowModel(repo ports.NoteRepository) *ShowModel {
	input := textinput.New()
	input.Placeholder = "path/to/note.md"
	input.Prompt = ""
	input.CharLimit = 200
	input.Focus()

	return &ShowModel{
		repo:     repo,
		input:    input,
		viewport: viewport.New(80, 20),
	}
}

// Init initializes the show view
func (m *ShowModel) Init() tea.Cmd {
	m.input.Focus()
	return textinput.Blink
}

// SetSize updates the view dimensions
func (m *ShowModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.input.Width = max(width-10, 10)
	m.viewport.Width = max(width-4, 20)
	m.viewport.Height = max(height-showChrome, 5)
}

// Path returns the absolute path of the loaded note
func (m *ShowModel) Path() string {
	return m.path
}

// Content returns the rendered content held by the viewport
func (m *ShowModel) Content() string {
	if !m.loaded {
		return ""
	}
	return m.viewport.View()
}

// Update handles messages for the show view
func (m *ShowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, ShowKeys.Back):
			return m, func() tea.Msg { return SwitchToStatsMsg{} }
		case key.Matches(msg, ShowKeys.Load):
			m.load()
			return m, nil
		case key.Matches(msg, ShowKeys.Up, ShowKeys.Down):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ShowModel) load() {
	result, err := commands.NewShowNoteCommand(m.repo, m.input.Value()).Execute(context.Background())
	if err != nil {
		m.SetMessage(err.Error(), true)
		return
	}

	m.ClearMessage()
	m.path = result.Path
	m.loaded = true
	m.viewport.SetContent(styles.RenderNote(result.Body))
	m.viewport.GotoTop()
}

// View renders the show view
func (m *ShowModel) View() string {
	v := NewViewBuilder().Title("Show Note")

	v.Section("Note").
		Line(styles.InputFocused.Render(m.input.View())).
		BlankLine()
	v.Message(m.Message, m.MessageErr)

	if m.loaded {
		v.Line(styles.MutedText.Render(m.path))
		v.Line(m.viewport.View()).BlankLine()
	}

	return v.Help(ShowKeys.Load, ShowKeys.Up, ShowKeys.Down, ShowKeys.Back).String()
}
