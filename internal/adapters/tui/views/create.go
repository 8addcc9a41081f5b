package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"vaultstats/internal/adapters/tui/styles"
	"vaultstats/internal/application/commands"
	"vaultstats/internal/domain"
	"vaultstats/internal/ports"
)

// Create form fields
const (
	fieldIdea = iota
	fieldNote
)

// CreateKeyMap defines key bindings for the create view
type CreateKeyMap struct {
	Edit key.Binding
}

var CreateKeys = CreateKeyMap{
	Edit: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "save and edit"),
	),
}

// CreateErrMsg reports a failed create or append
type CreateErrMsg struct {
	Err error
}

// CreateModel captures an idea as a new note, or appends it to an
// existing note when a note path is given
type CreateModel struct {
	ViewState

	repo     ports.NoteRepository
	template domain.Template
	canEdit  bool
	form     *InputForm

	// preview is the body of the last created note
	preview string
}

// NewCreateModel creates a new create view model
func NewCreateModel(repo ports.NoteRepository, template domain.Template, canEdit bool) *CreateModel {
	return &CreateModel{
		repo:     repo,
		template: template,
		canEdit:  canEdit,
		form: NewInputForm(
			NewInputField("Idea", "What's on your mind? #tags and [[links]] welcome", 0),
			NewInputField("Append to (optional)", "journal.md", 200),
		),
	}
}

// Init initializes the create view
func (m *CreateModel) Init() tea.Cmd {
	return m.form.Init()
}

// Reset clears the form for a new idea
func (m *CreateModel) Reset() {
	m.form.Reset()
	m.preview = ""
	m.ClearMessage()
}

// SetSize updates the view dimensions
func (m *CreateModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.form.SetWidth(width - 10)
}

// Update handles messages for the create view
func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case NoteWrittenMsg:
		m.form.Reset()
		m.SetMessage(msg.Message, false)
		return m, nil

	case CreateErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		if m.canEdit && key.Matches(msg, CreateKeys.Edit) {
			return m, m.save(true)
		}
	}

	action, cmd := m.form.Update(msg)
	switch action {
	case FormSubmit:
		return m, m.save(false)
	case FormCancel:
		return m, func() tea.Msg { return SwitchToStatsMsg{} }
	}
	return m, cmd
}

// save writes the idea and returns the resulting message
func (m *CreateModel) save(edit bool) tea.Cmd {
	idea := m.form.Value(fieldIdea)
	note := m.form.Value(fieldNote)
	ctx := context.Background()

	var (
		result *commands.NoteResult
		err    error
	)
	if note != "" {
		result, err = commands.NewAppendNoteCommand(m.repo, note, idea).Execute(ctx)
	} else {
		result, err = commands.NewNewNoteCommand(m.repo, m.template, idea).Execute(ctx)
	}
	if err != nil {
		return func() tea.Msg { return CreateErrMsg{Err: err} }
	}

	m.preview = result.Body
	if edit {
		return func() tea.Msg { return OpenEditorMsg{Path: result.Path} }
	}
	return func() tea.Msg {
		return NoteWrittenMsg{Path: result.Path, Message: result.Message}
	}
}

// View renders the create view
func (m *CreateModel) View() string {
	v := NewViewBuilder().
		Title("New Note").
		Subtitle("Leave \"Append to\" empty to create Note_<timestamp>.md")

	v.Line(m.form.View()).BlankLine()
	v.Message(m.Message, m.MessageErr)

	if m.preview != "" {
		v.Section("Preview")
		v.Line(styles.RenderNote(m.preview)).BlankLine()
	}

	help := m.form.RenderHelp("save")
	if m.canEdit {
		help += styles.HelpSeparator.String() + RenderKeyHelp(CreateKeys.Edit)
	}
	return v.Line(help).String()
}
