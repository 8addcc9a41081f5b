package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"vaultstats/internal/adapters/tui/styles"
)

// FormAction is what a key press asked the form to do
type FormAction int

const (
	FormNone FormAction = iota
	FormSubmit
	FormCancel
)

// InputFormKeyMap defines key bindings for input forms
type InputFormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Tab    key.Binding
}

// DefaultInputFormKeys returns the default input form key bindings
var DefaultInputFormKeys = InputFormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "next field"),
	),
}

// InputField is a labelled text input
type InputField struct {
	Label string
	Input textinput.Model
}

// NewInputField creates an input field; charLimit <= 0 keeps the default
func NewInputField(label, placeholder string, charLimit int) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = ""
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	return InputField{Label: label, Input: input}
}

// InputForm is a vertical list of fields with one focused at a time
type InputForm struct {
	Fields  []InputField
	Focused int
	Keys    InputFormKeyMap
}

// NewInputForm creates a form with the first field focused
func NewInputForm(fields ...InputField) *InputForm {
	f := &InputForm{Fields: fields, Keys: DefaultInputFormKeys}
	f.focus(0)
	return f
}

// Init returns the cursor blink command
func (f *InputForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update routes msg to the focused field and reports submit or cancel
func (f *InputForm) Update(msg tea.Msg) (FormAction, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, f.Keys.Submit):
			return FormSubmit, nil
		case key.Matches(msg, f.Keys.Cancel):
			return FormCancel, nil
		case key.Matches(msg, f.Keys.Tab):
			f.focus((f.Focused + 1) % max(len(f.Fields), 1))
			return FormNone, nil
		}
	}

	if len(f.Fields) == 0 {
		return FormNone, nil
	}
	var cmd tea.Cmd
	f.Fields[f.Focused].Input, cmd = f.Fields[f.Focused].Input.Update(msg)
	return FormNone, cmd
}

func (f *InputForm) focus(index int) {
	if index < 0 || index >= len(f.Fields) {
		return
	}
	for i := range f.Fields {
		f.Fields[i].Input.Blur()
	}
	f.Focused = index
	f.Fields[index].Input.Focus()
}

// Value returns the trimmed value of a field
func (f *InputForm) Value(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}
	return strings.TrimSpace(f.Fields[index].Input.Value())
}

// SetValue replaces the value of a field
func (f *InputForm) SetValue(index int, value string) {
	if index >= 0 && index < len(f.Fields) {
		f.Fields[index].Input.SetValue(value)
	}
}

// Reset clears every field and focuses the first one
func (f *InputForm) Reset() {
	for i := range f.Fields {
		f.Fields[i].Input.SetValue("")
	}
	f.focus(0)
}

// SetWidth sizes every input to width columns
func (f *InputForm) SetWidth(width int) {
	for i := range f.Fields {
		f.Fields[i].Input.Width = max(width, 10)
	}
}

// View renders every field, highlighting the focused one
func (f *InputForm) View() string {
	parts := make([]string, 0, len(f.Fields))
	for i, field := range f.Fields {
		box := styles.InputField
		if i == f.Focused {
			box = styles.InputFocused
		}
		parts = append(parts, styles.InputLabel.Render(field.Label)+"\n"+box.Render(field.Input.View()))
	}
	return strings.Join(parts, "\n\n")
}

// RenderHelp renders the key hints for the form
func (f *InputForm) RenderHelp(submitText string) string {
	var parts []string
	if len(f.Fields) > 1 {
		parts = append(parts, RenderKeyHelp(f.Keys.Tab))
	}
	parts = append(parts,
		styles.HelpKey.Render("enter")+" "+styles.HelpDesc.Render(submitText),
		RenderKeyHelp(f.Keys.Cancel),
	)
	return strings.Join(parts, styles.HelpSeparator.String())
}
