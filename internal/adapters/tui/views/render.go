package views

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"vaultstats/internal/adapters/tui/styles"
	"vaultstats/internal/domain"
)

// RenderKeyHelp renders one binding as "key desc"
func RenderKeyHelp(b key.Binding) string {
	h := b.Help()
	return styles.HelpKey.Render(h.Key) + " " + styles.HelpDesc.Render(h.Desc)
}

// RenderHelpLine joins bindings with the help separator
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = RenderKeyHelp(b)
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a status message; empty stays empty
func RenderMessage(message string, isError bool) string {
	switch {
	case message == "":
		return ""
	case isError:
		return styles.ErrorMsg.Render(message)
	default:
		return styles.Success.Render(message)
	}
}

// RenderStat renders one row of the stats panel
func RenderStat(label string, value int) string {
	return styles.StatLabel.Render(label) + styles.StatValue.Render(strconv.Itoa(value))
}

// RenderTagRanking renders one "count  tag" row per ranked tag
func RenderTagRanking(tags []domain.TagCount) string {
	if len(tags) == 0 {
		return styles.MutedText.Render("  no tags")
	}

	rows := make([]string, len(tags))
	for i, tc := range tags {
		rows[i] = styles.TagCount.Render(strconv.Itoa(tc.Count)) + "  " + styles.Tag.Render(tc.Tag)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// ViewBuilder assembles a screen top to bottom
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates an empty builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

func (v *ViewBuilder) write(text, trailer string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString(trailer)
	return v
}

// Title adds the screen title
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	return v.write(styles.Title.Render(title), "\n\n")
}

// Subtitle adds a muted line under the title
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	return v.write(styles.Subtitle.Render(subtitle), "\n\n")
}

// Section adds a bold section label
func (v *ViewBuilder) Section(label string) *ViewBuilder {
	return v.write(styles.InputLabel.Render(label), "\n")
}

// Line adds text followed by a newline
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	return v.write(text, "\n")
}

// BlankLine adds an empty line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	return v.write("", "\n")
}

// Message adds a status message, if any
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	return v.write(RenderMessage(message, isError), "\n\n")
}

// Help adds the key hint line
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	return v.write(RenderHelpLine(bindings...), "")
}

// String returns the screen wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
