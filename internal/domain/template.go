package domain

import (
	"fmt"
	"os"
	"strings"
)

// Template placeholders
const (
	PlaceholderTime = "?time"
	PlaceholderBody = "?body"
)

// DefaultTemplate is used when no template file is configured
var DefaultTemplate = Template{Text: PlaceholderBody + "\n"}

// TemplateArgs holds the values substituted into a note template
type TemplateArgs struct {
	Date string
	Body string
}

// Template is a note body with ?time and ?body placeholders
type Template struct {
	Path string
	Text string
}

// LoadTemplate reads a template from path
func LoadTemplate(path string) (Template, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("failed to read template: %w", err)
	}
	return Template{Path: path, Text: string(content)}, nil
}

// Render substitutes args into the template
func (t Template) Render(args TemplateArgs) string {
	r := strings.NewReplacer(
		PlaceholderTime, args.Date,
		PlaceholderBody, args.Body,
	)
	return r.Replace(t.Text)
}
