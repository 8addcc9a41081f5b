package styles

import (
	"strings"

	"vaultstats/internal/extract"
)

var highlighter = extract.New()

// RenderNote styles a markdown note for the terminal: ATX headings by
// level, wiki links and tags inline. Everything else passes through.
func RenderNote(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if level := headingLevel(line); level > 0 {
			lines[i] = HeadingStyle(level).Render(strings.TrimSpace(line[level:]))
			continue
		}
		lines[i] = renderInline(line)
	}
	return strings.Join(lines, "\n")
}

// headingLevel returns 1-6 for "# ".."###### " lines, 0 otherwise
func headingLevel(line string) int {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level >= len(line) || line[level] != ' ' {
		return 0
	}
	return level
}

func renderInline(line string) string {
	spans := highlighter.Spans(line)
	if len(spans) == 0 {
		return line
	}

	var b strings.Builder
	last := 0
	for _, s := range spans {
		b.WriteString(line[last:s.Start])
		text := line[s.Start:s.End]
		if s.Link {
			b.WriteString(Link.Render(text))
		} else {
			b.WriteString(Tag.Render(text))
		}
		last = s.End
	}
	b.WriteString(line[last:])
	return b.String()
}
