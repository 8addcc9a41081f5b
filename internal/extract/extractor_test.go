package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"vaultstats/internal/domain"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"only whitespace", " \t\r\n\f ", 0},
		{"single word", "hello", 1},
		{"leading and trailing space", "  hello world  ", 2},
		{"mixed separators", "a\tb\nc\r\nd\fe", 5},
		{"punctuation stays attached", "hello, world! [[link]] #tag", 4},
		{"non-ascii space is not a separator", "a\u00a0b", 1},
		{"vertical tab is not a separator", "a\vb", 1},
		{"unicode words", "héllo wörld", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountWords(tt.content))
		})
	}
}

func TestCountLinks(t *testing.T) {
	x := New()

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"no links", "plain text", 0},
		{"single link", "see [[b]]", 1},
		{"two links", "[[a]] and [[b|alias]]", 2},
		{"adjacent links", "[[a]][[b]]", 2},
		{"unterminated", "start [[never closed", 0},
		{"empty link", "[[]]", 1},
		{"stops at first closing", "[[a]] b]]", 1},
		{"nested opening joins one span", "[[a [[b]]", 1},
		{"unterminated after a link", "[[a]] then [[oops", 1},
		{"spans lines", "[[multi\nline]]", 1},
		{"single brackets", "[a] [b]", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, x.CountLinks(tt.content))
		})
	}
}

func TestTags(t *testing.T) {
	x := New()

	tests := []struct {
		name    string
		content string
		want    domain.TagMap
	}{
		{"no tags", "nothing here", domain.TagMap{}},
		{"repeat increments", "#x #x #y", domain.TagMap{"#x": 2, "#y": 1}},
		{"case sensitive", "#Go #go", domain.TagMap{"#Go": 1, "#go": 1}},
		{"underscore and digits", "#snake_case #v2", domain.TagMap{"#snake_case": 1, "#v2": 1}},
		{"stops at punctuation", "#tag, #other.", domain.TagMap{"#tag": 1, "#other": 1}},
		{"nested tag splits at slash", "#parent/child", domain.TagMap{"#parent": 1}},
		{"lone hash", "# heading", domain.TagMap{}},
		{"double hash", "##Title", domain.TagMap{"#Title": 1}},
		{"inside word", "issue#42", domain.TagMap{"#42": 1}},
		{"unicode letters", "#café #日本", domain.TagMap{"#café": 1, "#日本": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, x.Tags(tt.content))
		})
	}
}

func TestExtract(t *testing.T) {
	x := New()

	got := x.Extract("hello #x #x [[b]]")
	assert.Equal(t, domain.NoteStats{
		WordCount: 4,
		LinkCount: 1,
		Tags:      domain.TagMap{"#x": 2},
	}, got)

	got = x.Extract("")
	assert.Equal(t, 0, got.WordCount)
	assert.Equal(t, 0, got.LinkCount)
	assert.Empty(t, got.Tags)
}

func TestExtract_Deterministic(t *testing.T) {
	x := New()
	content := strings.Repeat("word #tag [[link]] ", 50)

	first := x.Extract(content)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, x.Extract(content))
	}
	assert.Equal(t, 150, first.WordCount)
	assert.Equal(t, 50, first.LinkCount)
	assert.Equal(t, domain.TagMap{"#tag": 50}, first.Tags)
}

func TestSpans(t *testing.T) {
	x := New()

	content := "see [[Note #1]] and #idea"
	spans := x.Spans(content)

	assert.Equal(t, []Span{
		{Start: 4, End: 15, Link: true},
		{Start: 20, End: 25},
	}, spans)
	assert.Equal(t, "[[Note #1]]", content[spans[0].Start:spans[0].End])
	assert.Equal(t, "#idea", content[spans[1].Start:spans[1].End])

	assert.Empty(t, x.Spans("plain text"))
}
