// Package extract computes per-document statistics from raw note text.
package extract

import (
	"regexp"
	"sort"

	"vaultstats/internal/domain"
)

// Link pattern for Obsidian wiki links: [[...]], ending at the first ]]
const linkExpr = `(?s)\[\[.*?\]\]`

// Tag pattern: '#' followed by a run of letters, marks, digits or underscores
const tagExpr = `#[\p{L}\p{M}\p{Nd}_]+`

// Extractor counts words, wiki links and tags in a document.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	linkPattern *regexp.Regexp
	tagPattern  *regexp.Regexp
}

// New compiles the extraction patterns
func New() *Extractor {
	return &Extractor{
		linkPattern: regexp.MustCompile(linkExpr),
		tagPattern:  regexp.MustCompile(tagExpr),
	}
}

// Extract returns the statistics for a single document's content
func (x *Extractor) Extract(content string) domain.NoteStats {
	return domain.NoteStats{
		WordCount: CountWords(content),
		LinkCount: x.CountLinks(content),
		Tags:      x.Tags(content),
	}
}

// CountLinks returns the number of non-overlapping [[...]] spans.
// An unterminated [[ never matches.
func (x *Extractor) CountLinks(content string) int {
	return len(x.linkPattern.FindAllStringIndex(content, -1))
}

// Tags returns each tag as written (leading '#' included) with its
// occurrence count. No case folding is applied.
func (x *Extractor) Tags(content string) domain.TagMap {
	tags := make(domain.TagMap)
	for _, tag := range x.tagPattern.FindAllString(content, -1) {
		tags[tag]++
	}
	return tags
}

// CountWords returns the number of maximal runs of non-whitespace bytes,
// splitting on ASCII whitespace only (space, \t, \n, \f, \r).
func CountWords(content string) int {
	count := 0
	inWord := false
	for i := 0; i < len(content); i++ {
		if isASCIISpace(content[i]) {
			inWord = false
			continue
		}
		if !inWord {
			count++
			inWord = true
		}
	}
	return count
}

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

// Span locates a tag or link occurrence in a document
type Span struct {
	Start, End int
	Link       bool
}

// Spans returns the link and tag occurrences of content ordered by position.
// A tag written inside a link is part of the link and is not reported.
func (x *Extractor) Spans(content string) []Span {
	var spans []Span
	links := x.linkPattern.FindAllStringIndex(content, -1)
	for _, loc := range links {
		spans = append(spans, Span{Start: loc[0], End: loc[1], Link: true})
	}

	for _, loc := range x.tagPattern.FindAllStringIndex(content, -1) {
		inside := false
		for _, l := range links {
			if loc[0] >= l[0] && loc[1] <= l[1] {
				inside = true
				break
			}
		}
		if !inside {
			spans = append(spans, Span{Start: loc[0], End: loc[1]})
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans
}
