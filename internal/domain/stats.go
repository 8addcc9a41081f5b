package domain

import "sort"

// TagMap maps a tag as written (including the leading '#') to its occurrence count
type TagMap map[string]int

// NoteStats is the extraction result for a single document
type NoteStats struct {
	WordCount int
	LinkCount int
	Tags      TagMap
}

// VaultTotals accumulates NoteStats across a whole vault.
// It is not safe for concurrent use; a scan merges into it from one goroutine.
type VaultTotals struct {
	WordCount int    `json:"total_word_count" yaml:"total_word_count"`
	LinkCount int    `json:"total_link_count" yaml:"total_link_count"`
	Tags      TagMap `json:"tags" yaml:"tags"`
}

// NewVaultTotals returns empty totals
func NewVaultTotals() VaultTotals {
	return VaultTotals{Tags: make(TagMap)}
}

// Merge folds one document's stats into the totals.
// Merging is commutative and associative, so arrival order does not matter.
func (v *VaultTotals) Merge(note NoteStats) {
	v.WordCount += note.WordCount
	v.LinkCount += note.LinkCount

	if v.Tags == nil {
		v.Tags = make(TagMap, len(note.Tags))
	}
	for tag, count := range note.Tags {
		v.Tags[tag] += count
	}
}

// TagCount is one entry of a tag ranking
type TagCount struct {
	Tag   string `json:"tag" yaml:"tag"`
	Count int    `json:"count" yaml:"count"`
}

// Rank returns the n most frequent tags, highest count first.
// Equal counts are ordered by tag string ascending (byte-wise), so the output
// is the same on every run. n larger than the number of tags returns all of
// them; n <= 0 returns an empty ranking.
func Rank(totals VaultTotals, n int) []TagCount {
	if n <= 0 {
		return []TagCount{}
	}

	ranked := make([]TagCount, 0, len(totals.Tags))
	for tag, count := range totals.Tags {
		ranked = append(ranked, TagCount{Tag: tag, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Tag < ranked[j].Tag
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
