package domain

import (
	"strings"
	"time"
)

// DefaultExtension is the document extension scanned when none is configured
const DefaultExtension = ".md"

// NoteFileName returns the file name for a new idea note created at t
// (e.g., "Note_2025_08_15_09_30_00.md")
func NoteFileName(t time.Time) string {
	return "Note_" + NoteTimestamp(t) + DefaultExtension
}

// NoteTimestamp formats t the way idea notes are stamped
func NoteTimestamp(t time.Time) string {
	return t.Format("2006_01_02_15_04_05")
}

// DailyNoteName returns the daily note file name for t, matching the
// default Obsidian daily note format (e.g., "2025-08-15.md")
func DailyNoteName(t time.Time) string {
	return t.Format("2006-01-02") + DefaultExtension
}

// NormalizeExtension lowercases ext and ensures a leading dot.
// An empty or bare "." extension normalizes to "".
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
