package ports

import (
	"context"
	"iter"
)

// DocumentSource enumerates candidate documents below a vault root.
//
// The sequence is lazy and single-use. Each element is either a document
// path (nil error) or an enumeration failure for an entry that could not be
// read; failures do not end the sequence.
type DocumentSource interface {
	Documents(ctx context.Context, root string) iter.Seq2[string, error]
}

// DocumentReader loads the full text of a document
type DocumentReader interface {
	ReadDocument(path string) (string, error)
}

// NoteRepository defines note storage operations inside a vault.
// Paths passed in are relative to the vault root; returned paths are absolute.
type NoteRepository interface {
	// Root returns the absolute vault root
	Root() string

	// CreateNote writes a new note; it fails if the note already exists
	CreateNote(relPath, body string) (string, error)

	// AppendNote appends text to an existing note
	AppendNote(relPath, text string) (string, error)

	// EnsureNote creates an empty note if it does not exist yet
	EnsureNote(relPath string) (string, error)

	// ReadNote returns the content of an existing note
	ReadNote(relPath string) (string, error)

	// ResolveNote returns the absolute path of an existing note
	ResolveNote(relPath string) (string, error)
}
