package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"vaultstats/internal/application"
	"vaultstats/internal/domain"
	"vaultstats/internal/ports"
)

// HiddenPrefix marks entries excluded from enumeration
const HiddenPrefix = "."

// errStopWalk ends a walk early when the consumer stops iterating
var errStopWalk = errors.New("stop walk")

// EnumerationError reports an entry that could not be read while walking
type EnumerationError struct {
	Path string
	Err  error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("cannot enumerate %s: %v", e.Path, e.Err)
}

func (e *EnumerationError) Unwrap() error {
	return e.Err
}

// Enumerator implements ports.DocumentSource and ports.DocumentReader
// over the local filesystem
type Enumerator struct {
	extensions []string
}

// Ensure Enumerator implements the scan ports
var (
	_ ports.DocumentSource = (*Enumerator)(nil)
	_ ports.DocumentReader = (*Enumerator)(nil)
)

// NewEnumerator creates an enumerator yielding files with one of the given
// extensions (matched case-insensitively). No extensions means ".md".
func NewEnumerator(extensions ...string) *Enumerator {
	var exts []string
	for _, ext := range extensions {
		if norm := domain.NormalizeExtension(ext); norm != "" {
			exts = append(exts, norm)
		}
	}
	if len(exts) == 0 {
		exts = []string{domain.DefaultExtension}
	}
	return &Enumerator{extensions: exts}
}

// Extensions returns the normalized extension filter
func (e *Enumerator) Extensions() []string {
	return append([]string(nil), e.extensions...)
}

// Documents walks root in lexical order and yields every regular file whose
// extension matches. Entries whose name starts with HiddenPrefix are skipped,
// and hidden directories are not descended into. Unreadable entries are
// yielded as *EnumerationError and their subtree is skipped.
func (e *Enumerator) Documents(ctx context.Context, root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		// WalkDir does not descend into a symlinked root
		walkRoot := root
		if resolved, err := filepath.EvalSymlinks(root); err == nil {
			walkRoot = resolved
		}

		_ = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			isRoot := path == walkRoot
			if walkRoot != root {
				if rel, relErr := filepath.Rel(walkRoot, path); relErr == nil {
					path = filepath.Join(root, rel)
				}
			}

			if err != nil {
				if !yield(path, &EnumerationError{Path: path, Err: err}) {
					return errStopWalk
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !isRoot && strings.HasPrefix(d.Name(), HiddenPrefix) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}

			if !e.Matches(d.Name()) {
				return nil
			}

			if !yield(path, nil) {
				return errStopWalk
			}
			return nil
		})
	}
}

// ReadDocument reads a whole document, rejecting content that is not valid UTF-8
func (e *Enumerator) ReadDocument(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%s: %w", path, application.ErrInvalidEncoding)
	}
	return string(content), nil
}

// Matches reports whether a file name has one of the enumerated extensions
func (e *Enumerator) Matches(name string) bool {
	ext := filepath.Ext(name)
	for _, want := range e.extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}
