package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"vaultstats/internal/application"
	"vaultstats/internal/ports"
)

// Repository implements ports.NoteRepository using the filesystem
type Repository struct {
	vaultPath string
}

// Ensure Repository implements NoteRepository
var _ ports.NoteRepository = (*Repository)(nil)

// NewRepository creates a new filesystem repository
func NewRepository(vaultPath string) *Repository {
	return &Repository{vaultPath: ExpandHome(vaultPath)}
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

// Root returns the vault root
func (r *Repository) Root() string {
	return r.vaultPath
}

// CreateNote writes a new note, failing if one already exists at relPath
func (r *Repository) CreateNote(relPath, body string) (string, error) {
	fullPath, err := r.join(relPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create note directory: %w", err)
	}

	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create note: %w", err)
	}

	if _, err := f.WriteString(body); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write note: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write note: %w", err)
	}

	return fullPath, nil
}

// AppendNote appends text on a new line to an existing note
func (r *Repository) AppendNote(relPath, text string) (string, error) {
	fullPath, err := r.ResolveNote(relPath)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open note: %w", err)
	}

	if _, err := f.WriteString("\n" + text); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to append to note: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to append to note: %w", err)
	}

	return fullPath, nil
}

// EnsureNote creates an empty note at relPath unless one already exists
func (r *Repository) EnsureNote(relPath string) (string, error) {
	fullPath, err := r.join(relPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create note directory: %w", err)
	}

	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open note: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return fullPath, nil
}

// ReadNote returns the content of an existing note
func (r *Repository) ReadNote(relPath string) (string, error) {
	fullPath, err := r.ResolveNote(relPath)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to read note: %w", err)
	}
	return string(content), nil
}

// ResolveNote returns the absolute path of relPath if it is an existing regular file
func (r *Repository) ResolveNote(relPath string) (string, error) {
	fullPath, err := r.join(relPath)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("note %s: %w", relPath, application.ErrNotFound)
		}
		return "", fmt.Errorf("failed to stat note: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("note %s is not a file: %w", relPath, application.ErrNotFound)
	}

	return fullPath, nil
}

// join resolves relPath inside the vault, refusing paths that escape it
func (r *Repository) join(relPath string) (string, error) {
	if err := application.ValidateRequired("notePath", relPath); err != nil {
		return "", err
	}

	if filepath.IsAbs(relPath) {
		rel, err := filepath.Rel(r.vaultPath, relPath)
		if err != nil {
			return "", fmt.Errorf("%s: %w", relPath, application.ErrOutsideVault)
		}
		relPath = rel
	}

	cleaned := filepath.Clean(relPath)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", relPath, application.ErrOutsideVault)
	}

	return filepath.Join(r.vaultPath, cleaned), nil
}
