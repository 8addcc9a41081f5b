package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaultstats/internal/application"
)

func setupTestVault(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".obsidian"), 0755))
	return root
}

func TestCreateNote(t *testing.T) {
	root := setupTestVault(t)
	repo := NewRepository(root)

	path, err := repo.CreateNote("Note_1.md", "body #tag")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Note_1.md"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "body #tag", string(content))

	_, err = repo.CreateNote("Note_1.md", "again")
	assert.Error(t, err, "creating an existing note should fail")
}

func TestCreateNote_InSubdirectory(t *testing.T) {
	root := setupTestVault(t)
	repo := NewRepository(root)

	path, err := repo.CreateNote("inbox/idea.md", "x")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestAppendNote(t *testing.T) {
	root := setupTestVault(t)
	repo := NewRepository(root)

	_, err := repo.CreateNote("journal.md", "first")
	require.NoError(t, err)

	path, err := repo.AppendNote("journal.md", "second")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", string(content))
}

func TestAppendNote_Missing(t *testing.T) {
	repo := NewRepository(setupTestVault(t))

	_, err := repo.AppendNote("missing.md", "text")
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestEnsureNote(t *testing.T) {
	root := setupTestVault(t)
	repo := NewRepository(root)

	path, err := repo.EnsureNote("2025-08-15.md")
	require.NoError(t, err)
	assert.FileExists(t, path)

	require.NoError(t, os.WriteFile(path, []byte("kept"), 0644))
	_, err = repo.EnsureNote("2025-08-15.md")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "kept", string(content), "existing content must not be truncated")
}

func TestReadNote(t *testing.T) {
	root := setupTestVault(t)
	repo := NewRepository(root)

	_, err := repo.CreateNote("a.md", "# Title")
	require.NoError(t, err)

	content, err := repo.ReadNote("a.md")
	require.NoError(t, err)
	assert.Equal(t, "# Title", content)

	_, err = repo.ReadNote(".obsidian")
	assert.ErrorIs(t, err, application.ErrNotFound, "directories are not notes")
}

func TestJoin_RejectsEscapes(t *testing.T) {
	root := setupTestVault(t)
	repo := NewRepository(root)

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"parent", "../outside.md", application.ErrOutsideVault},
		{"nested parent", "a/../../outside.md", application.ErrOutsideVault},
		{"vault root", ".", application.ErrOutsideVault},
		{"absolute outside", "/etc/passwd", application.ErrOutsideVault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.ResolveNote(tt.path)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := repo.ResolveNote("")
	var valErr *application.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestResolveNote_AbsoluteInsideVault(t *testing.T) {
	root := setupTestVault(t)
	repo := NewRepository(root)

	created, err := repo.CreateNote("a.md", "x")
	require.NoError(t, err)

	got, err := repo.ResolveNote(created)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "vault"), ExpandHome("~/vault"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "~other", ExpandHome("~other"))
}
