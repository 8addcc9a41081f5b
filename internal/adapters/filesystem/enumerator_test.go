package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaultstats/internal/application"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()

	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func collect(t *testing.T, e *Enumerator, root string) ([]string, []error) {
	t.Helper()

	var paths []string
	var errs []error
	for path, err := range e.Documents(context.Background(), root) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rel, relErr := filepath.Rel(root, path)
		require.NoError(t, relErr)
		paths = append(paths, filepath.ToSlash(rel))
	}
	return paths, errs
}

func TestEnumerator_Documents(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "a")
	writeFile(t, root, "b.MD", "b")
	writeFile(t, root, "notes/c.md", "c")
	writeFile(t, root, "notes/deep/d.md", "d")
	writeFile(t, root, "notes/image.png", "png")
	writeFile(t, root, "readme.txt", "txt")
	writeFile(t, root, ".hidden.md", "hidden")
	writeFile(t, root, ".obsidian/workspace.md", "config")
	writeFile(t, root, "notes/.trash/e.md", "trash")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dir.md"), 0755))

	paths, errs := collect(t, NewEnumerator(), root)

	assert.Empty(t, errs)
	assert.Equal(t, []string{"a.md", "b.MD", "notes/c.md", "notes/deep/d.md"}, paths)
}

func TestEnumerator_Extensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "a")
	writeFile(t, root, "b.txt", "b")
	writeFile(t, root, "c.org", "c")

	tests := []struct {
		name string
		exts []string
		want []string
	}{
		{"default", nil, []string{"a.md"}},
		{"single without dot", []string{"txt"}, []string{"b.txt"}},
		{"multiple", []string{".md", ".org"}, []string{"a.md", "c.org"}},
		{"blank falls back to default", []string{" "}, []string{"a.md"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, errs := collect(t, NewEnumerator(tt.exts...), root)
			assert.Empty(t, errs)
			sort.Strings(paths)
			assert.Equal(t, tt.want, paths)
		})
	}
}

func TestEnumerator_EmptyVault(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".obsidian"), 0755))

	paths, errs := collect(t, NewEnumerator(), root)
	assert.Empty(t, paths)
	assert.Empty(t, errs)
}

func TestEnumerator_SkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	target := writeFile(t, root, "real.md", "real")
	if err := os.Symlink(target, filepath.Join(root, "link.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	paths, _ := collect(t, NewEnumerator(), root)
	assert.Equal(t, []string{"real.md"}, paths)
}

func TestEnumerator_SymlinkedRoot(t *testing.T) {
	target := t.TempDir()
	writeFile(t, target, "a.md", "a")
	writeFile(t, target, "sub/b.md", "b")
	writeFile(t, target, ".obsidian/app.md", "{}")

	link := filepath.Join(t.TempDir(), "vault")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	paths, errs := collect(t, NewEnumerator(), link)
	assert.Equal(t, []string{"a.md", "sub/b.md"}, paths)
	assert.Empty(t, errs)
}

func TestEnumerator_UnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	root := t.TempDir()
	writeFile(t, root, "ok.md", "ok")
	writeFile(t, root, "locked/secret.md", "secret")
	writeFile(t, root, "z/after.md", "after")

	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	paths, errs := collect(t, NewEnumerator(), root)

	assert.Equal(t, []string{"ok.md", "z/after.md"}, paths)
	require.Len(t, errs, 1)

	var enumErr *EnumerationError
	require.True(t, errors.As(errs[0], &enumErr))
	assert.Equal(t, locked, enumErr.Path)
}

func TestEnumerator_StopsWhenConsumerBreaks(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.md", "b.md", "c.md"} {
		writeFile(t, root, name, name)
	}

	count := 0
	for range NewEnumerator().Documents(context.Background(), root) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestEnumerator_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	count := 0
	for range NewEnumerator().Documents(ctx, root) {
		count++
	}
	assert.Zero(t, count)
}

func TestEnumerator_ReadDocument(t *testing.T) {
	root := t.TempDir()
	e := NewEnumerator()

	path := writeFile(t, root, "a.md", "hello #x")
	content, err := e.ReadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "hello #x", content)

	invalid := writeFile(t, root, "bad.md", "ok\xff\xfe")
	_, err = e.ReadDocument(invalid)
	assert.ErrorIs(t, err, application.ErrInvalidEncoding)

	_, err = e.ReadDocument(filepath.Join(root, "missing.md"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
