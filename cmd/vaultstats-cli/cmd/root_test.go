package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"vaultstats/internal/application"
	"vaultstats/internal/ports"
)

type recordingOpener struct {
	opened []string
}

func (o *recordingOpener) OpenFile(path string) error {
	o.opened = append(o.opened, path)
	return nil
}

// setupVault creates an Obsidian vault and isolates the config environment
func setupVault(t *testing.T, files map[string]string) string {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("VAULTSTATS_VAULT", "")
	t.Setenv("VAULT_PATH", "")
	t.Setenv("VAULTSTATS_CONFIG", "")

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".obsidian"), 0755))
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func run(t *testing.T, a *app, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(a)
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	cmd := NewRootCmd()

	names := make(map[string]bool)
	for _, sc := range cmd.Commands() {
		names[sc.Name()] = true
	}
	for _, want := range []string{"stats", "tags", "new", "append", "open", "show"} {
		assert.True(t, names[want], "should have %s command", want)
	}
}

func TestStatsCmd_HasFlags(t *testing.T) {
	statsCmd, _, err := NewRootCmd().Find([]string{"stats"})
	require.NoError(t, err)

	topFlag := statsCmd.Flags().Lookup("top")
	require.NotNil(t, topFlag)
	assert.Equal(t, "3", topFlag.DefValue)

	for _, name := range []string{"ext", "workers", "format", "timeout"} {
		assert.NotNil(t, statsCmd.Flags().Lookup(name), "should have --%s flag", name)
	}
}

func TestStatsCmd_Text(t *testing.T) {
	root := setupVault(t, map[string]string{
		"a.md": "hello #x #x [[b]]",
		"b.md": "#y world",
	})

	out, err := run(t, newApp(), "", "--vault", root, "stats", "--top", "1")
	require.NoError(t, err)

	assert.Equal(t, "Vault Links: 1\nVault Words: 6\nDocuments: 2\nMost Frequent Tags:\n    #x: 2\n", out)
}

func TestStatsCmd_ReportsSkipped(t *testing.T) {
	root := setupVault(t, map[string]string{
		"good.md": "one #t",
		"bad.md":  "\xff\xfe",
	})

	out, err := run(t, newApp(), "", "--vault", root, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Skipped documents: 1\n")
}

func TestStatsCmd_JSON(t *testing.T) {
	root := setupVault(t, map[string]string{"a.md": "#a #b #a"})

	out, err := run(t, newApp(), "", "--vault", root, "stats", "--format", "json")
	require.NoError(t, err)

	var got statsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Documents)
	assert.Equal(t, 3, got.TotalWordCount)
	assert.Equal(t, "#a", got.TopTags[0].Tag)
	assert.Equal(t, 2, got.TopTags[0].Count)
}

func TestStatsCmd_YAML(t *testing.T) {
	root := setupVault(t, map[string]string{"a.md": "[[x]] [[y]]"})

	out, err := run(t, newApp(), "", "--vault", root, "stats", "-f", "yaml")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got["total_link_count"])
	assert.Equal(t, 1, got["documents"])
}

func TestStatsCmd_UnknownFormat(t *testing.T) {
	root := setupVault(t, nil)

	_, err := run(t, newApp(), "", "--vault", root, "stats", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestStatsCmd_ExtensionsFlag(t *testing.T) {
	root := setupVault(t, map[string]string{
		"a.md":       "one",
		"b.markdown": "two three",
	})

	out, err := run(t, newApp(), "", "--vault", root, "stats", "--ext", "md,markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "Vault Words: 3\n")
	assert.Contains(t, out, "Documents: 2\n")
}

func TestStatsCmd_InvalidVault(t *testing.T) {
	setupVault(t, nil)
	notVault := t.TempDir()

	_, err := run(t, newApp(), "", "--vault", notVault, "stats")
	assert.ErrorIs(t, err, application.ErrInvalidVault)
}

func TestTagsCmd_ListsAll(t *testing.T) {
	root := setupVault(t, map[string]string{
		"a.md": "#b #a #c #c",
	})

	out, err := run(t, newApp(), "", "--vault", root, "tags")
	require.NoError(t, err)
	assert.Equal(t, "#c: 2\n#a: 1\n#b: 1\n", out)
}

func TestNewCmd_FromArgs(t *testing.T) {
	root := setupVault(t, nil)

	out, err := run(t, newApp(), "", "--vault", root, "new", "grow", "tomatoes")
	require.NoError(t, err)
	assert.Contains(t, out, "Created note: ")

	matches, err := filepath.Glob(filepath.Join(root, "Note_*.md"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	content, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, "grow tomatoes\n", string(content))
}

func TestNewCmd_TemplateFlag(t *testing.T) {
	root := setupVault(t, nil)
	tmpl := filepath.Join(t.TempDir(), "idea.md")
	require.NoError(t, os.WriteFile(tmpl, []byte("idea: ?body\n"), 0644))

	_, err := run(t, newApp(), "", "--vault", root, "-t", tmpl, "new", "grow", "tomatoes")
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(root, "Note_*.md"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	content, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "idea: grow tomatoes")
}

func TestNewCmd_PromptsForIdea(t *testing.T) {
	root := setupVault(t, nil)

	_, err := run(t, newApp(), "\n  \nfrom stdin\n", "--vault", root, "new")
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(root, "Note_*.md"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	content, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, "from stdin\n", string(content))
}

func TestNewCmd_EmptyInput(t *testing.T) {
	root := setupVault(t, nil)

	_, err := run(t, newApp(), "", "--vault", root, "new")
	var valErr *application.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestAppendCmd(t *testing.T) {
	root := setupVault(t, map[string]string{"journal.md": "first"})

	out, err := run(t, newApp(), "", "--vault", root, "append", "-n", "journal.md", "second", "line")
	require.NoError(t, err)
	assert.Contains(t, out, "Appended to note: ")

	content, err := os.ReadFile(filepath.Join(root, "journal.md"))
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond line", string(content))
}

func TestAppendCmd_RequiresNote(t *testing.T) {
	root := setupVault(t, nil)

	_, err := run(t, newApp(), "", "--vault", root, "append", "idea")
	assert.ErrorContains(t, err, "note")
}

func TestOpenCmd_UsesObsidian(t *testing.T) {
	root := setupVault(t, nil)

	opener := &recordingOpener{}
	a := newApp()
	a.newObsidian = func(string) ports.ObsidianOpener { return opener }

	_, err := run(t, a, "", "--vault", root, "open")
	require.NoError(t, err)

	require.Len(t, opener.opened, 1)
	assert.FileExists(t, opener.opened[0])
	assert.Regexp(t, `\d{4}-\d{2}-\d{2}\.md$`, opener.opened[0])
}

func TestShowCmd(t *testing.T) {
	root := setupVault(t, map[string]string{"ideas/a.md": "# Idea\nbody #tag"})

	out, err := run(t, newApp(), "", "--vault", root, "show", "-n", "ideas/a.md", "--raw")
	require.NoError(t, err)
	assert.Equal(t, "# Idea\nbody #tag\n", out)

	out, err = run(t, newApp(), "", "--vault", root, "show", "-n", "ideas/a.md")
	require.NoError(t, err)
	assert.Contains(t, out, "Idea")
	assert.Contains(t, out, "#tag")

	_, err = run(t, newApp(), "", "--vault", root, "show", "-n", "missing.md")
	assert.ErrorIs(t, err, application.ErrNotFound)
}
