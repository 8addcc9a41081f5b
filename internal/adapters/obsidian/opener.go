package obsidian

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"vaultstats/internal/application"
	"vaultstats/internal/ports"
)

// Opener implements ports.ObsidianOpener
type Opener struct {
	vaultPath string
	vaultName string
	launch    func(uri string) error
}

var _ ports.ObsidianOpener = (*Opener)(nil)

// NewOpener creates an opener for the vault at vaultPath. The vault name is
// the last element of the path, which is how Obsidian identifies vaults.
func NewOpener(vaultPath string) *Opener {
	return &Opener{
		vaultPath: vaultPath,
		vaultName: filepath.Base(vaultPath),
		launch:    launchURI,
	}
}

// VaultName returns the name used in obsidian:// URIs
func (o *Opener) VaultName() string {
	return o.vaultName
}

// OpenFile opens a note of the vault in Obsidian
func (o *Opener) OpenFile(filePath string) error {
	uri, err := o.BuildURI(filePath)
	if err != nil {
		return err
	}
	if err := o.launch(uri); err != nil {
		return fmt.Errorf("failed to open %s: %w", uri, err)
	}
	return nil
}

// BuildURI returns obsidian://open?vault=<name>&file=<note>. The note is
// relative to the vault, slash separated, and has its .md extension dropped.
func (o *Opener) BuildURI(filePath string) (string, error) {
	relPath := filePath
	if filepath.IsAbs(filePath) {
		rel, err := filepath.Rel(o.vaultPath, filePath)
		if err != nil {
			return "", fmt.Errorf("failed to get relative path: %w", err)
		}
		relPath = rel
	}

	relPath = filepath.Clean(relPath)
	if relPath == "." || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", filePath, application.ErrOutsideVault)
	}

	relPath = strings.TrimSuffix(filepath.ToSlash(relPath), ".md")

	return fmt.Sprintf("obsidian://open?vault=%s&file=%s",
		escape(o.vaultName),
		escape(relPath),
	), nil
}

// escape percent-encodes s; spaces become %20 rather than +
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func launchURI(uri string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", uri)
	case "linux":
		cmd = exec.Command("xdg-open", uri)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", uri)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return cmd.Run()
}
