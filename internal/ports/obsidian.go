package ports

// ObsidianOpener hands a vault note to the Obsidian app
type ObsidianOpener interface {
	// OpenFile launches obsidian://open for path, which must lie inside the
	// vault and may be absolute or relative to the vault root
	OpenFile(path string) error
}
