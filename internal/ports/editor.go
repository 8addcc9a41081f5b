package ports

import "os/exec"

// EditorOpener opens notes in the user's terminal editor
type EditorOpener interface {
	// OpenFile runs the editor on path and waits for it to exit
	OpenFile(path string) error

	// Command returns the editor invocation without running it, for
	// callers that hand the terminal over themselves (tea.ExecProcess)
	Command(path string) (*exec.Cmd, error)
}
