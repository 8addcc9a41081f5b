package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vaultstats/internal/application"
	"vaultstats/internal/domain"
	"vaultstats/internal/ports"
)

// NoteResult contains the outcome of a note operation
type NoteResult struct {
	Path    string
	Body    string
	Message string
}

// NewNoteCommand creates a timestamped note from an idea
type NewNoteCommand struct {
	repo     ports.NoteRepository
	template domain.Template
	Idea     string

	// Now returns the creation time; nil means time.Now
	Now func() time.Time
}

// NewNewNoteCommand creates a new NewNoteCommand
func NewNewNoteCommand(repo ports.NoteRepository, template domain.Template, idea string) *NewNoteCommand {
	return &NewNoteCommand{
		repo:     repo,
		template: template,
		Idea:     idea,
	}
}

// Validate checks if the new note operation is valid
func (c *NewNoteCommand) Validate() error {
	return application.ValidateRequired("idea", c.Idea)
}

// Execute renders the template and writes Note_<timestamp>.md
func (c *NewNoteCommand) Execute(ctx context.Context) (*NoteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	t := now()

	body := c.template.Render(domain.TemplateArgs{
		Date: domain.NoteTimestamp(t),
		Body: strings.TrimSpace(c.Idea),
	})

	path, err := c.repo.CreateNote(domain.NoteFileName(t), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return &NoteResult{
		Path:    path,
		Body:    body,
		Message: fmt.Sprintf("Created note: %s", path),
	}, nil
}

// AppendNoteCommand appends an idea to an existing note
type AppendNoteCommand struct {
	repo     ports.NoteRepository
	NotePath string
	Idea     string
}

// NewAppendNoteCommand creates a new AppendNoteCommand
func NewAppendNoteCommand(repo ports.NoteRepository, notePath, idea string) *AppendNoteCommand {
	return &AppendNoteCommand{
		repo:     repo,
		NotePath: notePath,
		Idea:     idea,
	}
}

// Validate checks if the append operation is valid
func (c *AppendNoteCommand) Validate() error {
	if err := application.ValidateRequired("notePath", c.NotePath); err != nil {
		return err
	}
	return application.ValidateRequired("idea", c.Idea)
}

// Execute appends the idea on a new line
func (c *AppendNoteCommand) Execute(ctx context.Context) (*NoteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	path, err := c.repo.AppendNote(c.NotePath, c.Idea)
	if err != nil {
		return nil, fmt.Errorf("failed to append to note: %w", err)
	}

	return &NoteResult{
		Path:    path,
		Message: fmt.Sprintf("Appended to note: %s", path),
	}, nil
}

// OpenDailyCommand opens today's daily note in Obsidian, creating it first
type OpenDailyCommand struct {
	repo   ports.NoteRepository
	opener ports.ObsidianOpener
	Now    func() time.Time
}

// NewOpenDailyCommand creates a new OpenDailyCommand
func NewOpenDailyCommand(repo ports.NoteRepository, opener ports.ObsidianOpener) *OpenDailyCommand {
	return &OpenDailyCommand{repo: repo, opener: opener}
}

// Execute ensures YYYY-MM-DD.md exists and hands it to Obsidian
func (c *OpenDailyCommand) Execute(ctx context.Context) (*NoteResult, error) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	path, err := c.repo.EnsureNote(domain.DailyNoteName(now()))
	if err != nil {
		return nil, fmt.Errorf("failed to create daily note: %w", err)
	}

	if err := c.opener.OpenFile(path); err != nil {
		return nil, fmt.Errorf("failed to open daily note: %w", err)
	}

	return &NoteResult{
		Path:    path,
		Message: fmt.Sprintf("Opened daily note: %s", path),
	}, nil
}

// ShowNoteCommand reads a note for display
type ShowNoteCommand struct {
	repo     ports.NoteRepository
	NotePath string
}

// NewShowNoteCommand creates a new ShowNoteCommand
func NewShowNoteCommand(repo ports.NoteRepository, notePath string) *ShowNoteCommand {
	return &ShowNoteCommand{repo: repo, NotePath: notePath}
}

// Execute returns the note content
func (c *ShowNoteCommand) Execute(ctx context.Context) (*NoteResult, error) {
	if err := application.ValidateRequired("notePath", c.NotePath); err != nil {
		return nil, err
	}

	body, err := c.repo.ReadNote(c.NotePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read note: %w", err)
	}

	path, err := c.repo.ResolveNote(c.NotePath)
	if err != nil {
		return nil, err
	}

	return &NoteResult{Path: path, Body: body}, nil
}
