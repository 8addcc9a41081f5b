package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"vaultstats/internal/adapters/tui/styles"
	"vaultstats/internal/application/commands"
)

func newNewCmd(a *app) *cobra.Command {
	var edit bool

	cmd := &cobra.Command{
		Use:   "new [idea...]",
		Short: "Create a new note from an idea",
		Long: `Create Note_YYYY_MM_DD_HH_MM_SS.md at the vault root from the configured
template. Without arguments the idea is read from standard input.

Examples:
  vaultstats-cli new "grow tomatoes on the balcony #garden"
  echo "call the plumber" | vaultstats-cli new`,
		RunE: func(cmd *cobra.Command, args []string) error {
			idea := strings.Join(args, " ")
			if strings.TrimSpace(idea) == "" {
				var err error
				idea, err = promptIdea(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}

			tmpl, err := a.cfg.Template()
			if err != nil {
				return err
			}

			result, err := commands.NewNewNoteCommand(a.repo, tmpl, idea).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)

			if edit {
				return a.newEditor().OpenFile(result.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "open the new note in $EDITOR")
	return cmd
}

// promptIdea reads lines from r until one is not blank or r is exhausted.
// The prompt is only shown when r is a terminal.
func promptIdea(r io.Reader, w io.Writer) (string, error) {
	if isTerminal(r) {
		fmt.Fprintln(w, "Please enter your idea (end with Ctrl-D):")
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read idea: %w", err)
	}
	return "", nil
}

func newAppendCmd(a *app) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "append -n <note> <idea...>",
		Short: "Append an idea to an existing note",
		Long: `Append the idea on a new line at the end of an existing note.
The note path is relative to the vault root.

Examples:
  vaultstats-cli append -n journal.md "remember the milk"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.NewAppendNoteCommand(a.repo, note, strings.Join(args, " ")).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "note to append to, relative to the vault")
	_ = cmd.MarkFlagRequired("note")
	return cmd
}

func newOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open today's daily note in Obsidian",
		Long: `Create today's daily note (YYYY-MM-DD.md) if needed and open it with
the obsidian:// URI scheme.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.NewOpenDailyCommand(a.repo, a.newObsidian(a.cfg.VaultPath)).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	var note string
	var raw bool

	cmd := &cobra.Command{
		Use:   "show -n <note>",
		Short: "Pretty print a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.NewShowNoteCommand(a.repo, note).Execute(cmd.Context())
			if err != nil {
				return err
			}

			body := result.Body
			if !raw {
				body = styles.RenderNote(body)
			}
			fmt.Fprintln(cmd.OutOrStdout(), body)
			return nil
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "note to show, relative to the vault")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the note without styling")
	_ = cmd.MarkFlagRequired("note")
	return cmd
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
