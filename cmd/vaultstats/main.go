package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"vaultstats/internal/adapters/editor"
	"vaultstats/internal/adapters/filesystem"
	"vaultstats/internal/adapters/tui"
	"vaultstats/internal/adapters/watch"
	"vaultstats/internal/config"
	"vaultstats/internal/extract"
	"vaultstats/internal/logging"
	"vaultstats/internal/scan"
)

func main() {
	vaultFlag := flag.String("vault", "", "path to the vault")
	configFlag := flag.String("config", "", "path to the config file")
	templateFlag := flag.String("template", "", "path to the note template")
	watchFlag := flag.Bool("watch", true, "rescan when vault documents change")
	flag.Parse()

	_ = godotenv.Load()

	if err := run(config.Options{Vault: *vaultFlag, ConfigFile: *configFlag, Template: *templateFlag}, *watchFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts config.Options, watchVault bool) error {
	cfg, err := config.Load(opts)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	tmpl, err := cfg.Template()
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal
	logger := logging.Discard()

	enum := filesystem.NewEnumerator(cfg.Extensions...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes <-chan struct{}
	if watchVault {
		w, err := watch.New(cfg.VaultPath, watch.Options{Match: enum.Matches, Logger: logger})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v; auto rescan disabled\n", err)
		} else {
			go func() { _ = w.Run(ctx) }()
			changes = w.Changes()
		}
	}

	app := tui.NewApp(tui.Deps{
		Root:      cfg.VaultPath,
		Scanner:   scan.New(enum, enum, extract.New(), scan.Options{Workers: cfg.Workers, Logger: logger}),
		Repo:      filesystem.NewRepository(cfg.VaultPath),
		Template:  tmpl,
		Top:       cfg.Top,
		Editor:    editor.NewOpener(),
		Clipboard: clipboard.WriteAll,
		Changes:   changes,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
