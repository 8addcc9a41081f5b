// Package cmd provides the CLI commands for vaultstats-cli.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"vaultstats/internal/adapters/editor"
	"vaultstats/internal/adapters/filesystem"
	"vaultstats/internal/adapters/obsidian"
	"vaultstats/internal/config"
	"vaultstats/internal/extract"
	"vaultstats/internal/logging"
	"vaultstats/internal/ports"
	"vaultstats/internal/scan"
)

// app holds the state shared by every subcommand once the root has run
type app struct {
	vault      string
	configFile string
	template   string
	logLevel   string
	logJSON    bool

	cfg    *config.Config
	logger *slog.Logger
	repo   ports.NoteRepository

	newObsidian func(vaultPath string) ports.ObsidianOpener
	newEditor   func() ports.EditorOpener
}

func newApp() *app {
	return &app{
		newObsidian: func(vaultPath string) ports.ObsidianOpener { return obsidian.NewOpener(vaultPath) },
		newEditor:   func() ports.EditorOpener { return editor.NewOpener() },
	}
}

// NewRootCmd creates the root command for vaultstats-cli
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vaultstats-cli",
		Short: "Statistics and quick notes for Obsidian vaults",
		Long: `vaultstats-cli scans an Obsidian vault and reports word, wiki link
and tag statistics. It also captures ideas as new notes, appends to
existing notes, opens the daily note and pretty prints notes.

The vault is taken from --vault, $VAULTSTATS_VAULT, $VAULT_PATH or the
config file at $XDG_CONFIG_HOME/vaultstats/config.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip initialization for help commands
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return a.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&a.vault, "vault", "v", "", "path to the vault")
	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "path to the config file")
	cmd.PersistentFlags().StringVarP(&a.template, "template", "t", "", "path to the note template")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "write logs as JSON")

	cmd.AddCommand(
		newStatsCmd(a),
		newTagsCmd(a),
		newNewCmd(a),
		newAppendCmd(a),
		newOpenCmd(a),
		newShowCmd(a),
	)

	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(config.Options{Vault: a.vault, ConfigFile: a.configFile, Template: a.template})
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	a.logger = logging.New(logging.Options{
		Level:  level,
		JSON:   a.logJSON,
		Writer: cmd.ErrOrStderr(),
	})

	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.repo = filesystem.NewRepository(cfg.VaultPath)
	a.logger.Debug("loaded config",
		slog.String("vault", cfg.VaultPath),
		slog.String("file", cfg.File))
	return nil
}

// scanner builds a filesystem coordinator for the configured vault
func (a *app) scanner(extensions []string, workers int) *scan.Coordinator {
	enum := filesystem.NewEnumerator(extensions...)
	return scan.New(enum, enum, extract.New(), scan.Options{
		Workers: workers,
		Logger:  a.logger,
	})
}

// Execute runs the root command
func Execute() {
	_ = godotenv.Load()

	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
