package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"vaultstats/internal/adapters/filesystem"
	"vaultstats/internal/application"
	"vaultstats/internal/domain"
)

const (
	DefaultVaultPath   = "~/Documents/vault"
	DefaultVaultMarker = ".obsidian"
	DefaultTop         = 3
	DefaultLogLevel    = "info"
)

// Environment variables consulted by Load
const (
	EnvVault       = "VAULTSTATS_VAULT"
	EnvLegacyVault = "VAULT_PATH"
	EnvConfig      = "VAULTSTATS_CONFIG"
)

// Config is the resolved runtime configuration
type Config struct {
	VaultPath    string
	TemplatePath string
	Extensions   []string
	Workers      int
	Top          int
	LogLevel     string
	VaultMarker  string

	// File is the config file that was read, empty if none
	File string
}

// fileConfig mirrors the YAML config file
type fileConfig struct {
	VaultPath    string   `yaml:"vault_path"`
	TemplatePath string   `yaml:"template_path"`
	Extensions   []string `yaml:"extensions"`
	Workers      int      `yaml:"workers"`
	Top          int      `yaml:"top"`
	LogLevel     string   `yaml:"log_level"`
	VaultMarker  *string  `yaml:"vault_marker"`
}

// Options carries the command-line overrides
type Options struct {
	// Vault overrides every other vault source
	Vault string
	// ConfigFile overrides VAULTSTATS_CONFIG and the default location
	ConfigFile string
	// Template overrides template_path
	Template string
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/vaultstats/config.yaml
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vaultstats", "config.yaml"), nil
}

// Load resolves the configuration. The vault path comes from, in order:
// opts.Vault, VAULTSTATS_VAULT, VAULT_PATH, the config file, DefaultVaultPath.
func Load(opts Options) (*Config, error) {
	cfg := &Config{
		VaultPath:   DefaultVaultPath,
		Extensions:  []string{domain.DefaultExtension},
		Top:         DefaultTop,
		LogLevel:    DefaultLogLevel,
		VaultMarker: DefaultVaultMarker,
	}

	path, explicit := opts.ConfigFile, true
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		explicit = false
		if p, err := DefaultConfigPath(); err == nil {
			path = p
		}
	}

	if path != "" {
		fc, err := readFile(filesystem.ExpandHome(path))
		switch {
		case err == nil:
			cfg.File = path
			cfg.apply(fc)
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return nil, err
		}
	}

	switch {
	case opts.Vault != "":
		cfg.VaultPath = opts.Vault
	case os.Getenv(EnvVault) != "":
		cfg.VaultPath = os.Getenv(EnvVault)
	case os.Getenv(EnvLegacyVault) != "":
		cfg.VaultPath = os.Getenv(EnvLegacyVault)
	}

	if opts.Template != "" {
		cfg.TemplatePath = opts.Template
	}

	cfg.VaultPath = filesystem.ExpandHome(cfg.VaultPath)
	cfg.TemplatePath = filesystem.ExpandHome(cfg.TemplatePath)
	return cfg, nil
}

func readFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &fc, nil
}

func (c *Config) apply(fc *fileConfig) {
	if fc.VaultPath != "" {
		c.VaultPath = fc.VaultPath
	}
	if fc.TemplatePath != "" {
		c.TemplatePath = fc.TemplatePath
	}
	if len(fc.Extensions) > 0 {
		c.Extensions = fc.Extensions
	}
	if fc.Workers != 0 {
		c.Workers = fc.Workers
	}
	if fc.Top > 0 {
		c.Top = fc.Top
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.VaultMarker != nil {
		c.VaultMarker = *fc.VaultMarker
	}
}

// Validate checks that the vault root is a directory holding the vault marker
func (c *Config) Validate() error {
	info, err := os.Stat(c.VaultPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &application.VaultError{Path: c.VaultPath, Reason: "does not exist"}
		}
		return &application.VaultError{Path: c.VaultPath, Reason: err.Error()}
	}
	if !info.IsDir() {
		return &application.VaultError{Path: c.VaultPath, Reason: "not a directory"}
	}

	if c.VaultMarker != "" {
		if _, err := os.Stat(filepath.Join(c.VaultPath, c.VaultMarker)); err != nil {
			return &application.VaultError{
				Path:   c.VaultPath,
				Reason: fmt.Sprintf("missing %s", c.VaultMarker),
			}
		}
	}
	return nil
}

// Template returns the configured note template, or the default one
func (c *Config) Template() (domain.Template, error) {
	if c.TemplatePath == "" {
		return domain.DefaultTemplate, nil
	}
	return domain.LoadTemplate(c.TemplatePath)
}
