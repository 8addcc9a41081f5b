package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"vaultstats/internal/adapters/filesystem"
	mcpadapter "vaultstats/internal/adapters/mcp"
	"vaultstats/internal/config"
	"vaultstats/internal/extract"
	"vaultstats/internal/logging"
	"vaultstats/internal/scan"
)

func main() {
	vaultFlag := flag.String("vault", "", "path to the vault")
	configFlag := flag.String("config", "", "path to the config file")
	templateFlag := flag.String("template", "", "path to the note template")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(config.Options{Vault: *vaultFlag, ConfigFile: *configFlag, Template: *templateFlag})
	if err != nil {
		log.Fatalf("vaultstats-mcp: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("vaultstats-mcp: %v", err)
	}

	tmpl, err := cfg.Template()
	if err != nil {
		log.Fatalf("vaultstats-mcp: %v", err)
	}

	// stdout carries the protocol; logs go to stderr
	logger := logging.Setup(logging.Options{Level: cfg.LogLevel, Writer: os.Stderr})

	enum := filesystem.NewEnumerator(cfg.Extensions...)
	vault := mcpadapter.Vault{
		Root:     cfg.VaultPath,
		Scanner:  scan.New(enum, enum, extract.New(), scan.Options{Workers: cfg.Workers, Logger: logger}),
		Repo:     filesystem.NewRepository(cfg.VaultPath),
		Template: tmpl,
		Top:      cfg.Top,
	}

	mcpServer := server.NewMCPServer(
		"vaultstats-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, vault)
	mcpadapter.RegisterWriteTools(mcpServer, vault)

	logger.Info("serving vault over stdio", "vault", cfg.VaultPath)
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("vaultstats-mcp: %v", err)
	}
}
