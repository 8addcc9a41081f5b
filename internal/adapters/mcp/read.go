package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"vaultstats/internal/application/commands"
	"vaultstats/internal/domain"
	"vaultstats/internal/ports"
)

// StatsURI is the resource holding the JSON stats summary of the vault
const StatsURI = "vault://stats"

// Vault bundles the dependencies shared by the vault tools
type Vault struct {
	Root     string
	Scanner  commands.Scanner
	Repo     ports.NoteRepository
	Template domain.Template
	// Top is the number of tags reported when a call does not ask for one
	Top int
}

// RegisterReadTools adds all read-only vault tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, v Vault) {
	s.AddTool(vaultStatsTool(), vaultStatsHandler(v))
	s.AddTool(topTagsTool(), topTagsHandler(v))
	s.AddTool(showNoteTool(), showNoteHandler(v))

	s.AddResource(
		mcp.NewResource(StatsURI, "Vault Statistics",
			mcp.WithResourceDescription("Word, wiki link and tag totals of the vault"),
			mcp.WithMIMEType("application/json"),
		),
		statsResourceHandler(v),
	)
}

// --- vault_stats ---

func vaultStatsTool() mcp.Tool {
	return mcp.NewTool("vault_stats",
		mcp.WithDescription("Scan the vault and report the total wiki links, total words, document count and most frequent tags."),
		mcp.WithNumber("top",
			mcp.Description("Number of most frequent tags to include (default 3)"),
		),
	)
}

func vaultStatsHandler(v Vault) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewStatsCommand(v.Scanner, v.Root, topArg(req, v.Top)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Summary()), nil
	}
}

// --- top_tags ---

func topTagsTool() mcp.Tool {
	return mcp.NewTool("top_tags",
		mcp.WithDescription("List the most frequent tags of the vault, one per line as 'tag: count'."),
		mcp.WithNumber("top",
			mcp.Description("Number of tags to list (default 3)"),
		),
	)
}

func topTagsHandler(v Vault) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewStatsCommand(v.Scanner, v.Root, topArg(req, v.Top)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(result.TopTags) == 0 {
			return mcp.NewToolResultText("No tags found."), nil
		}

		var sb strings.Builder
		for _, tc := range result.TopTags {
			fmt.Fprintf(&sb, "%s: %d\n", tc.Tag, tc.Count)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- show_note ---

func showNoteTool() mcp.Tool {
	return mcp.NewTool("show_note",
		mcp.WithDescription("Return the raw markdown content of a note."),
		mcp.WithString("note",
			mcp.Description("Note path relative to the vault root (e.g. ideas/garden.md)"),
			mcp.Required(),
		),
	)
}

func showNoteHandler(v Vault) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewShowNoteCommand(v.Repo, req.GetString("note", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Body), nil
	}
}

// --- vault://stats ---

func statsResourceHandler(v Vault) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		result, err := commands.NewStatsCommand(v.Scanner, v.Root, v.Top).Execute(ctx)
		if err != nil {
			return nil, err
		}

		summary := map[string]any{
			"documents":        result.Report.Documents,
			"total_link_count": result.Report.Totals.LinkCount,
			"total_word_count": result.Report.Totals.WordCount,
			"top_tags":         result.TopTags,
			"skipped":          result.Report.Skipped(),
		}
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal summary: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

// topArg reads the optional "top" argument; JSON numbers arrive as float64
func topArg(req mcp.CallToolRequest, fallback int) int {
	if top, ok := req.GetArguments()["top"].(float64); ok && top > 0 {
		return int(top)
	}
	if fallback <= 0 {
		return 3
	}
	return fallback
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
