package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"vaultstats/internal/application/commands"
)

// RegisterWriteTools adds the note writing tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, v Vault) {
	s.AddTool(newNoteTool(), newNoteHandler(v))
	s.AddTool(appendNoteTool(), appendNoteHandler(v))
}

// --- new_note ---

func newNoteTool() mcp.Tool {
	return mcp.NewTool("new_note",
		mcp.WithDescription("Create a new timestamped note (Note_YYYY_MM_DD_HH_MM_SS.md) at the vault root from an idea, using the configured template."),
		mcp.WithString("idea",
			mcp.Description("Text of the idea; may contain #tags and [[links]]"),
			mcp.Required(),
		),
	)
}

func newNoteHandler(v Vault) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewNewNoteCommand(v.Repo, v.Template, req.GetString("idea", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- append_note ---

func appendNoteTool() mcp.Tool {
	return mcp.NewTool("append_note",
		mcp.WithDescription("Append an idea on a new line at the end of an existing note."),
		mcp.WithString("note",
			mcp.Description("Note path relative to the vault root"),
			mcp.Required(),
		),
		mcp.WithString("idea",
			mcp.Description("Text to append"),
			mcp.Required(),
		),
	)
}

func appendNoteHandler(v Vault) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewAppendNoteCommand(v.Repo, req.GetString("note", ""), req.GetString("idea", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
