package mcp

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler
}

var toolDefinitions = map[string]mcp.Tool{
	"historical_patches": mcp.NewTool("historical_patches",
		mcp.WithDescription("Find patches to a file from recently merged pull requests, newest first. Returns at most three matches with PR number, author and patch text."),
		mcp.WithString("filename",
			mcp.Required(),
			mcp.Description("Repository-relative path of the file (e.g., 'llvm/lib/IR/Verifier.cpp')"),
		),
		mcp.WithNumber("pr_number",
			mcp.Description("Pull request to leave out of the results (default: none)"),
		),
	),
	"preview_review_prompt": mcp.NewTool("preview_review_prompt",
		mcp.WithDescription("Assemble the review prompt for a pull request without calling the model or posting anything. Returns the prompt and the reviewed and skipped files."),
		mcp.WithNumber("pr_number",
			mcp.Required(),
			mcp.Description("The pull request number (e.g., 1234)"),
		),
	),
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		"pr-review-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	for name, adapter := range cfg.ToolAdapters {
		tool, ok := toolDefinitions[name]
		if !ok {
			continue
		}
		adapter := adapter
		mcpServer.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return adapter.ToolAdapter(ctx, req)
		})
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	return &Server{
		MCP:     mcpServer,
		HTTP:    httpServer,
		Handler: httpServer,
	}
}
