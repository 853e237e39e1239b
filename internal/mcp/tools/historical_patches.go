package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Saieiei/hpe-project-cty/internal/mcp/tools/types"
	"github.com/Saieiei/hpe-project-cty/internal/scm"
)

type HistorySearchService interface {
	Search(ctx context.Context, filename string, currentPR int) ([]scm.HistoricalMatch, error)
}

type HistoricalPatchesHandler struct {
	Service HistorySearchService
}

func (h *HistoricalPatchesHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	filename, _ := args["filename"].(string)
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return mcp.NewToolResultError("filename parameter is required"), nil
	}

	current := 0
	if raw, ok := args["pr_number"]; ok && raw != nil {
		n, err := parseIntArgument("pr_number", raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		current = n
	}

	matches, err := h.Service.Search(ctx, filename, current)
	if err != nil {
		return nil, err
	}

	result := types.HistoricalPatchesResult{
		Filename: filename,
		Matches:  make([]types.HistoricalPatch, 0, len(matches)),
	}
	for _, m := range matches {
		result.Matches = append(result.Matches, types.HistoricalPatch{
			PRNumber: m.PullNumber,
			Author:   m.Author,
			Patch:    m.Patch,
		})
	}
	return mcp.NewToolResultText(string(mustMarshal(result))), nil
}
