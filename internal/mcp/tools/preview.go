package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Saieiei/hpe-project-cty/internal/logging"
	"github.com/Saieiei/hpe-project-cty/internal/mcp/tools/types"
	"github.com/Saieiei/hpe-project-cty/internal/review"
)

type PreviewService interface {
	Preview(ctx context.Context, prNumber int) (types.PromptPreview, error)
}

type PreviewPromptHandler struct {
	Service PreviewService
}

type reviewPreviewer struct {
	cfg     review.Config
	source  review.Source
	history review.HistorySearcher
	log     logging.Logger
}

// NewReviewPreviewer builds prompts with the same collector the review job
// uses. It never calls a model or posts.
func NewReviewPreviewer(cfg review.Config, source review.Source, history review.HistorySearcher, log logging.Logger) PreviewService {
	return &reviewPreviewer{cfg: cfg, source: source, history: history, log: log}
}

func (p *reviewPreviewer) Preview(ctx context.Context, prNumber int) (types.PromptPreview, error) {
	cfg := p.cfg
	cfg.PullNumber = prNumber

	runner, err := review.NewRunner(cfg, p.source, p.history, nil, nil, p.log)
	if err != nil {
		return types.PromptPreview{}, err
	}
	prepared, err := runner.Prepare(ctx)
	nothing := errors.Is(err, review.ErrNoReviewableContent)
	if err != nil && !nothing {
		return types.PromptPreview{}, err
	}

	return types.PromptPreview{
		PRNumber:        prNumber,
		Title:           prepared.PullRequest.Title,
		Author:          prepared.PullRequest.Author,
		FilesReviewed:   prepared.FilesReviewed,
		FilesSkipped:    prepared.FilesSkipped,
		Prompt:          prepared.Prompt,
		NothingToReview: nothing,
	}, nil
}

func (h *PreviewPromptHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, err := parseIntArgument("pr_number", req.GetArguments()["pr_number"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	preview, err := h.Service.Preview(ctx, number)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(mustMarshal(preview))), nil
}
