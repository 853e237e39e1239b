package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"github.com/Saieiei/hpe-project-cty/internal/logging"
	"github.com/Saieiei/hpe-project-cty/internal/mcp/tools"
	"github.com/Saieiei/hpe-project-cty/internal/review"
	"github.com/Saieiei/hpe-project-cty/internal/review/history"
	"github.com/Saieiei/hpe-project-cty/internal/scm"
)

type Config struct {
	ToolAdapters map[string]ToolAdapter
	Options      []server.StreamableHTTPOption
}

// DefaultConfig wires the read-only review tools against the configured
// repository.
func DefaultConfig(log logging.Logger) (Config, error) {
	cfg, err := review.LoadRepositoryConfig(log)
	if err != nil {
		return Config{}, fmt.Errorf("load review config: %w", err)
	}

	client := scm.NewClient(cfg.GitHubToken, cfg.HTTPTimeout)
	fetcher := scm.NewFetcher(client, cfg.Owner, cfg.Repo)
	searcher := history.NewSearcher(fetcher, cfg.History, log.WithName("history"))
	previewer := tools.NewReviewPreviewer(cfg, fetcher, searcher, log.WithName("preview"))

	return Config{
		ToolAdapters: map[string]ToolAdapter{
			"historical_patches":    &tools.HistoricalPatchesHandler{Service: searcher},
			"preview_review_prompt": &tools.PreviewPromptHandler{Service: previewer},
		},
		Options: []server.StreamableHTTPOption{
			server.WithEndpointPath("/mcp/jsonrpc"),
			server.WithStateLess(true),
		},
	}, nil
}
