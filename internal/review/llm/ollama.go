package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/Saieiei/hpe-project-cty/internal/logging"
)

// OllamaClient generates text with a local Ollama model.
type OllamaClient struct {
	llm *ollama.LLM
	to  time.Duration
	log logging.Logger
}

func NewOllamaClient(cfg Config) (*OllamaClient, error) {
	if strings.TrimSpace(cfg.OllamaModel) == "" {
		return nil, fmt.Errorf("ollama model name is required")
	}

	opts := []ollama.Option{
		ollama.WithModel(cfg.OllamaModel),
		ollama.WithKeepAlive("5m"),
	}
	if trimmed := strings.TrimSpace(cfg.OllamaURL); trimmed != "" {
		opts = append(opts, ollama.WithServerURL(trimmed))
	}

	client, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	return &OllamaClient{llm: client, to: cfg.CallTimeout, log: cfg.Logger.WithName("ollama")}, nil
}

func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := withTimeout(ctx, c.to)
	defer cancel()

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}

	resp, err := c.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", annotateError(err, c.to)
	}
	if len(resp.Choices) == 0 {
		c.log.Info("ollama returned no choices")
		return "", nil
	}
	return resp.Choices[0].Content, nil
}
