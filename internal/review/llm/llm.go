package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Saieiei/hpe-project-cty/internal/logging"
)

const (
	BackendGemini = "gemini"
	BackendOllama = "ollama"
)

// Generator turns a prompt into generated text. An empty string with a nil
// error means the backend answered without any text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	Backend        string
	GeminiEndpoint string
	GeminiAPIKey   string
	OllamaURL      string
	OllamaModel    string
	// CallTimeout bounds one whole generation call; zero means unbounded.
	CallTimeout time.Duration
	Logger      logging.Logger
}

// New builds the Generator selected by cfg.Backend.
func New(cfg Config) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case BackendGemini, "":
		return NewGeminiClient(cfg)
	case BackendOllama:
		return NewOllamaClient(cfg)
	default:
		return nil, fmt.Errorf("unknown generator backend %q (must be %s or %s)", cfg.Backend, BackendGemini, BackendOllama)
	}
}

func withTimeout(ctx context.Context, to time.Duration) (context.Context, context.CancelFunc) {
	if to <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, to)
}

func annotateError(err error, to time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("generation call timed out after %s: %w", to, err)
	}
	return err
}
