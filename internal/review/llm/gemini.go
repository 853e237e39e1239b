package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Saieiei/hpe-project-cty/internal/logging"
)

const (
	geminiTextPath  = "candidates.0.content.parts.0.text"
	geminiErrorPath = "error.message"
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

// APIError is a non-2xx answer from the generation endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("generation endpoint returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("generation endpoint returned HTTP %d: %s", e.StatusCode, e.Message)
}

// GeminiClient calls a generateContent endpoint with the API key passed as
// the `key` query parameter.
type GeminiClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	to         time.Duration
	log        logging.Logger
}

func NewGeminiClient(cfg Config) (*GeminiClient, error) {
	if strings.TrimSpace(cfg.GeminiEndpoint) == "" {
		return nil, fmt.Errorf("gemini endpoint is required")
	}
	if _, err := url.Parse(cfg.GeminiEndpoint); err != nil {
		return nil, fmt.Errorf("parse gemini endpoint: %w", err)
	}
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	return &GeminiClient{
		endpoint:   cfg.GeminiEndpoint,
		apiKey:     cfg.GeminiAPIKey,
		httpClient: &http.Client{},
		to:         cfg.CallTimeout,
		log:        cfg.Logger.WithName("gemini"),
	}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := withTimeout(ctx, c.to)
	defer cancel()

	payload, err := json.Marshal(geminiRequest{Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}}})
	if err != nil {
		return "", fmt.Errorf("encode generation request: %w", err)
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse gemini endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request: %w", annotateError(stripURL(err), c.to))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read generation response: %w", err)
	}
	c.log.Debug("generation response", "status", resp.StatusCode, "bytes", len(data), "elapsed", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{StatusCode: resp.StatusCode, Message: gjson.GetBytes(data, geminiErrorPath).String()}
	}
	return ExtractText(data), nil
}

// ExtractText pulls the first candidate's text out of a generateContent
// response, or "" when the path is absent.
func ExtractText(body []byte) string {
	return gjson.GetBytes(body, geminiTextPath).String()
}

// stripURL drops the request URL from transport errors so the API key never
// ends up in logs.
func stripURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}
