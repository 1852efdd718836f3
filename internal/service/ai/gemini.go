package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/myrecovery365/sobrio/backend/internal/config"
)

// GeminiCompleter talks to the Google Gemini API. This is the default
// provider and mirrors the model the product launched with.
type GeminiCompleter struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// NewGeminiCompleter creates the client once at startup.
func NewGeminiCompleter(ctx context.Context, cfg config.AIConfig) (*GeminiCompleter, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	temperature := float32(0.7)
	if cfg.Temperature != nil {
		temperature = float32(*cfg.Temperature)
	}

	var maxTokens int32
	if cfg.MaxTokens != nil {
		maxTokens = int32(*cfg.MaxTokens)
	}

	return &GeminiCompleter{
		client:      client,
		model:       cfg.GeminiModel,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Complete sends the flattened prompt and normalizes the reply to trimmed
// plain text. One attempt; errors come back as *BackendError.
func (c *GeminiCompleter) Complete(ctx context.Context, req PromptRequest) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}
	if c.maxTokens > 0 {
		genCfg.MaxOutputTokens = c.maxTokens
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(RenderText(req)), genCfg)
	if err != nil {
		return "", wrapErr(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &BackendError{Kind: FailureMalformed, Err: fmt.Errorf("empty completion from model %s", c.model)}
	}
	return text, nil
}
