// Package gemini wraps the hosted Gemini API behind a minimal text-in,
// text-out client. Stages depend on the Generate method only, via their own
// narrow interfaces, so tests never touch the network.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.5-pro"

	defaultTemperature     = 0.4
	defaultMaxOutputTokens = 2048
)

// GenerateConfig carries per-call generation parameters. Zero values fall
// back to the client defaults.
type GenerateConfig struct {
	Temperature     float32
	MaxOutputTokens int32
}

// Client sends prompts to the Gemini API.
type Client struct {
	api             *genai.Client
	model           string
	temperature     float32
	maxOutputTokens int32
}

// New creates a Client for the given API key and model name.
// An empty model selects DefaultModel.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &Client{
		api:             api,
		model:           model,
		temperature:     defaultTemperature,
		maxOutputTokens: defaultMaxOutputTokens,
	}, nil
}

// SetDefaults overrides the client-wide generation defaults. Values <= 0
// keep the built-in defaults.
func (c *Client) SetDefaults(temperature float32, maxOutputTokens int32) {
	if temperature > 0 {
		c.temperature = temperature
	}
	if maxOutputTokens > 0 {
		c.maxOutputTokens = maxOutputTokens
	}
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Generate sends prompt to the model and returns the response text.
// Network, auth and quota failures surface as errors; callers decide how to
// degrade.
func (c *Client) Generate(ctx context.Context, prompt string, cfg GenerateConfig) (string, error) {
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = c.temperature
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = c.maxOutputTokens
	}

	resp, err := c.api.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(temperature),
		MaxOutputTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}

// ModelInfo describes one model available to the API key.
type ModelInfo struct {
	Name    string
	Actions []string
}

// ListModels returns the models the configured API key can use.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var models []ModelInfo
	for model, err := range c.api.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("listing models: %w", err)
		}
		models = append(models, ModelInfo{
			Name:    model.Name,
			Actions: model.SupportedActions,
		})
	}
	return models, nil
}
