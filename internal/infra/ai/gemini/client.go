package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/bryanwahyu/feedback-analyzer/internal/domain/ai"
)

const (
	DefaultModel = "gemini-2.0-flash-exp"
	EnvVar       = "GEMINI_API_KEY"
)

// Client generates analysis text with the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client. baseURL is optional and only used to
// point at a compatible endpoint.
func NewClient(ctx context.Context, apiKey, model, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, ai.ErrMissingCredential
	}
	if model == "" {
		model = DefaultModel
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// Provider describes this backend for user-facing messages.
func (c *Client) Provider() ai.Provider {
	return ai.Provider{Name: "Gemini", EnvVar: EnvVar, Model: c.model}
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

