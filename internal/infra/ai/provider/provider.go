package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/bryanwahyu/feedback-analyzer/internal/domain/ai"
	"github.com/bryanwahyu/feedback-analyzer/internal/infra/ai/gemini"
	"github.com/bryanwahyu/feedback-analyzer/internal/infra/ai/openai"
)

const (
	Gemini = "gemini"
	OpenAI = "openai"
)

// Config selects and authenticates one model backend.
type Config struct {
	Name    string
	APIKey  string
	Model   string
	BaseURL string
}

// New returns the generator for cfg.Name. Without an API key the generator is
// nil and only the provider description is filled, so callers can report the
// missing credential without making a call.
func New(ctx context.Context, cfg Config) (ai.Generator, ai.Provider, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Name))
	if name == "" {
		name = Gemini
	}
	key := strings.TrimSpace(cfg.APIKey)

	switch name {
	case Gemini:
		desc := ai.Provider{Name: "Gemini", EnvVar: gemini.EnvVar, Model: orDefault(cfg.Model, gemini.DefaultModel)}
		if key == "" {
			return nil, desc, nil
		}
		c, err := gemini.NewClient(ctx, key, cfg.Model, cfg.BaseURL)
		if err != nil {
			return nil, desc, err
		}
		return c, c.Provider(), nil
	case OpenAI:
		desc := ai.Provider{Name: "OpenAI", EnvVar: openai.EnvVar, Model: orDefault(cfg.Model, openai.DefaultModel)}
		if key == "" {
			return nil, desc, nil
		}
		c := openai.NewClientWithBaseURL(key, cfg.Model, cfg.BaseURL)
		return c, c.Provider(), nil
	}
	return nil, ai.Provider{}, fmt.Errorf("unknown ai provider %q", cfg.Name)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
