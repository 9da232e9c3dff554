package ai

import "context"

// Generator port: one prompt in, one text out. Implementations must not retry
// or stream.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Provider describes the configured model backend.
type Provider struct {
	// Name is shown to users, e.g. "Gemini".
	Name string
	// EnvVar is the environment variable that carries the credential.
	EnvVar string
	Model  string
}
