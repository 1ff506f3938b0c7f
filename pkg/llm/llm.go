// Package llm wraps chat-completion providers behind one small interface.
package llm

import (
	"context"
	"fmt"
	"strings"
)

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

type Message struct {
	Role    Role
	Content string
}

type Request struct {
	Messages    []Message
	Temperature float32
	// JSON asks the provider to constrain output to a JSON object.
	JSON bool
}

// Completer returns the raw text content of the first choice.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
	// Configured is false when the provider credential is missing.
	Configured() bool
	// CredentialEnv names the environment variable that holds the credential.
	CredentialEnv() string
	Name() string
}

// UpstreamError is a failed provider call. StatusCode is 0 for transport failures.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s error: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

type Config struct {
	Provider      string // "openai" (default) or "gemini"
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiAPIKey  string
	GeminiModel   string
}

// New picks the provider named in cfg.
func New(ctx context.Context, cfg Config) (Completer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "openai":
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL), nil
	case "gemini":
		return NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}
