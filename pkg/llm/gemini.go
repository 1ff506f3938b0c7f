package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini returns an unconfigured completer (Configured() == false) when apiKey
// is empty, so a missing key surfaces per request instead of at startup.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if model == "" {
		model = defaultGeminiModel
	}
	g := &Gemini{model: model}
	if apiKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *Gemini) Name() string          { return "gemini" }
func (g *Gemini) Configured() bool      { return g.client != nil }
func (g *Gemini) CredentialEnv() string { return "GEMINI_API_KEY" }

func (g *Gemini) Complete(ctx context.Context, req Request) (string, error) {
	if g.client == nil {
		return "", &UpstreamError{Provider: g.Name(), Err: errors.New("client not configured")}
	}

	system, contents := geminiContents(req.Messages)
	temperature := req.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:       &temperature,
		SystemInstruction: system,
	}
	if req.JSON {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", &UpstreamError{Provider: g.Name(), StatusCode: geminiStatus(err), Err: err}
	}
	if resp == nil {
		return "", &UpstreamError{Provider: g.Name(), Err: errors.New("nil response")}
	}
	return resp.Text(), nil
}

// geminiContents folds every system message, in order, into one system
// instruction; user messages become user turns.
func geminiContents(messages []Message) (*genai.Content, []*genai.Content) {
	var (
		systemParts []string
		contents    []*genai.Content
	)
	for _, m := range messages {
		if m.Role == RoleSystem {
			systemParts = append(systemParts, m.Content)
			continue
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
	}

	var system *genai.Content
	if len(systemParts) > 0 {
		system = genai.NewContentFromText(strings.Join(systemParts, "\n\n"), genai.RoleUser)
	}
	return system, contents
}

func geminiStatus(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code
	}
	return 0
}
