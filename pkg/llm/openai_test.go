package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio-api/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAI_Complete(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"score\": 92}"}, "finish_reason": "stop"}]
		}`))
	}))
	defer srv.Close()

	client := llm.NewOpenAI("sk-test", "", srv.URL+"/v1")
	out, err := client.Complete(context.Background(), llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "role"},
			{Role: llm.RoleUser, Content: "profile + jd"},
			{Role: llm.RoleSystem, Content: "rubric"},
		},
		Temperature: 0.2,
		JSON:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"score": 92}`, out)

	assert.Equal(t, "gpt-4o-mini", got["model"])
	assert.InDelta(t, 0.2, got["temperature"], 0.0001)
	assert.Equal(t, map[string]any{"type": "json_object"}, got["response_format"])

	msgs, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 3)
	roles := []string{}
	for _, m := range msgs {
		roles = append(roles, m.(map[string]any)["role"].(string))
	}
	assert.Equal(t, []string{"system", "user", "system"}, roles)
}

func TestOpenAI_UpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "Rate limit reached", "type": "requests", "code": "rate_limit_exceeded"}}`))
	}))
	defer srv.Close()

	client := llm.NewOpenAI("sk-test", "gpt-4o-mini", srv.URL+"/v1")
	_, err := client.Complete(context.Background(), llm.Request{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "hi"}},
	})
	require.Error(t, err)

	var upstream *llm.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "openai", upstream.Provider)
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
}

func TestOpenAI_Configured(t *testing.T) {
	assert.False(t, llm.NewOpenAI("", "", "").Configured())
	assert.True(t, llm.NewOpenAI("sk", "", "").Configured())
	assert.Equal(t, "OPENAI_API_KEY", llm.NewOpenAI("", "", "").CredentialEnv())
}

func TestNew_Provider(t *testing.T) {
	c, err := llm.New(context.Background(), llm.Config{Provider: "openai"})
	require.NoError(t, err)
	assert.Equal(t, "openai", c.Name())

	c, err = llm.New(context.Background(), llm.Config{Provider: "gemini"})
	require.NoError(t, err)
	assert.Equal(t, "gemini", c.Name())
	assert.False(t, c.Configured())
	assert.Equal(t, "GEMINI_API_KEY", c.CredentialEnv())

	_, err = llm.New(context.Background(), llm.Config{Provider: "claude-via-carrier-pigeon"})
	assert.Error(t, err)
}
