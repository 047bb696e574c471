package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shayo/shipeval/types"
)

func TestProvider_Name(t *testing.T) {
	p := New(Config{}, zap.NewNop(), nil)
	assert.Equal(t, "anthropic", p.Name())
}

func TestProvider_SupportsSeed(t *testing.T) {
	p := New(Config{}, zap.NewNop(), nil)
	assert.False(t, p.SupportsSeed())
}

func TestProvider_Generate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var body claudeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "be terse", body.System)
		require.Len(t, body.Messages, 1)
		assert.Equal(t, "user", body.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(claudeResponse{
			ID:      "msg_1",
			Model:   "claude-opus-4",
			Content: []claudeContentBlock{{Type: "text", Text: "Hello!"}},
			Usage:   claudeUsage{InputTokens: 10, OutputTokens: 3},
		})
	}))
	t.Cleanup(server.Close)

	p := New(Config{APIKey: "test-key", BaseURL: server.URL}, zap.NewNop(), nil)
	resp, err := p.Generate(context.Background(), &types.ChatRequest{
		Messages: []types.Message{types.NewSystemMessage("be terse"), types.NewUserMessage("hi")},
		Options:  types.ChatOptions{MaxTokens: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello!", resp.Content)
	assert.Equal(t, 10, resp.PromptTokens)
	assert.Equal(t, 3, resp.CompletionTokens)
}

func TestProvider_Generate_DefaultsMaxTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body claudeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, fallbackMaxTokens, body.MaxTokens)
		json.NewEncoder(w).Encode(claudeResponse{})
	}))
	t.Cleanup(server.Close)

	p := New(Config{APIKey: "key", BaseURL: server.URL}, zap.NewNop(), nil)
	_, err := p.Generate(context.Background(), &types.ChatRequest{
		Messages: []types.Message{types.NewUserMessage("hi")},
	})
	require.NoError(t, err)
}

func TestProvider_Generate_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"type": "authentication_error", "message": "invalid key"}})
	}))
	t.Cleanup(server.Close)

	p := New(Config{APIKey: "bad", BaseURL: server.URL}, zap.NewNop(), nil)
	_, err := p.Generate(context.Background(), &types.ChatRequest{
		Messages: []types.Message{types.NewUserMessage("hi")},
	})
	require.Error(t, err)
	assert.Equal(t, types.ErrAuthentication, types.GetErrorCode(err))
}

func TestChooseModel_Default(t *testing.T) {
	assert.Equal(t, defaultModel, chooseModel(&types.ChatRequest{}, ""))
	assert.Equal(t, "claude-haiku", chooseModel(&types.ChatRequest{Model: "claude-haiku"}, "cfg-model"))
}
