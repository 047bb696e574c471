package openai

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shayo/shipeval/types"
)

func TestProvider_Name(t *testing.T) {
	p := New(Config{}, zap.NewNop(), nil)
	assert.Equal(t, "openai", p.Name())
}

func TestProvider_SupportsSeed(t *testing.T) {
	p := New(Config{}, zap.NewNop(), nil)
	assert.True(t, p.SupportsSeed())
}

func TestProvider_Defaults(t *testing.T) {
	p := New(Config{APIKey: "test-key"}, zap.NewNop(), nil)
	require.NotNil(t, p)
	assert.Equal(t, defaultBaseURL, p.Cfg.BaseURL)
	assert.Equal(t, defaultModel, p.Cfg.DefaultModel)
}

func TestProvider_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("OPENAI_API_KEY not set, skipping integration test")
	}

	p := New(Config{APIKey: apiKey, Model: "gpt-4o-mini", Timeout: 30 * time.Second}, zap.NewNop(), nil)
	ctx := context.Background()

	t.Run("HealthCheck", func(t *testing.T) {
		status, err := p.HealthCheck(ctx)
		require.NoError(t, err)
		assert.True(t, status.Healthy)
	})

	t.Run("Generate", func(t *testing.T) {
		req := &types.ChatRequest{
			Model:    "gpt-4o-mini",
			Messages: []types.Message{types.NewUserMessage("Say 'test' only")},
			Options:  types.ChatOptions{MaxTokens: 10, Temperature: 0.1},
		}
		resp, err := p.Generate(ctx, req)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Content)
	})
}
