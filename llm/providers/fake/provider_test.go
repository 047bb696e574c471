package fake

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shayo/shipeval/types"
)

func TestNew_UnknownResponseType_Panics(t *testing.T) {
	assert.Panics(t, func() { New("bogus") })
}

func TestProvider_Generate_ReturnsCannedContent(t *testing.T) {
	for _, rt := range []ResponseType{Perfect, Incomplete, Incorrect, Refusal} {
		p := New(rt)
		resp, err := p.Generate(context.Background(), &types.ChatRequest{
			Messages: []types.Message{types.NewUserMessage("What's the difference between Original Medicare and Medicare Advantage?")},
		})
		require.NoError(t, err)
		assert.Equal(t, cannedResponses[rt], resp.Content)
		assert.Greater(t, resp.PromptTokens, 0)
		assert.Greater(t, resp.CompletionTokens, 0)
	}
}

func TestProvider_SupportsSeed(t *testing.T) {
	p := New(Perfect)
	assert.True(t, p.SupportsSeed())
}

func TestProvider_Generate_EchoesSeed(t *testing.T) {
	p := New(Perfect)
	seed := int64(7)
	resp, err := p.Generate(context.Background(), &types.ChatRequest{
		Messages: []types.Message{types.NewUserMessage("hi")},
		Options:  types.ChatOptions{Seed: &seed},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.SeedEchoed)
	assert.Equal(t, seed, *resp.SeedEchoed)
}

func TestProvider_HealthCheck(t *testing.T) {
	p := New(Perfect)
	status, err := p.HealthCheck(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Healthy)
}
