package xai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestProvider_Defaults(t *testing.T) {
	p := New(Config{APIKey: "key"}, zap.NewNop(), nil)
	assert.Equal(t, "xai", p.Name())
	assert.Equal(t, defaultBaseURL, p.Cfg.BaseURL)
	assert.Equal(t, defaultModel, p.Cfg.DefaultModel)
	assert.True(t, p.SupportsSeed())
}
