package xai

import (
	"time"

	"go.uber.org/zap"

	"github.com/shayo/shipeval/internal/metrics"
	"github.com/shayo/shipeval/llm/providers/openaicompat"
)

const (
	defaultBaseURL = "https://api.x.ai"
	defaultModel   = "grok-4"
)

// Config configures the xAI provider.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Provider implements the llm.Provider interface for xAI Grok by
// embedding the OpenAI-compatible base.
type Provider struct {
	*openaicompat.Provider
}

// New creates an xAI provider.
func New(cfg Config, logger *zap.Logger, coll *metrics.Collector) *Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Provider{
		Provider: openaicompat.New(openaicompat.Config{
			ProviderName: "xai",
			APIKey:       cfg.APIKey,
			BaseURL:      baseURL,
			DefaultModel: model,
			Timeout:      cfg.Timeout,
		}, logger, coll),
	}
}
