package openrouter

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/shayo/shipeval/internal/metrics"
	"github.com/shayo/shipeval/llm/providers/openaicompat"
)

const (
	defaultBaseURL = "https://openrouter.ai/api"
	defaultModel   = "openai/gpt-4-turbo"
)

// Config configures the OpenRouter provider.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration

	// AppTitle is sent as X-Title, shown on OpenRouter's dashboard.
	AppTitle string
}

// Provider implements the llm.Provider interface for OpenRouter by
// embedding the OpenAI-compatible base.
type Provider struct {
	*openaicompat.Provider
}

// New creates an OpenRouter provider.
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
			ProviderName: "openrouter",
			APIKey:       cfg.APIKey,
			BaseURL:      baseURL,
			DefaultModel: model,
			Timeout:      cfg.Timeout,
			BuildHeaders: func(r *http.Request, apiKey string) {
				r.Header.Set("Authorization", "Bearer "+apiKey)
				r.Header.Set("Content-Type", "application/json")
				if cfg.AppTitle != "" {
					r.Header.Set("X-Title", cfg.AppTitle)
				}
			},
		}, logger, coll),
	}
}
