package openai

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/shayo/shipeval/internal/metrics"
	"github.com/shayo/shipeval/llm/providers/openaicompat"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-4-turbo"
)

// Config configures the OpenAI provider.
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	Organization string
	Timeout      time.Duration
}

// Provider implements the llm.Provider interface for OpenAI by
// embedding the shared OpenAI-compatible base and layering on
// organization-scoped auth.
type Provider struct {
	*openaicompat.Provider
}

// New creates an OpenAI provider.
func New(cfg Config, logger *zap.Logger, coll *metrics.Collector) *Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	p := &Provider{
		Provider: openaicompat.New(openaicompat.Config{
			ProviderName: "openai",
			APIKey:       cfg.APIKey,
			BaseURL:      baseURL,
			DefaultModel: model,
			Timeout:      cfg.Timeout,
			BuildHeaders: func(r *http.Request, apiKey string) {
				r.Header.Set("Authorization", "Bearer "+apiKey)
				if cfg.Organization != "" {
					r.Header.Set("OpenAI-Organization", cfg.Organization)
				}
				r.Header.Set("Content-Type", "application/json")
			},
		}, logger, coll),
	}
	return p
}
