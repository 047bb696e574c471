// Package openaicompat is the shared implementation for every
// OpenAI-compatible LLM provider (OpenAI itself, xAI Grok, OpenRouter).
// Vendor adapters embed Provider and only override what differs: Name,
// BaseURL, default model, and header construction.
package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/shayo/shipeval/internal/metrics"
	"github.com/shayo/shipeval/internal/tlsutil"
	"github.com/shayo/shipeval/llm/providers"
	"github.com/shayo/shipeval/types"
)

// Config holds the configuration for an OpenAI-compatible provider.
type Config struct {
	// ProviderName is the adapter's short identifier, e.g. "openai".
	ProviderName string

	// APIKey authenticates every request.
	APIKey string

	// BaseURL is the API's base URL, e.g. "https://api.openai.com".
	BaseURL string

	// DefaultModel is used when the request doesn't name one.
	DefaultModel string

	// Timeout is the HTTP client timeout. Defaults to 60s if zero.
	Timeout time.Duration

	// EndpointPath is the chat-completions path. Defaults to "/v1/chat/completions".
	EndpointPath string

	// ModelsEndpoint is the models-list path, used by HealthCheck. Defaults to "/v1/models".
	ModelsEndpoint string

	// BuildHeaders optionally overrides header construction; nil uses
	// the default "Authorization: Bearer <apiKey>" header.
	BuildHeaders func(req *http.Request, apiKey string)

	// RateLimit caps outbound requests per second ahead of the
	// provider's own limiter, client-side pacing per spec. Zero
	// disables local pacing.
	RateLimit rate.Limit
}

// Provider is the base implementation embedded by every
// OpenAI-compatible adapter.
type Provider struct {
	Cfg     Config
	Client  *http.Client
	Logger  *zap.Logger
	Metrics *metrics.Collector
	limiter *rate.Limiter
}

// New creates an OpenAI-compatible provider base.
func New(cfg Config, logger *zap.Logger, coll *metrics.Collector) *Provider {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/v1/chat/completions"
	}
	if cfg.ModelsEndpoint == "" {
		cfg.ModelsEndpoint = "/v1/models"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if coll == nil {
		coll = metrics.NewNop()
	}
	p := &Provider{
		Cfg:     cfg,
		Client:  tlsutil.SecureHTTPClient(timeout),
		Logger:  logger,
		Metrics: coll,
	}
	if cfg.RateLimit > 0 {
		p.limiter = rate.NewLimiter(cfg.RateLimit, 1)
	}
	return p
}

func (p *Provider) Name() string { return p.Cfg.ProviderName }

// SupportsSeed reports whether OpenAI-compatible providers honor a seed.
// All OpenAI-compatible vendors in this harness do, best-effort.
func (p *Provider) SupportsSeed() bool { return true }

func (p *Provider) buildHeaders(req *http.Request, apiKey string) {
	if p.Cfg.BuildHeaders != nil {
		p.Cfg.BuildHeaders(req, apiKey)
		return
	}
	providers.BearerTokenHeaders(req, apiKey)
}

func (p *Provider) endpoint(path string) string {
	return fmt.Sprintf("%s%s", strings.TrimRight(p.Cfg.BaseURL, "/"), path)
}

func (p *Provider) HealthCheck(ctx context.Context) (*types.HealthStatus, error) {
	start := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint(p.Cfg.ModelsEndpoint), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	p.buildHeaders(httpReq, p.Cfg.APIKey)

	resp, err := p.Client.Do(httpReq)
	latency := time.Since(start)
	if err != nil {
		return &types.HealthStatus{Healthy: false, Latency: latency}, err
	}
	defer providers.SafeCloseBody(resp.Body)

	if resp.StatusCode != http.StatusOK {
		msg := providers.ReadErrorMessage(resp.Body)
		return &types.HealthStatus{Healthy: false, Latency: latency},
			fmt.Errorf("%s health check failed: status=%d msg=%s", p.Cfg.ProviderName, resp.StatusCode, msg)
	}
	return &types.HealthStatus{Healthy: true, Latency: latency}, nil
}

// Generate performs one non-streaming chat-completion call.
func (p *Provider) Generate(ctx context.Context, req *types.ChatRequest) (*types.ChatResponse, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	model := providers.ChooseModel(req, p.Cfg.DefaultModel)
	body := providers.OpenAICompatRequest{
		Model:       model,
		Messages:    providers.ConvertMessagesToOpenAI(req.Messages),
		MaxTokens:   req.Options.MaxTokens,
		Temperature: req.Options.Temperature,
		Stop:        req.Options.Stop,
		Seed:        req.Options.Seed,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(p.Cfg.EndpointPath), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	p.buildHeaders(httpReq, p.Cfg.APIKey)

	start := time.Now()
	resp, err := p.Client.Do(httpReq)
	latency := time.Since(start)
	if err != nil {
		p.Metrics.RecordProviderRequest(p.Name(), "transport_error", latency, 0, 0)
		return nil, types.NewError(types.ErrUpstreamError, err.Error()).WithHTTPStatus(http.StatusBadGateway).WithRetryable(true).WithProvider(p.Name())
	}
	defer providers.SafeCloseBody(resp.Body)

	if resp.StatusCode >= 400 {
		msg := providers.ReadErrorMessage(resp.Body)
		mapped := providers.MapHTTPError(resp.StatusCode, msg, p.Name())
		p.Metrics.RecordProviderRequest(p.Name(), string(mapped.Code), latency, 0, 0)
		return nil, mapped
	}

	var oaResp providers.OpenAICompatResponse
	if err := json.NewDecoder(resp.Body).Decode(&oaResp); err != nil {
		p.Metrics.RecordProviderRequest(p.Name(), "decode_error", latency, 0, 0)
		return nil, types.NewError(types.ErrUpstreamError, err.Error()).WithHTTPStatus(http.StatusBadGateway).WithRetryable(true).WithProvider(p.Name())
	}

	result := providers.ToChatResponse(oaResp, req.Options.Seed)
	result.Latency = latency
	p.Metrics.RecordProviderRequest(p.Name(), "ok", latency, result.PromptTokens, result.CompletionTokens)
	return result, nil
}
