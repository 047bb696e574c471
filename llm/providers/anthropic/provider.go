package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shayo/shipeval/internal/metrics"
	"github.com/shayo/shipeval/internal/tlsutil"
	"github.com/shayo/shipeval/types"
)

const (
	defaultBaseURL    = "https://api.anthropic.com"
	defaultModel      = "claude-opus-4"
	anthropicVersion  = "2023-06-01"
)

// Config configures the Anthropic provider.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Provider implements the llm.Provider interface for Anthropic Claude.
type Provider struct {
	cfg     Config
	client  *http.Client
	logger  *zap.Logger
	metrics *metrics.Collector
}

// New creates an Anthropic provider.
func New(cfg Config, logger *zap.Logger, coll *metrics.Collector) *Provider {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if coll == nil {
		coll = metrics.NewNop()
	}
	return &Provider{
		cfg:     cfg,
		client:  tlsutil.SecureHTTPClient(timeout),
		logger:  logger,
		metrics: coll,
	}
}

func (p *Provider) Name() string { return "anthropic" }

// SupportsSeed reports that Claude's messages API has no seed
// parameter; determinism cannot be requested.
func (p *Provider) SupportsSeed() bool { return false }

func (p *Provider) buildHeaders(r *http.Request) {
	r.Header.Set("x-api-key", p.cfg.APIKey)
	r.Header.Set("anthropic-version", anthropicVersion)
	r.Header.Set("Content-Type", "application/json")
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeRequest struct {
	Model       string          `json:"model"`
	System      string          `json:"system,omitempty"`
	Messages    []claudeMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float32         `json:"temperature,omitempty"`
	StopSequences []string      `json:"stop_sequences,omitempty"`
}

type claudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type claudeResponse struct {
	ID         string               `json:"id"`
	Model      string               `json:"model"`
	Content    []claudeContentBlock `json:"content"`
	StopReason string               `json:"stop_reason"`
	Usage      claudeUsage          `json:"usage"`
}

type claudeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Claude requires a non-zero max_tokens; the harness always sets one
// via ChatOptions but this is the floor if a caller forgets.
const fallbackMaxTokens = 1024

func convertToClaudeMessages(msgs []types.Message) (system string, converted []claudeMessage) {
	for _, m := range msgs {
		if m.Role == types.RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		converted = append(converted, claudeMessage{Role: string(m.Role), Content: m.Content})
	}
	return system, converted
}

func (p *Provider) Generate(ctx context.Context, req *types.ChatRequest) (*types.ChatResponse, error) {
	system, messages := convertToClaudeMessages(req.Messages)

	maxTokens := req.Options.MaxTokens
	if maxTokens <= 0 {
		maxTokens = fallbackMaxTokens
	}

	body := claudeRequest{
		Model:         chooseModel(req, p.cfg.Model),
		System:        system,
		Messages:      messages,
		MaxTokens:     maxTokens,
		Temperature:   req.Options.Temperature,
		StopSequences: req.Options.Stop,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/messages", strings.TrimRight(p.cfg.BaseURL, "/"))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	p.buildHeaders(httpReq)

	start := time.Now()
	resp, err := p.client.Do(httpReq)
	latency := time.Since(start)
	if err != nil {
		p.metrics.RecordProviderRequest(p.Name(), "transport_error", latency, 0, 0)
		return nil, types.NewError(types.ErrUpstreamError, err.Error()).WithHTTPStatus(http.StatusBadGateway).WithRetryable(true).WithProvider(p.Name())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp claudeErrorResponse
		data, _ := io.ReadAll(resp.Body)
		msg := string(data)
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error.Message != "" {
			msg = errResp.Error.Message
		}
		mapped := mapError(resp.StatusCode, msg, p.Name())
		p.metrics.RecordProviderRequest(p.Name(), string(mapped.Code), latency, 0, 0)
		return nil, mapped
	}

	var cr claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		p.metrics.RecordProviderRequest(p.Name(), "decode_error", latency, 0, 0)
		return nil, types.NewError(types.ErrUpstreamError, err.Error()).WithHTTPStatus(http.StatusBadGateway).WithRetryable(true).WithProvider(p.Name())
	}

	result := toChatResponse(cr)
	result.Latency = latency
	p.metrics.RecordProviderRequest(p.Name(), "ok", latency, result.PromptTokens, result.CompletionTokens)
	return result, nil
}

func toChatResponse(cr claudeResponse) *types.ChatResponse {
	resp := &types.ChatResponse{ModelIdentifier: cr.Model}
	for _, block := range cr.Content {
		if block.Type == "text" {
			resp.Content += block.Text
		}
	}
	resp.PromptTokens = cr.Usage.InputTokens
	resp.CompletionTokens = cr.Usage.OutputTokens
	return resp
}

func (p *Provider) HealthCheck(ctx context.Context) (*types.HealthStatus, error) {
	start := time.Now()
	endpoint := fmt.Sprintf("%s/v1/models", strings.TrimRight(p.cfg.BaseURL, "/"))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	p.buildHeaders(httpReq)

	resp, err := p.client.Do(httpReq)
	latency := time.Since(start)
	if err != nil {
		return &types.HealthStatus{Healthy: false, Latency: latency}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &types.HealthStatus{Healthy: false, Latency: latency}, fmt.Errorf("anthropic health check failed: status=%d", resp.StatusCode)
	}
	return &types.HealthStatus{Healthy: true, Latency: latency}, nil
}

func mapError(status int, msg string, provider string) *types.Error {
	switch status {
	case http.StatusUnauthorized:
		return types.NewError(types.ErrAuthentication, msg).WithHTTPStatus(status).WithProvider(provider)
	case http.StatusForbidden:
		return types.NewError(types.ErrForbidden, msg).WithHTTPStatus(status).WithProvider(provider)
	case http.StatusTooManyRequests:
		return types.NewError(types.ErrRateLimited, msg).WithHTTPStatus(status).WithRetryable(true).WithProvider(provider)
	case http.StatusBadRequest:
		lower := strings.ToLower(msg)
		if strings.Contains(lower, "credit") || strings.Contains(lower, "quota") {
			return types.NewError(types.ErrQuotaExceeded, msg).WithHTTPStatus(status).WithProvider(provider)
		}
		return types.NewError(types.ErrInvalidRequest, msg).WithHTTPStatus(status).WithProvider(provider)
	case http.StatusNotFound:
		return types.NewError(types.ErrModelNotFound, msg).WithHTTPStatus(status).WithProvider(provider)
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return types.NewError(types.ErrUpstreamError, msg).WithHTTPStatus(status).WithRetryable(true).WithProvider(provider)
	case 529:
		return types.NewError(types.ErrProviderUnavailable, msg).WithHTTPStatus(status).WithRetryable(true).WithProvider(provider)
	default:
		return types.NewError(types.ErrUpstreamError, msg).WithHTTPStatus(status).WithRetryable(status >= 500).WithProvider(provider)
	}
}

func chooseModel(req *types.ChatRequest, cfgModel string) string {
	if req != nil && req.Model != "" {
		return req.Model
	}
	if cfgModel != "" {
		return cfgModel
	}
	return defaultModel
}
