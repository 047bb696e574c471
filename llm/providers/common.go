// Package providers holds the shared HTTP plumbing used by every
// OpenAI-compatible adapter (openai, xai, openrouter), plus the
// request/response shapes and error mapping those adapters convert
// to and from.
package providers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shayo/shipeval/types"
)

// MapHTTPError classifies an HTTP status code into a *types.Error with
// the correct retryable flag: 401/403 fatal, 429 retryable, 400 fatal
// (QUOTA_EXCEEDED when the message mentions quota/credit/limit,
// INVALID_REQUEST otherwise), 404 fatal, 5xx retryable, and anything
// else retryable only when its status is 5xx.
func MapHTTPError(status int, msg string, provider string) *types.Error {
	switch status {
	case http.StatusUnauthorized:
		return types.NewError(types.ErrAuthentication, msg).WithHTTPStatus(status).WithProvider(provider)
	case http.StatusForbidden:
		return types.NewError(types.ErrForbidden, msg).WithHTTPStatus(status).WithProvider(provider)
	case http.StatusTooManyRequests:
		return types.NewError(types.ErrRateLimited, msg).WithHTTPStatus(status).WithRetryable(true).WithProvider(provider)
	case http.StatusBadRequest:
		lower := strings.ToLower(msg)
		if strings.Contains(lower, "quota") || strings.Contains(lower, "credit") || strings.Contains(lower, "limit") {
			return types.NewError(types.ErrQuotaExceeded, msg).WithHTTPStatus(status).WithProvider(provider)
		}
		return types.NewError(types.ErrInvalidRequest, msg).WithHTTPStatus(status).WithProvider(provider)
	case http.StatusNotFound:
		return types.NewError(types.ErrModelNotFound, msg).WithHTTPStatus(status).WithProvider(provider)
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return types.NewError(types.ErrUpstreamError, msg).WithHTTPStatus(status).WithRetryable(true).WithProvider(provider)
	case 529: // model overloaded, used by some vendors in place of 503
		return types.NewError(types.ErrProviderUnavailable, msg).WithHTTPStatus(status).WithRetryable(true).WithProvider(provider)
	default:
		return types.NewError(types.ErrUpstreamError, msg).WithHTTPStatus(status).WithRetryable(status >= 500).WithProvider(provider)
	}
}

// ReadErrorMessage reads an error response body, preferring the
// conventional {"error": {"message": ...}} envelope and falling back
// to the raw body text.
func ReadErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil {
		return "failed to read error response"
	}
	var errResp struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error.Message != "" {
		if errResp.Error.Type != "" {
			return fmt.Sprintf("%s (type: %s)", errResp.Error.Message, errResp.Error.Type)
		}
		return errResp.Error.Message
	}
	return string(data)
}

// OpenAICompatMessage is the wire shape shared by every OpenAI-compatible
// vendor (OpenAI itself, xAI Grok, OpenRouter).
type OpenAICompatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content,omitempty"`
}

// OpenAICompatRequest is the chat-completions request body.
type OpenAICompatRequest struct {
	Model       string                `json:"model"`
	Messages    []OpenAICompatMessage `json:"messages"`
	MaxTokens   int                   `json:"max_tokens,omitempty"`
	Temperature float32               `json:"temperature,omitempty"`
	Stop        []string              `json:"stop,omitempty"`
	Seed        *int64                `json:"seed,omitempty"`
}

// OpenAICompatChoice is one candidate in a chat-completions response.
type OpenAICompatChoice struct {
	Index        int                 `json:"index"`
	FinishReason string              `json:"finish_reason"`
	Message      OpenAICompatMessage `json:"message"`
}

// OpenAICompatUsage is the chat-completions usage block.
type OpenAICompatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// OpenAICompatResponse is the chat-completions response body.
type OpenAICompatResponse struct {
	ID              string               `json:"id"`
	Model           string               `json:"model"`
	Choices         []OpenAICompatChoice `json:"choices"`
	Usage           *OpenAICompatUsage   `json:"usage,omitempty"`
	SystemFingerprint string             `json:"system_fingerprint,omitempty"`
}

// ConvertMessagesToOpenAI converts the uniform message list into the
// OpenAI-compatible wire shape.
func ConvertMessagesToOpenAI(msgs []types.Message) []OpenAICompatMessage {
	out := make([]OpenAICompatMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, OpenAICompatMessage{Role: string(m.Role), Content: m.Content})
	}
	return out
}

// ToChatResponse converts an OpenAI-compatible response into the
// uniform types.ChatResponse, picking the first choice (this harness
// never requests n>1 completions).
func ToChatResponse(oa OpenAICompatResponse, requestedSeed *int64) *types.ChatResponse {
	resp := &types.ChatResponse{ModelIdentifier: oa.Model}
	if len(oa.Choices) > 0 {
		resp.Content = oa.Choices[0].Message.Content
	}
	if oa.Usage != nil {
		resp.PromptTokens = oa.Usage.PromptTokens
		resp.CompletionTokens = oa.Usage.CompletionTokens
	}
	// OpenAI-compatible vendors echo the seed implicitly by honoring it;
	// there is no seed field in the response body to confirm it, so the
	// adapter reports it echoed whenever one was requested.
	resp.SeedEchoed = requestedSeed
	return resp
}

// ChooseModel falls back to defaultModel when the request doesn't name
// one, matching the teacher's router fallback-chain convention.
func ChooseModel(req *types.ChatRequest, defaultModel string) string {
	if req != nil && req.Model != "" {
		return req.Model
	}
	return defaultModel
}

// BearerTokenHeaders sets the standard Bearer-token auth header used by
// every OpenAI-compatible vendor.
func BearerTokenHeaders(r *http.Request, apiKey string) {
	r.Header.Set("Authorization", "Bearer "+apiKey)
	r.Header.Set("Content-Type", "application/json")
}

// SafeCloseBody closes an HTTP response body, ignoring the error — the
// caller has already consumed or decided not to need the body.
func SafeCloseBody(body io.ReadCloser) {
	if body != nil {
		_ = body.Close()
	}
}
