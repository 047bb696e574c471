package llm

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shayo/shipeval/internal/metrics"
	"github.com/shayo/shipeval/llm/providers/anthropic"
	"github.com/shayo/shipeval/llm/providers/fake"
	"github.com/shayo/shipeval/llm/providers/gemini"
	"github.com/shayo/shipeval/llm/providers/mockagent"
	"github.com/shayo/shipeval/llm/providers/openai"
	"github.com/shayo/shipeval/llm/providers/openrouter"
	"github.com/shayo/shipeval/llm/providers/xai"
	"github.com/shayo/shipeval/types"
)

// DefaultTimeout is the per-provider call timeout used when a Config
// doesn't override it.
const DefaultTimeout = 60 * time.Second

// envKeyByProvider names the environment variable each vendor's API
// key is read from. Absence for a selected provider is a fatal
// startup error, not a runtime retry.
var envKeyByProvider = map[string]string{
	"openai":     "OPENAI_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY",
	"gemini":     "GOOGLE_API_KEY",
	"google":     "GOOGLE_API_KEY",
	"xai":        "XAI_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
}

// NewProvider builds a Provider from a "provider:model" spec such as
// "openai:gpt-4-turbo" or "fake:perfect". The fake and mock-agent
// providers need no credentials; every other provider reads its API
// key from the environment variable named in envKeyByProvider and
// fails startup, rather than the first call, if it is unset.
func NewProvider(spec string, logger *zap.Logger, coll *metrics.Collector) (Provider, error) {
	provider, model, err := ParseTargetSpec(spec)
	if err != nil {
		return nil, err
	}

	switch provider {
	case "fake":
		switch rt := fake.ResponseType(model); rt {
		case fake.Perfect, fake.Incomplete, fake.Incorrect, fake.Refusal:
			return fake.New(rt), nil
		default:
			return nil, types.NewError(types.ErrConfiguration, fmt.Sprintf("unknown fake response type %q", model))
		}
	case "mock", "mockagent":
		return mockagent.New(), nil
	case "openai":
		apiKey, err := apiKeyFor(provider)
		if err != nil {
			return nil, err
		}
		return openai.New(openai.Config{APIKey: apiKey, Model: model, Timeout: DefaultTimeout}, logger, coll), nil
	case "anthropic":
		apiKey, err := apiKeyFor(provider)
		if err != nil {
			return nil, err
		}
		return anthropic.New(anthropic.Config{APIKey: apiKey, Model: model, Timeout: DefaultTimeout}, logger, coll), nil
	case "gemini", "google":
		apiKey, err := apiKeyFor(provider)
		if err != nil {
			return nil, err
		}
		return gemini.New(gemini.Config{APIKey: apiKey, Model: model, Timeout: DefaultTimeout}, logger, coll), nil
	case "xai":
		apiKey, err := apiKeyFor(provider)
		if err != nil {
			return nil, err
		}
		return xai.New(xai.Config{APIKey: apiKey, Model: model, Timeout: DefaultTimeout}, logger, coll), nil
	case "openrouter":
		apiKey, err := apiKeyFor(provider)
		if err != nil {
			return nil, err
		}
		return openrouter.New(openrouter.Config{APIKey: apiKey, Model: model, Timeout: DefaultTimeout, AppTitle: "shipeval"}, logger, coll), nil
	default:
		return nil, types.NewError(types.ErrConfiguration, fmt.Sprintf("unknown provider %q", provider))
	}
}

func apiKeyFor(provider string) (string, error) {
	envVar := envKeyByProvider[provider]
	key := os.Getenv(envVar)
	if key == "" {
		return "", types.NewError(types.ErrConfiguration, fmt.Sprintf("%s is not set (required for provider %q)", envVar, provider))
	}
	return key, nil
}

// ParseTargetSpec splits "provider:model_name" into its two halves.
func ParseTargetSpec(spec string) (provider, model string, err error) {
	idx := strings.Index(spec, ":")
	if idx == -1 {
		return "", "", types.NewError(types.ErrConfiguration, fmt.Sprintf("invalid target spec %q, expected \"provider:model_name\"", spec))
	}
	return strings.ToLower(spec[:idx]), spec[idx+1:], nil
}
