// Package llm defines the provider-agnostic call surface used by every
// agent in the evaluation pipeline. A Provider hides vendor differences
// in authentication, message shape, and system-prompt placement behind
// a single Generate call; callers never branch on vendor.
package llm

import (
	"context"

	"github.com/shayo/shipeval/types"
)

// HealthStatus reports the outcome of a lightweight provider probe.
type HealthStatus = types.HealthStatus

// Provider abstracts one LLM vendor behind a uniform surface. All
// concrete adapters (OpenAI, Anthropic, Gemini, xAI, OpenRouter, plus
// the fake and mock-agent test doubles) implement this interface; none
// of them are related by inheritance.
type Provider interface {
	// Generate performs one synchronous completion call.
	Generate(ctx context.Context, req *types.ChatRequest) (*types.ChatResponse, error)

	// HealthCheck performs a cheap connectivity probe.
	HealthCheck(ctx context.Context) (*HealthStatus, error)

	// Name returns the provider's short identifier, e.g. "openai".
	Name() string

	// SupportsSeed reports whether Options.Seed is honored by this
	// provider. Callers must not assume reproducibility when false.
	SupportsSeed() bool
}
