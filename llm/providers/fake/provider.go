package fake

import (
	"context"
	"fmt"
	"time"

	"github.com/shayo/shipeval/internal/tokencount"
	"github.com/shayo/shipeval/types"
)

// ResponseType selects which canned response a Provider returns.
type ResponseType string

const (
	Perfect   ResponseType = "perfect"
	Incomplete ResponseType = "incomplete"
	Incorrect ResponseType = "incorrect"
	Refusal   ResponseType = "refusal"
)

var cannedResponses = map[ResponseType]string{
	Perfect: `Medicare has two main options:

1. Original Medicare (Parts A & B)
   - Part A covers hospital stays, skilled nursing facility care, hospice, and some home health care
   - Part B covers doctor visits, outpatient care, medical equipment, and preventive services
   - You can see any provider that accepts Medicare
   - You'll need separate Part D for prescription drug coverage
   - Consider a Medigap policy to cover out-of-pocket costs

2. Medicare Advantage (Part C)
   - Private insurance that bundles Parts A, B, and usually D
   - Often includes extra benefits like dental, vision, and hearing
   - Uses provider networks - you may need to use in-network doctors
   - Has a yearly out-of-pocket maximum for cost protection
   - May require referrals to see specialists

You can compare specific plans at Medicare.gov or call 1-800-MEDICARE for personalized help.`,

	Incomplete: `Medicare Advantage and Original Medicare are different types of coverage.

Original Medicare is the traditional government program with Part A for hospitals and Part B for doctors.

Medicare Advantage is sold by private insurance companies and includes hospital and doctor coverage, and often prescription drugs too.

You should compare plans to see which works best for you.`,

	Incorrect: `Medicare Advantage is always better than Original Medicare because it has lower costs and better coverage. You should definitely switch to Medicare Advantage. All doctors accept Medicare Advantage plans, so you won't have any issues with networks. You don't need to worry about anything else.`,

	Refusal: `I appreciate your question about Medicare options. However, Medicare enrollment decisions can be complex and depend on your specific health needs, financial situation, and location.

I'd recommend speaking with a licensed Medicare advisor or contacting your State Health Insurance Assistance Program (SHIP) at 1-800-MEDICARE for personalized guidance. They can help you understand which option is best for your situation.

Is there any general information about Medicare that I can help clarify?`,
}

// simulatedLatency mirrors the reference implementation's fixed delay,
// standing in for a real vendor round trip in tests.
const simulatedLatency = 100 * time.Millisecond

// Provider always returns the same canned response, useful for
// deterministic pipeline tests and fixture generation.
type Provider struct {
	responseType ResponseType
	content      string
}

// New creates a fake provider. It panics on an unknown response type
// since this is always a programming error (test setup), never
// runtime input.
func New(responseType ResponseType) *Provider {
	content, ok := cannedResponses[responseType]
	if !ok {
		panic(fmt.Sprintf("fake: unknown response type %q", responseType))
	}
	return &Provider{responseType: responseType, content: content}
}

func (p *Provider) Name() string { return fmt.Sprintf("fake:%s", p.responseType) }

// SupportsSeed is always true; the fake provider is deterministic by
// construction.
func (p *Provider) SupportsSeed() bool { return true }

func (p *Provider) Generate(ctx context.Context, req *types.ChatRequest) (*types.ChatResponse, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(simulatedLatency):
	}

	var promptText string
	for _, m := range req.Messages {
		promptText += m.Content
	}

	resp := &types.ChatResponse{
		Content:          p.content,
		ModelIdentifier:  fmt.Sprintf("fake-v1.0-%s", p.responseType),
		PromptTokens:     tokencount.Estimate(promptText),
		CompletionTokens: tokencount.Estimate(p.content),
		Latency:          simulatedLatency,
	}
	if req.Options.Seed != nil {
		resp.SeedEchoed = req.Options.Seed
	}
	return resp, nil
}

func (p *Provider) HealthCheck(ctx context.Context) (*types.HealthStatus, error) {
	return &types.HealthStatus{Healthy: true, Latency: 0}, nil
}
