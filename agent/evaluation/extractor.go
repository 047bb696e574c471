package evaluation

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/shayo/shipeval/agent/structured"
	"github.com/shayo/shipeval/llm"
	"github.com/shayo/shipeval/types"
)

const extractorSystemPrompt = `You are a claim extraction agent. Given a response from a Medicare guidance assistant, split it into a list of atomic, independently-verifiable claims.

Rules:
- Split compound assertions into separate claims ("Part A covers hospital stays and Part B covers doctor visits" is two claims).
- Mark hedged statements ("may", "might", "in general", "usually") with is_hedged = true.
- Mark referrals to outside resources ("contact Medicare.gov", "call 1-800-MEDICARE") with type = "referral".
- quote_spans must be character offsets into the exact response text you were given - do not paraphrase the source.
- type is one of: factual, procedural, temporal, conditional, referral.
- confidence is one of: low, medium, high.

Respond with a JSON object: {"claims": [{"claim_id": "C1", "text": "...", "type": "...", "confidence": "...", "verifiable": true, "is_hedged": false, "quote_spans": [{"start": 0, "end": 10}]}]}.`

// claimsPayload is the Extractor's decode target.
type claimsPayload struct {
	Claims []types.Claim `json:"claims"`
}

// Extractor splits a target's response text into atomic claims.
type Extractor struct {
	provider llm.Provider
	logger   *zap.Logger
}

// NewExtractor creates an Extractor backed by provider.
func NewExtractor(provider llm.Provider, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{provider: provider, logger: logger}
}

// Extract calls the agent adapter and returns the claims it found in
// responseText. Every returned claim's quote_spans are validated
// against len(responseText); a claim with an out-of-bounds span is
// dropped rather than trusted, and logged.
func (x *Extractor) Extract(ctx context.Context, responseText string) ([]types.Claim, error) {
	userInput, err := json.Marshal(struct {
		ResponseText string `json:"response_text"`
	}{ResponseText: responseText})
	if err != nil {
		return nil, fmt.Errorf("marshal extractor input: %w", err)
	}

	resp, err := x.provider.Generate(ctx, &types.ChatRequest{
		Messages: []types.Message{
			types.NewSystemMessage(extractorSystemPrompt),
			types.NewUserMessage(string(userInput)),
		},
		Options: types.ChatOptions{Temperature: 0},
	})
	if err != nil {
		return nil, err
	}

	raw, err := structured.ExtractJSON(resp.Content)
	if err != nil {
		return nil, err
	}
	payload, err := structured.DecodeInto[claimsPayload](raw)
	if err != nil {
		return nil, err
	}

	textLen := len(responseText)
	claims := make([]types.Claim, 0, len(payload.Claims))
	for _, claim := range payload.Claims {
		if !claim.WithinBounds(textLen) {
			x.logger.Warn("dropping claim with out-of-bounds quote span",
				zap.String("claim_id", claim.ClaimID))
			continue
		}
		claims = append(claims, claim)
	}
	return claims, nil
}
