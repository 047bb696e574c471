package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/shayo/shipeval/agent/structured"
	"github.com/shayo/shipeval/llm"
	"github.com/shayo/shipeval/types"
)

const verifierSystemPrompt = `You are verifying claims made by a Medicare guidance assistant against a fixed answer key. Judge each claim ONLY against the canonical_facts provided - never use outside knowledge of Medicare rules.

Label taxonomy:
- SUPPORTED: the claim is entailed by, or a close paraphrase of, one or more canonical facts. Cite them in evidence.
- CONTRADICTED: the claim conflicts with one or more canonical facts. Cite them in evidence and set severity to the highest severity_if_wrong among the facts it contradicts.
- PARTIALLY_CORRECT: the claim aligns with a fact but omits required nuance. Cite the partial-match fact(s).
- NOT_IN_KEY: the claim is neither supported nor contradicted by anything in canonical_facts.

Every verdict except NOT_IN_KEY must cite at least one fact_id in evidence.

Respond with a JSON object: {"verdicts": [{"claim_id": "...", "label": "...", "evidence": ["F1_MA"], "severity": "none", "notes": "..."}]}.`

type verdictsPayload struct {
	Verdicts []types.Verdict `json:"verdicts"`
}

type verifierInput struct {
	Claims    []types.Claim   `json:"claims"`
	AnswerKey types.AnswerKey `json:"answer_key"`
}

// Verifier judges claims against a scenario's answer key. Each
// Verifier instance is assigned a stable VerifierID (V1..VN) used in
// persistence and in the adjudicator's per-judge bookkeeping. N
// Verifier instances run independently and never observe each
// other's verdicts before adjudication.
type Verifier struct {
	VerifierID string
	provider   llm.Provider
	logger     *zap.Logger
}

// NewVerifier creates a Verifier identified by verifierID (e.g. "V1").
func NewVerifier(verifierID string, provider llm.Provider, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{VerifierID: verifierID, provider: provider, logger: logger}
}

// Verify calls the agent adapter and returns the verdicts it produced
// (it does not check that they cover every claim), normalized so that:
//   - every non-NOT_IN_KEY verdict cites at least one fact_id (verdicts
//     that don't are demoted to NOT_IN_KEY rather than trusted as-is),
//   - referral claims matching answer_key.acceptable_referrals are
//     forced to SUPPORTED with evidence ["acceptable_referrals"],
//   - VerifierID is stamped onto every verdict.
func (v *Verifier) Verify(ctx context.Context, claims []types.Claim, answerKey types.AnswerKey) ([]types.Verdict, error) {
	if len(claims) == 0 {
		return nil, nil
	}

	input, err := json.Marshal(verifierInput{Claims: claims, AnswerKey: answerKey})
	if err != nil {
		return nil, fmt.Errorf("marshal verifier input: %w", err)
	}

	resp, err := v.provider.Generate(ctx, &types.ChatRequest{
		Messages: []types.Message{
			types.NewSystemMessage(verifierSystemPrompt),
			types.NewUserMessage(string(input)),
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
	payload, err := structured.DecodeInto[verdictsPayload](raw)
	if err != nil {
		return nil, err
	}

	byClaimID := map[string]types.Claim{}
	for _, c := range claims {
		byClaimID[c.ClaimID] = c
	}
	acceptable := map[string]bool{}
	for _, r := range answerKey.AcceptableReferrals {
		acceptable[r] = true
	}

	verdicts := make([]types.Verdict, 0, len(payload.Verdicts))
	for _, verdict := range payload.Verdicts {
		verdict.VerifierID = v.VerifierID

		if claim, ok := byClaimID[verdict.ClaimID]; ok && claim.Type == types.ClaimTypeReferral && referralMatches(claim.Text, acceptable) {
			verdict.Label = types.VerdictSupported
			verdict.Evidence = []string{"acceptable_referrals"}
			verdict.Severity = types.SeverityNone
		}

		if verdict.Label != types.VerdictNotInKey && len(verdict.Evidence) == 0 {
			v.logger.Warn("demoting verdict with no cited evidence to NOT_IN_KEY",
				zap.String("claim_id", verdict.ClaimID), zap.String("original_label", string(verdict.Label)))
			verdict.Label = types.VerdictNotInKey
			verdict.Severity = types.SeverityNone
		}
		if verdict.Label != types.VerdictContradicted {
			verdict.Severity = types.SeverityNone
		}

		verdicts = append(verdicts, verdict)
	}
	return verdicts, nil
}

func referralMatches(claimText string, acceptable map[string]bool) bool {
	for pattern := range acceptable {
		if pattern != "" && strings.Contains(claimText, pattern) {
			return true
		}
	}
	return false
}
