package evaluation

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/shayo/shipeval/llm/providers/mockagent"
	"github.com/shayo/shipeval/types"
)

func TestVerifier_Verify_SupportedClaim(t *testing.T) {
	claims := []types.Claim{
		{ClaimID: "C1", Text: "Part A covers hospital stays", Type: types.ClaimTypeFactual, Verifiable: true},
	}
	answerKey := types.AnswerKey{CanonicalFacts: []types.CanonicalFact{
		{FactID: "F2", Statement: "Part A covers inpatient hospital stays.", SeverityIfWrong: types.SeverityHigh},
	}}

	v := NewVerifier("V1", mockagent.New(), zap.NewNop())
	verdicts, err := v.Verify(context.Background(), claims, answerKey)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(verdicts) != 1 {
		t.Fatalf("expected 1 verdict, got %d", len(verdicts))
	}
	if verdicts[0].Label != types.VerdictSupported {
		t.Fatalf("expected SUPPORTED, got %s", verdicts[0].Label)
	}
	if verdicts[0].VerifierID != "V1" {
		t.Fatalf("expected VerifierID stamped, got %q", verdicts[0].VerifierID)
	}
}

func TestVerifier_Verify_AcceptableReferralShortCircuit(t *testing.T) {
	claims := []types.Claim{
		{ClaimID: "C1", Text: "You should contact Medicare.gov for more details", Type: types.ClaimTypeReferral, Verifiable: true},
	}
	answerKey := types.AnswerKey{
		CanonicalFacts:      []types.CanonicalFact{},
		AcceptableReferrals: []string{"Medicare.gov"},
	}

	v := NewVerifier("V1", mockagent.New(), zap.NewNop())
	verdicts, err := v.Verify(context.Background(), claims, answerKey)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(verdicts) != 1 {
		t.Fatalf("expected 1 verdict, got %d", len(verdicts))
	}
	if verdicts[0].Label != types.VerdictSupported {
		t.Fatalf("expected SUPPORTED for acceptable referral, got %s", verdicts[0].Label)
	}
	if len(verdicts[0].Evidence) != 1 || verdicts[0].Evidence[0] != "acceptable_referrals" {
		t.Fatalf("expected acceptable_referrals evidence, got %v", verdicts[0].Evidence)
	}
}

func TestVerifier_Verify_EmptyClaims(t *testing.T) {
	v := NewVerifier("V1", mockagent.New(), zap.NewNop())
	verdicts, err := v.Verify(context.Background(), nil, types.AnswerKey{})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if verdicts != nil {
		t.Fatalf("expected nil verdicts for empty claims, got %v", verdicts)
	}
}
