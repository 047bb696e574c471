package evaluation

import (
	"testing"

	"github.com/shayo/shipeval/types"
)

func TestAdjudicator_Adjudicate_UnanimousSupported(t *testing.T) {
	claims := []types.Claim{{ClaimID: "C1"}}
	verdictsByJudge := map[string][]types.Verdict{
		"V1": {{ClaimID: "C1", Label: types.VerdictSupported, Evidence: []string{"F1"}}},
		"V2": {{ClaimID: "C1", Label: types.VerdictSupported, Evidence: []string{"F1"}}},
		"V3": {{ClaimID: "C1", Label: types.VerdictSupported, Evidence: []string{"F2"}}},
	}

	a := NewAdjudicator()
	result := a.Adjudicate(claims, verdictsByJudge)

	if len(result.AdjudicatedVerdicts) != 1 {
		t.Fatalf("expected 1 adjudicated verdict, got %d", len(result.AdjudicatedVerdicts))
	}
	v := result.AdjudicatedVerdicts[0]
	if v.Label != types.VerdictSupported {
		t.Fatalf("expected SUPPORTED, got %s", v.Label)
	}
	if len(v.Evidence) != 2 {
		t.Fatalf("expected evidence union of size 2, got %v", v.Evidence)
	}
	if result.DisagreementPercentage != 0 {
		t.Fatalf("expected 0 disagreement, got %v", result.DisagreementPercentage)
	}
	if result.NeedsManualReview {
		t.Fatalf("expected no manual review needed")
	}
}

func TestAdjudicator_Adjudicate_TieBreakFavorsContradicted(t *testing.T) {
	claims := []types.Claim{{ClaimID: "C1"}}
	verdictsByJudge := map[string][]types.Verdict{
		"V1": {{ClaimID: "C1", Label: types.VerdictSupported, Evidence: []string{"F1"}}},
		"V2": {{ClaimID: "C1", Label: types.VerdictContradicted, Evidence: []string{"F1"}, Severity: types.SeverityHigh}},
	}

	a := NewAdjudicator()
	result := a.Adjudicate(claims, verdictsByJudge)

	v := result.AdjudicatedVerdicts[0]
	if v.Label != types.VerdictContradicted {
		t.Fatalf("expected CONTRADICTED to win the tie, got %s", v.Label)
	}
	if v.Severity != types.SeverityHigh {
		t.Fatalf("expected severity=high, got %s", v.Severity)
	}
	if !result.NeedsManualReview {
		t.Fatalf("expected manual review when a claim has both SUPPORTED and CONTRADICTED votes")
	}
}

func TestAdjudicator_Adjudicate_MinorityContradictionClearsSeverity(t *testing.T) {
	claims := []types.Claim{{ClaimID: "C1"}}
	verdictsByJudge := map[string][]types.Verdict{
		"V1": {{ClaimID: "C1", Label: types.VerdictSupported, Evidence: []string{"F1"}}},
		"V2": {{ClaimID: "C1", Label: types.VerdictSupported, Evidence: []string{"F1"}}},
		"V3": {{ClaimID: "C1", Label: types.VerdictContradicted, Evidence: []string{"F1"}, Severity: types.SeverityHigh}},
	}

	a := NewAdjudicator()
	result := a.Adjudicate(claims, verdictsByJudge)

	v := result.AdjudicatedVerdicts[0]
	if v.Label != types.VerdictSupported {
		t.Fatalf("expected SUPPORTED to win 2-1, got %s", v.Label)
	}
	if v.Severity != types.SeverityNone {
		t.Fatalf("expected severity=none on a non-CONTRADICTED adjudicated verdict, got %s", v.Severity)
	}
}

func TestAdjudicator_Adjudicate_CriticalContradictionForcesReview(t *testing.T) {
	claims := []types.Claim{{ClaimID: "C1"}, {ClaimID: "C2"}}
	verdictsByJudge := map[string][]types.Verdict{
		"V1": {
			{ClaimID: "C1", Label: types.VerdictContradicted, Evidence: []string{"F1"}, Severity: types.SeverityCritical},
			{ClaimID: "C2", Label: types.VerdictSupported, Evidence: []string{"F2"}},
		},
	}

	a := NewAdjudicator()
	result := a.Adjudicate(claims, verdictsByJudge)

	if !result.NeedsManualReview {
		t.Fatalf("expected manual review when any critical-severity contradiction is present")
	}
}

func TestAdjudicator_Adjudicate_DisagreementAboveThreshold(t *testing.T) {
	claims := []types.Claim{{ClaimID: "C1"}, {ClaimID: "C2"}, {ClaimID: "C3"}}
	verdictsByJudge := map[string][]types.Verdict{
		"V1": {
			{ClaimID: "C1", Label: types.VerdictSupported, Evidence: []string{"F1"}},
			{ClaimID: "C2", Label: types.VerdictSupported, Evidence: []string{"F2"}},
			{ClaimID: "C3", Label: types.VerdictPartiallyCorrect, Evidence: []string{"F3"}},
		},
		"V2": {
			{ClaimID: "C1", Label: types.VerdictSupported, Evidence: []string{"F1"}},
			{ClaimID: "C2", Label: types.VerdictNotInKey},
			{ClaimID: "C3", Label: types.VerdictSupported, Evidence: []string{"F3"}},
		},
	}

	a := NewAdjudicator()
	result := a.Adjudicate(claims, verdictsByJudge)

	if result.DisagreementPercentage <= 0.20 {
		t.Fatalf("expected disagreement > 0.20, got %v", result.DisagreementPercentage)
	}
	if !result.NeedsManualReview {
		t.Fatalf("expected manual review above the disagreement threshold")
	}
}
