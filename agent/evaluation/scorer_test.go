package evaluation

import (
	"testing"

	"github.com/shayo/shipeval/types"
)

func sampleAnswerKey() types.AnswerKey {
	return types.AnswerKey{
		CanonicalFacts: []types.CanonicalFact{
			{FactID: "F1_MA", Statement: "Medicare Advantage plans use provider networks.", SeverityIfWrong: types.SeverityHigh},
			{FactID: "F2_MA", Statement: "Medicare Advantage plans have an out-of-pocket maximum.", SeverityIfWrong: types.SeverityMedium},
			{FactID: "F1_TM", Statement: "Original Medicare lets you see any provider that accepts Medicare.", SeverityIfWrong: types.SeverityMedium},
		},
		RequiredPoints: []string{"F1_MA", "F2_MA", "F1_TM"},
	}
}

func sampleRubric() *types.ScoringRubric {
	return &types.ScoringRubric{
		Tiers: map[string]types.RubricTier{
			"score_1": {Label: "Accurate and Complete"},
			"score_2": {Label: "Substantive but Incomplete"},
			"score_3": {Label: "Not Substantive"},
			"score_4": {Label: "Incorrect"},
		},
		FactCategorySuffixes: map[string][]string{
			"MA": {"_MA"},
			"TM": {"_TM"},
		},
	}
}

func TestScorer_Score_AccurateAndComplete(t *testing.T) {
	claims := []types.Claim{
		{ClaimID: "C1", Verifiable: true},
		{ClaimID: "C2", Verifiable: true},
		{ClaimID: "C3", Verifiable: true},
	}
	adjudicated := []types.AdjudicatedVerdict{
		{ClaimID: "C1", Label: types.VerdictSupported, Evidence: []string{"F1_MA"}, Severity: types.SeverityNone},
		{ClaimID: "C2", Label: types.VerdictSupported, Evidence: []string{"F2_MA"}, Severity: types.SeverityNone},
		{ClaimID: "C3", Label: types.VerdictSupported, Evidence: []string{"F1_TM"}, Severity: types.SeverityNone},
	}

	s := NewScorer()
	result, refusal, err := s.Score(claims, adjudicated, sampleAnswerKey(), sampleRubric(), false)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if refusal {
		t.Fatalf("expected refusal=false")
	}
	if result.RubricScore == nil || *result.RubricScore != 1 {
		t.Fatalf("expected rubric_score=1, got %v", result.RubricScore)
	}
	if result.CompletenessPercentage != 1.0 {
		t.Fatalf("expected completeness=1.0, got %v", result.CompletenessPercentage)
	}
	if result.AccuracyPercentage != 1.0 {
		t.Fatalf("expected accuracy=1.0, got %v", result.AccuracyPercentage)
	}
	if len(result.MissingRequiredPoints) != 0 {
		t.Fatalf("expected no missing points, got %v", result.MissingRequiredPoints)
	}
}

func TestScorer_Score_IncompleteCoverage(t *testing.T) {
	claims := []types.Claim{{ClaimID: "C1", Verifiable: true}}
	adjudicated := []types.AdjudicatedVerdict{
		{ClaimID: "C1", Label: types.VerdictSupported, Evidence: []string{"F1_MA"}},
	}

	s := NewScorer()
	result, _, err := s.Score(claims, adjudicated, sampleAnswerKey(), sampleRubric(), false)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if result.RubricScore == nil || *result.RubricScore != 2 {
		t.Fatalf("expected rubric_score=2, got %v", result.RubricScore)
	}
	if len(result.MissingRequiredPoints) != 2 {
		t.Fatalf("expected 2 missing points, got %v", result.MissingRequiredPoints)
	}
}

func TestScorer_Score_CriticalErrorForcesIncorrect(t *testing.T) {
	claims := []types.Claim{{ClaimID: "C1", Verifiable: true}}
	adjudicated := []types.AdjudicatedVerdict{
		{ClaimID: "C1", Label: types.VerdictContradicted, Evidence: []string{"F1_MA"}, Severity: types.SeverityCritical},
	}

	s := NewScorer()
	result, _, err := s.Score(claims, adjudicated, sampleAnswerKey(), sampleRubric(), false)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if result.RubricScore == nil || *result.RubricScore != 4 {
		t.Fatalf("expected rubric_score=4, got %v", result.RubricScore)
	}
	if len(result.ErrorCategories) == 0 {
		t.Fatalf("expected error categories to include contradiction")
	}
	foundCoverageHarm := false
	for _, h := range result.HarmCategories {
		if h == string(HarmCoverage) {
			foundCoverageHarm = true
		}
	}
	if !foundCoverageHarm {
		t.Fatalf("expected coverage_harm from network-related critical contradiction, got %v", result.HarmCategories)
	}
}

func TestScorer_Score_NotSubstantiveWithNoRubric(t *testing.T) {
	s := NewScorer()
	result, _, err := s.Score(nil, nil, sampleAnswerKey(), nil, false)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if result.RubricScore != nil || result.RubricLabel != nil {
		t.Fatalf("expected nil tier with no rubric, got score=%v label=%v", result.RubricScore, result.RubricLabel)
	}
	if result.CompletenessPercentage != 0 {
		t.Fatalf("expected completeness=0, got %v", result.CompletenessPercentage)
	}
}

func TestScorer_Score_RefusalFlag(t *testing.T) {
	s := NewScorer()
	_, refusal, err := s.Score(nil, nil, types.AnswerKey{RequiredPoints: []string{"F1"}}, sampleRubric(), true)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !refusal {
		t.Fatalf("expected refusal=true when pattern present and completeness below 0.20")
	}
}
