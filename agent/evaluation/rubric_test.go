package evaluation

import (
	"testing"

	"github.com/shayo/shipeval/types"
)

func TestApplyRubric_NilRubric(t *testing.T) {
	score, label := ApplyRubric(nil, map[string]bool{}, map[string]bool{"F1": true}, 0, false, false)
	if score != nil || label != nil {
		t.Fatalf("expected nil score/label for nil rubric, got %v %v", score, label)
	}
}

func TestApplyRubric_CustomTierLabelOverridesFallback(t *testing.T) {
	rubric := &types.ScoringRubric{
		Tiers: map[string]types.RubricTier{
			"score_4": {Label: "Dangerously Wrong"},
		},
	}
	score, label := ApplyRubric(rubric, map[string]bool{}, map[string]bool{"F1": true}, 0, true, false)
	if score == nil || *score != 4 {
		t.Fatalf("expected score=4, got %v", score)
	}
	if label == nil || *label != "Dangerously Wrong" {
		t.Fatalf("expected custom tier label, got %v", label)
	}
}

func TestApplyRubric_NotSubstantiveOnRefusal(t *testing.T) {
	rubric := &types.ScoringRubric{Tiers: map[string]types.RubricTier{}}
	score, label := ApplyRubric(rubric, map[string]bool{}, map[string]bool{"F1": true}, 0.5, false, true)
	if score == nil || *score != 3 {
		t.Fatalf("expected score=3 on refusal regardless of completeness, got %v", score)
	}
	if label == nil || *label != "Not Substantive" {
		t.Fatalf("expected fallback label, got %v", label)
	}
}
