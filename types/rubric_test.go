package types

import (
	"reflect"
	"sort"
	"testing"
)

func TestScoringRubric_Categorize_NoPartition(t *testing.T) {
	t.Parallel()

	var rubric *ScoringRubric
	got := rubric.Categorize([]string{"F1", "F2"})
	if len(got) != 1 || len(got[""]) != 2 {
		t.Fatalf("expected one undivided category with 2 points, got %v", got)
	}
}

func TestScoringRubric_Categorize_WithSuffixes(t *testing.T) {
	t.Parallel()

	rubric := &ScoringRubric{
		FactCategorySuffixes: map[string][]string{
			"medicare_advantage": {"_MA"},
			"traditional":        {"_TM"},
		},
	}
	got := rubric.Categorize([]string{"F1_MA", "F2_TM", "F3_MA"})
	sort.Strings(got["medicare_advantage"])
	sort.Strings(got["traditional"])
	if !reflect.DeepEqual(got["medicare_advantage"], []string{"F1_MA", "F3_MA"}) {
		t.Fatalf("unexpected medicare_advantage category: %v", got["medicare_advantage"])
	}
	if !reflect.DeepEqual(got["traditional"], []string{"F2_TM"}) {
		t.Fatalf("unexpected traditional category: %v", got["traditional"])
	}
}
