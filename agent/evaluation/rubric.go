package evaluation

import "github.com/shayo/shipeval/types"

// ApplyRubric evaluates the SHIP four-tier rubric in strict order
// (first match wins) and returns the matched score and label, or
// (nil, nil) if rubric is nil - a scenario with no scoring_rubric
// still gets percentages and missing points, just no tier.
//
// requiredPoints and coveredFacts are fact_id sets. hasCriticalError
// and refusal are precomputed by the caller (the Scorer), since they
// depend on verdict severities and the response flags respectively,
// not on the rubric itself.
func ApplyRubric(rubric *types.ScoringRubric, coveredFacts, requiredPoints map[string]bool, completenessPercentage float64, hasCriticalError, refusal bool) (score *int, label *string) {
	if rubric == nil {
		return nil, nil
	}

	if hasCriticalError {
		return tierResult(rubric, 4, "Incorrect")
	}

	coveredCategories := rubric.Categorize(setKeys(coveredFacts))
	requiredCategories := rubric.Categorize(setKeys(requiredPoints))

	if categoriesFullyCovered(requiredCategories, coveredCategories) {
		return tierResult(rubric, 1, "Accurate and Complete")
	}

	if refusal || (completenessPercentage < 0.30 && !anyCategoryHasCoverage(coveredCategories)) {
		return tierResult(rubric, 3, "Not Substantive")
	}

	return tierResult(rubric, 2, "Substantive but Incomplete")
}

func tierResult(rubric *types.ScoringRubric, score int, fallbackLabel string) (*int, *string) {
	label := fallbackLabel
	if tier, ok := rubric.Tiers[tierKey(score)]; ok && tier.Label != "" {
		label = tier.Label
	}
	return &score, &label
}

func tierKey(score int) string {
	switch score {
	case 1:
		return "score_1"
	case 2:
		return "score_2"
	case 3:
		return "score_3"
	case 4:
		return "score_4"
	default:
		return ""
	}
}

func categoriesFullyCovered(required, covered map[string][]string) bool {
	for category, points := range required {
		have := toSet(covered[category])
		for _, point := range points {
			if !have[point] {
				return false
			}
		}
	}
	return true
}

func anyCategoryHasCoverage(covered map[string][]string) bool {
	for _, points := range covered {
		if len(points) > 0 {
			return true
		}
	}
	return false
}

func setKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	return keys
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
