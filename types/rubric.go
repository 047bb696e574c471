package types

import "strings"

// ScoringRubric maps SHIP's four tiers (score_1..score_4) onto their
// label, criteria text, and SHIP reference citation. FactCategorySuffixes
// parameterizes the "all of each category" coverage rule that Score 1
// applies: each key is a category name, each value the set of fact_id
// suffixes (e.g. "_MA", "_TM") belonging to that category. A rubric
// that doesn't partition required_points at all — the common case —
// leaves this nil, and the tier logic treats every required point as
// one undivided category.
type ScoringRubric struct {
	Tiers                map[string]RubricTier `json:"tiers"`
	FactCategorySuffixes map[string][]string   `json:"fact_category_suffixes,omitempty"`
}

// RubricTier is one entry of a ScoringRubric (e.g. "score_1").
type RubricTier struct {
	Label         string `json:"label"`
	Criteria      string `json:"criteria"`
	ShipReference string `json:"ship_reference,omitempty"`
}

// Categorize partitions requiredPoints by the suffix of each fact_id
// according to r.FactCategorySuffixes. Facts that match no configured
// suffix fall into a single "" category, and when the rubric has no
// FactCategorySuffixes at all, every point lands in that same ""
// category — i.e. one undivided category, matching the no-partition
// default.
func (r *ScoringRubric) Categorize(requiredPoints []string) map[string][]string {
	categories := map[string][]string{}
	for _, point := range requiredPoints {
		category := r.categoryFor(point)
		categories[category] = append(categories[category], point)
	}
	return categories
}

func (r *ScoringRubric) categoryFor(factID string) string {
	if r == nil {
		return ""
	}
	for category, suffixes := range r.FactCategorySuffixes {
		for _, suffix := range suffixes {
			if strings.HasSuffix(factID, suffix) {
				return category
			}
		}
	}
	return ""
}
