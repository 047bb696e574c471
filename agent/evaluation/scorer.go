package evaluation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shayo/shipeval/types"
)

// HarmCategory names a class of consequence a contradiction or
// omission could have caused a real beneficiary.
type HarmCategory string

const (
	HarmCoverage  HarmCategory = "coverage_harm"
	HarmFinancial HarmCategory = "financial_harm"
	HarmLegal     HarmCategory = "legal_harm"
)

var (
	coverageHarmWords  = []string{"network", "provider", "doctor", "hospital", "coverage"}
	financialHarmWords = []string{"cost", "premium", "out-of-pocket", "maximum", "pay"}
	legalHarmWords     = []string{"enroll", "deadline", "period", "must"}
)

func isSevere(s types.Severity) bool {
	return s == types.SeverityHigh || s == types.SeverityCritical
}

// Scorer computes a ScoreResult from adjudicated verdicts. It never
// calls an LLM: given the same claims, verdicts, answer key, and
// rubric, it always produces byte-identical output.
type Scorer struct{}

// NewScorer creates a Scorer.
func NewScorer() *Scorer { return &Scorer{} }

// Score implements the five numbered computation steps and the
// four-tier rubric precedence. hasRefusalPattern is a pure text-level
// signal (independent of completeness) computed by the caller; Score
// combines it with its own completeness_percentage to derive the
// refusal flag used both by the Score-3 tier rule and returned to the
// caller for TrialFlags.Refusal, so the threshold check happens in
// exactly one place.
func (s *Scorer) Score(claims []types.Claim, adjudicated []types.AdjudicatedVerdict, answerKey types.AnswerKey, rubric *types.ScoringRubric, hasRefusalPattern bool) (result *types.ScoreResult, refusal bool, err error) {
	verdictByClaimID := map[string]types.AdjudicatedVerdict{}
	for _, v := range adjudicated {
		verdictByClaimID[v.ClaimID] = v
	}

	// 1. covered_facts = union of evidence across SUPPORTED verdicts.
	coveredFacts := map[string]bool{}
	for _, v := range adjudicated {
		if v.Label == types.VerdictSupported {
			for _, fact := range v.Evidence {
				coveredFacts[fact] = true
			}
		}
	}

	// 2. missing_required_points = required_points \ covered_facts.
	requiredPoints := map[string]bool{}
	for _, p := range answerKey.RequiredPoints {
		requiredPoints[p] = true
	}
	var missingRequired []string
	for _, p := range answerKey.RequiredPoints {
		if !coveredFacts[p] {
			missingRequired = append(missingRequired, p)
		}
	}
	sort.Strings(missingRequired)

	// 3. completeness_percentage.
	coveredRequired := 0
	for p := range requiredPoints {
		if coveredFacts[p] {
			coveredRequired++
		}
	}
	completeness := 0.0
	if len(requiredPoints) > 0 {
		completeness = float64(coveredRequired) / float64(len(requiredPoints))
	} else {
		completeness = 1.0
	}

	// 4. accuracy_percentage over claims with a verdict label in
	// {SUPPORTED, CONTRADICTED, PARTIALLY_CORRECT}.
	supportedCount, verifiableCount := 0, 0
	for _, c := range claims {
		v, ok := verdictByClaimID[c.ClaimID]
		if !ok {
			continue
		}
		switch v.Label {
		case types.VerdictSupported:
			supportedCount++
			verifiableCount++
		case types.VerdictContradicted, types.VerdictPartiallyCorrect:
			verifiableCount++
		}
	}
	accuracy := 0.0
	if verifiableCount > 0 {
		accuracy = float64(supportedCount) / float64(verifiableCount)
	}

	var contradicted, partiallyCorrect, notInKey []types.AdjudicatedVerdict
	for _, v := range adjudicated {
		switch v.Label {
		case types.VerdictContradicted:
			contradicted = append(contradicted, v)
		case types.VerdictPartiallyCorrect:
			partiallyCorrect = append(partiallyCorrect, v)
		case types.VerdictNotInKey:
			notInKey = append(notInKey, v)
		}
	}

	// 5. has_critical_error.
	severeContradictions := 0
	hasCriticalError := len(contradicted) >= 2
	for _, v := range contradicted {
		if isSevere(v.Severity) {
			severeContradictions++
			hasCriticalError = true
		}
	}

	refusal = hasRefusalPattern && completeness < 0.20

	score, label := ApplyRubric(rubric, coveredFacts, requiredPoints, completeness, hasCriticalError, refusal)

	var errorCategories []string
	if len(missingRequired) > 0 {
		errorCategories = append(errorCategories, "omission")
	}
	if len(contradicted) > 0 {
		errorCategories = append(errorCategories, "contradiction")
	}
	if len(partiallyCorrect) > 0 {
		errorCategories = append(errorCategories, "misleading")
	}
	if len(notInKey) > 0 {
		errorCategories = append(errorCategories, "hallucination")
	}

	harmCategories := identifyHarm(contradicted, missingRequired, answerKey)

	justification := s.justify(score, label, completeness, coveredFacts, missingRequired, contradicted)

	return &types.ScoreResult{
		RubricScore:             score,
		RubricLabel:             label,
		CompletenessPercentage:  completeness,
		AccuracyPercentage:      accuracy,
		MissingRequiredPoints:   missingRequired,
		ErrorCategories:         errorCategories,
		HarmCategories:          harmCategories,
		Justification:           justification,
	}, refusal, nil
}

func identifyHarm(contradicted []types.AdjudicatedVerdict, missingRequired []string, answerKey types.AnswerKey) []string {
	factByID := map[string]types.CanonicalFact{}
	for _, f := range answerKey.CanonicalFacts {
		factByID[f.FactID] = f
	}

	seen := map[HarmCategory]bool{}
	for _, v := range contradicted {
		if !isSevere(v.Severity) {
			continue
		}
		for _, factID := range v.Evidence {
			for _, harm := range harmForStatement(factByID[factID].Statement) {
				seen[harm] = true
			}
		}
	}
	for _, factID := range missingRequired {
		fact, ok := factByID[factID]
		if !ok || !isSevere(fact.SeverityIfWrong) {
			continue
		}
		for _, harm := range harmForStatement(fact.Statement) {
			seen[harm] = true
		}
	}

	categories := make([]string, 0, len(seen))
	for h := range seen {
		categories = append(categories, string(h))
	}
	sort.Strings(categories)
	return categories
}

func harmForStatement(statement string) []HarmCategory {
	lower := strings.ToLower(statement)
	var harms []HarmCategory
	if containsAny(lower, coverageHarmWords) {
		harms = append(harms, HarmCoverage)
	}
	if containsAny(lower, financialHarmWords) {
		harms = append(harms, HarmFinancial)
	}
	if containsAny(lower, legalHarmWords) {
		harms = append(harms, HarmLegal)
	}
	return harms
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func (s *Scorer) justify(score *int, label *string, completeness float64, coveredFacts map[string]bool, missingRequired []string, contradicted []types.AdjudicatedVerdict) string {
	var parts []string
	if label != nil {
		parts = append(parts, fmt.Sprintf("Classified as %s (Score %d).", *label, *score))
	} else {
		parts = append(parts, "No rubric classification available.")
	}

	if len(coveredFacts) > 0 {
		parts = append(parts, fmt.Sprintf("Response covered %d facts (%.0f%% of required points).", len(coveredFacts), completeness*100))
	}

	if len(missingRequired) > 0 {
		parts = append(parts, fmt.Sprintf("Missing required facts: %s.", strings.Join(missingRequired, ", ")))
	}

	var severeIDs []string
	for _, v := range contradicted {
		if isSevere(v.Severity) {
			severeIDs = append(severeIDs, v.ClaimID)
		}
	}
	if len(severeIDs) > 0 {
		parts = append(parts, fmt.Sprintf("Contains %d high-severity error(s) in claims %s.", len(severeIDs), strings.Join(severeIDs, ", ")))
	}

	return strings.Join(parts, " ")
}
