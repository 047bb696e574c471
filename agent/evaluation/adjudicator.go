package evaluation

import (
	"sort"

	"github.com/shayo/shipeval/types"
)

// AdjudicationResult is the Adjudicator's output for a trial: the
// resolved per-claim verdicts plus the disagreement metrics used both
// for the ScoreResult's inputs and for manual-review triage.
type AdjudicationResult struct {
	AdjudicatedVerdicts    []types.AdjudicatedVerdict `json:"adjudicated_verdicts"`
	DisagreementPercentage float64                    `json:"disagreement_percentage"`
	NeedsManualReview      bool                        `json:"needs_manual_review"`
}

// Adjudicator resolves N independent verifier verdicts per claim into
// a single adjudicated verdict. It is pure and rule-based: no LLM
// call, no randomness, no dependence on verifier order.
type Adjudicator struct{}

// NewAdjudicator creates an Adjudicator.
func NewAdjudicator() *Adjudicator { return &Adjudicator{} }

// Adjudicate implements spec's per-claim algorithm: majority vote with
// a safety-conservative tie-break (CONTRADICTED > PARTIALLY_CORRECT >
// SUPPORTED > NOT_IN_KEY), severity-max escalation over CONTRADICTED
// votes, and evidence-union aggregation from verdicts agreeing with
// the winning label. verdictsByJudge is keyed by verifier_id; the
// claims slice fixes the iteration order (and thus output order),
// since map iteration over verifier IDs is not itself ordered.
func (a *Adjudicator) Adjudicate(claims []types.Claim, verdictsByJudge map[string][]types.Verdict) AdjudicationResult {
	byClaimAndJudge := map[string]map[string]types.Verdict{}
	for judgeID, verdicts := range verdictsByJudge {
		for _, v := range verdicts {
			if byClaimAndJudge[v.ClaimID] == nil {
				byClaimAndJudge[v.ClaimID] = map[string]types.Verdict{}
			}
			byClaimAndJudge[v.ClaimID][judgeID] = v
		}
	}

	var adjudicated []types.AdjudicatedVerdict
	disagreements := 0
	hasSupportedAndContradicted := false
	hasCriticalContradiction := false

	for _, claim := range claims {
		votes := byClaimAndJudge[claim.ClaimID]
		if len(votes) == 0 {
			continue
		}

		voteList := make([]types.Verdict, 0, len(votes))
		for _, v := range votes {
			voteList = append(voteList, v)
		}

		majorityLabel := majorityVote(voteList)
		severity := types.SeverityNone
		evidence := map[string]bool{}
		sawSupported, sawContradicted := false, false

		for _, v := range voteList {
			if v.Label == types.VerdictSupported {
				sawSupported = true
			}
			if v.Label == types.VerdictContradicted {
				sawContradicted = true
				severity = types.MaxSeverity(severity, v.Severity)
				if v.Severity == types.SeverityCritical {
					hasCriticalContradiction = true
				}
			}
			if v.Label == majorityLabel {
				for _, fact := range v.Evidence {
					evidence[fact] = true
				}
			}
		}
		if sawSupported && sawContradicted {
			hasSupportedAndContradicted = true
		}

		if !allAgree(voteList) {
			disagreements++
		}

		if majorityLabel != types.VerdictContradicted {
			severity = types.SeverityNone
		}

		adjudicated = append(adjudicated, types.AdjudicatedVerdict{
			ClaimID:  claim.ClaimID,
			Label:    majorityLabel,
			Evidence: setToSortedSlice(evidence),
			Severity: severity,
		})
	}

	disagreementPct := 0.0
	if len(claims) > 0 {
		disagreementPct = float64(disagreements) / float64(len(claims))
	}

	needsManualReview := disagreementPct > 0.20 || hasSupportedAndContradicted || hasCriticalContradiction

	return AdjudicationResult{
		AdjudicatedVerdicts:    adjudicated,
		DisagreementPercentage: disagreementPct,
		NeedsManualReview:      needsManualReview,
	}
}

func majorityVote(votes []types.Verdict) types.VerdictLabel {
	counts := map[types.VerdictLabel]int{}
	for _, v := range votes {
		counts[v.Label]++
	}

	var best types.VerdictLabel
	bestCount := -1
	for label, count := range counts {
		if count > bestCount || (count == bestCount && label.TieBreakRank() > best.TieBreakRank()) {
			best = label
			bestCount = count
		}
	}
	return best
}

func allAgree(votes []types.Verdict) bool {
	if len(votes) == 0 {
		return true
	}
	first := votes[0].Label
	for _, v := range votes[1:] {
		if v.Label != first {
			return false
		}
	}
	return true
}

func setToSortedSlice(set map[string]bool) []string {
	items := setKeys(set)
	sort.Strings(items)
	return items
}
