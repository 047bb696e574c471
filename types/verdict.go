package types

// VerdictLabel is a judge's ruling on a single claim against the
// answer key.
type VerdictLabel string

const (
	VerdictSupported        VerdictLabel = "SUPPORTED"
	VerdictContradicted     VerdictLabel = "CONTRADICTED"
	VerdictNotInKey         VerdictLabel = "NOT_IN_KEY"
	VerdictPartiallyCorrect VerdictLabel = "PARTIALLY_CORRECT"
)

// verdictTieBreakRank implements the safety-conservative adjudication
// tie-break: CONTRADICTED > PARTIALLY_CORRECT > SUPPORTED > NOT_IN_KEY.
// Higher ranks win ties.
var verdictTieBreakRank = map[VerdictLabel]int{
	VerdictContradicted:     3,
	VerdictPartiallyCorrect: 2,
	VerdictSupported:        1,
	VerdictNotInKey:         0,
}

// TieBreakRank returns l's priority in the adjudication tie-break
// ordering; higher wins.
func (l VerdictLabel) TieBreakRank() int {
	return verdictTieBreakRank[l]
}

// Verdict is a single judge instance's ruling on one claim. Verdicts
// are owned by exactly one judge (VerifierID) and never cross judge
// boundaries before adjudication.
type Verdict struct {
	ClaimID    string       `json:"claim_id"`
	VerifierID string       `json:"verifier_id,omitempty"`
	Label      VerdictLabel `json:"label"`
	Evidence   []string     `json:"evidence"`
	Severity   Severity     `json:"severity"`
	Notes      string       `json:"notes,omitempty"`
}

// AdjudicatedVerdict is produced by combining N judges' Verdicts on
// the same claim. Same wire shape as Verdict, tagged distinctly so
// call sites make clear which stage produced the value.
type AdjudicatedVerdict = Verdict
