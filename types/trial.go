package types

import "time"

// ScoreResult is the Scoring Engine's output for one trial.
// RubricScore/RubricLabel are nil when the scenario supplies no
// ScoringRubric — such trials are "incomplete" for baseline-comparison
// reporting but are still persisted.
type ScoreResult struct {
	RubricScore            *int     `json:"rubric_score"`
	RubricLabel            *string  `json:"rubric_label"`
	CompletenessPercentage float64  `json:"completeness_percentage"`
	AccuracyPercentage     float64  `json:"accuracy_percentage"`
	MissingRequiredPoints  []string `json:"missing_required_points"`
	ErrorCategories        []string `json:"error_categories"`
	HarmCategories         []string `json:"harm_categories"`
	Justification          string   `json:"justification"`
}

// ConversationTurn is one exchange in the transcript, in role order.
type ConversationTurn struct {
	TurnID    string    `json:"turn_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// TargetInfo identifies the model under evaluation.
type TargetInfo struct {
	ModelName    string `json:"model_name"`
	Provider     string `json:"provider"`
	ModelVersion string `json:"model_version,omitempty"`
}

// AgentInfo identifies the model backing the pipeline agents
// (Extractor/Verifier/etc.) for one trial.
type AgentInfo struct {
	ModelName string `json:"model_name"`
	Provider  string `json:"provider"`
}

// TrialFlags are deterministic rule-based signals computed from the
// response text and claims, independent of the rubric score.
type TrialFlags struct {
	Refusal                     bool `json:"refusal"`
	HallucinatedSpecifics       bool `json:"hallucinated_specifics"`
	AskedClarifyingQuestions    bool `json:"asked_clarifying_questions"`
	ReferencedExternalResources bool `json:"referenced_external_resources"`
}

// TrialMetadata carries run bookkeeping that isn't part of the
// substantive result: the seed used (if any), how many judges ran,
// their disagreement rate, timestamps, and the prompt-hash ledger
// used to detect prompt drift across runs.
type TrialMetadata struct {
	Seed                 *int64            `json:"seed,omitempty"`
	JudgeCount           int               `json:"judge_count"`
	DisagreementPct      float64           `json:"disagreement_pct"`
	StartedAt            time.Time         `json:"started_at"`
	CompletedAt          time.Time         `json:"completed_at"`
	PromptHashes         map[string]string `json:"prompt_hashes,omitempty"`
	Aborted              bool              `json:"aborted,omitempty"`
	AbortReason          string            `json:"abort_reason,omitempty"`
}

// TrialResult is the top-level, write-once artifact produced by one
// orchestrator run. Once written it is never mutated; re-runs mint a
// new TrialID and a new run directory.
type TrialResult struct {
	TrialID              string              `json:"trial_id"`
	ScenarioID            string              `json:"scenario_id"`
	Target                TargetInfo          `json:"target"`
	Agent                 AgentInfo           `json:"agent"`
	Conversation           []ConversationTurn  `json:"conversation"`
	Claims                 []Claim             `json:"claims"`
	VerdictsByJudge        map[string][]Verdict `json:"verdicts_by_judge"`
	AdjudicatedVerdicts    []AdjudicatedVerdict `json:"adjudicated_verdicts"`
	FinalScores            *ScoreResult        `json:"final_scores"`
	Flags                  TrialFlags          `json:"flags"`
	Metadata               TrialMetadata       `json:"metadata"`
}
