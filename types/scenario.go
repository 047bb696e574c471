package types

import (
	"strings"
	"time"
)

// Scenario is the immutable input to a trial: a persona, the plan(s)
// they're enrolled in or considering, the scripted conversation, and
// the answer key/rubric used to judge the target's responses.
type Scenario struct {
	ScenarioID       string            `json:"scenario_id"`
	Title            string            `json:"title"`
	EffectiveDate    time.Time         `json:"effective_date"`
	Persona          Persona           `json:"persona"`
	PlanInformation  []PlanInformation `json:"plan_information,omitempty"`
	ScriptedTurns    []ScriptedTurn    `json:"scripted_turns"`
	AnswerKey        AnswerKey         `json:"answer_key"`
	ScoringRubric    *ScoringRubric    `json:"scoring_rubric,omitempty"`
	VariationKnobs   map[string]any    `json:"variation_knobs,omitempty"`
}

// Persona describes the mystery shopper the target is role-playing
// for. PrimaryCarePhysician, when set, resolves the [doctor name] /
// {doctor_name} placeholder in scripted turns.
type Persona struct {
	Age                    int    `json:"age"`
	Location               string `json:"location"`
	Coverage               string `json:"coverage"`
	Situation              string `json:"situation"`
	PrimaryCarePhysician   string `json:"primary_care_physician,omitempty"`
}

// PlanInformation describes one plan the persona is enrolled in, or
// is asking about. PlanName resolves the [plan name]/{plan_name}
// placeholder; ServiceArea resolves [service area]/{service_area}.
type PlanInformation struct {
	PlanName    string         `json:"plan_name"`
	PlanType    string         `json:"plan_type"`
	ServiceArea string         `json:"service_area,omitempty"`
	Premium     float64        `json:"premium,omitempty"`
	Copays      map[string]any `json:"copays,omitempty"`
	OOPMax      float64        `json:"oop_max,omitempty"`
	Formulary   []DrugCoverage `json:"formulary,omitempty"`
}

// DrugCoverage is one formulary entry within a PlanInformation block.
type DrugCoverage struct {
	DrugName string `json:"drug_name"`
	Tier     int    `json:"tier,omitempty"`
	Covered  bool   `json:"covered"`
	Notes    string `json:"notes,omitempty"`
}

// ScriptedTurn is one line of the shopper's scripted dialogue. The
// Questioner emits these verbatim (after placeholder substitution) in
// deterministic mode.
type ScriptedTurn struct {
	TurnID         string   `json:"turn_id"`
	QuestionNumber *int     `json:"question_number,omitempty"`
	UserMessage    string   `json:"user_message"`
	ExpectedTopics []string `json:"expected_topics,omitempty"`
}

// AnswerKey is the ground truth a Verifier judges claims against. The
// target never sees this.
type AnswerKey struct {
	CanonicalFacts      []CanonicalFact `json:"canonical_facts"`
	RequiredPoints      []string        `json:"required_points"`
	DisallowedClaims    []string        `json:"disallowed_claims,omitempty"`
	AcceptableReferrals []string        `json:"acceptable_referrals,omitempty"`
}

// Severity grades how bad it is for a claim to contradict a
// CanonicalFact.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// severityRank orders Severity for max() comparisons; higher is worse.
var severityRank = map[Severity]int{
	SeverityNone:     0,
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// MaxSeverity returns whichever of a, b ranks worse.
func MaxSeverity(a, b Severity) Severity {
	if severityRank[b] > severityRank[a] {
		return b
	}
	return a
}

// CanonicalFact is one ground-truth assertion a Verifier can cite as
// evidence. FactID is scenario-scoped (e.g. "F1_MA", "F7_TM").
type CanonicalFact struct {
	FactID           string   `json:"fact_id"`
	Statement        string   `json:"statement"`
	Rationale        string   `json:"rationale,omitempty"`
	Source           string   `json:"source,omitempty"`
	SeverityIfWrong  Severity `json:"severity_if_wrong"`
}

// SubstitutePlaceholders replaces [plan name]/{plan_name},
// [doctor name]/{doctor_name}, and [service area]/{service_area} in
// msg using the scenario's persona and (first) plan information
// block. A placeholder whose source field is empty is left intact —
// this is not an error, just unresolved, and callers should log it.
func (s Scenario) SubstitutePlaceholders(msg string) string {
	planName, serviceArea := "", ""
	if len(s.PlanInformation) > 0 {
		planName = s.PlanInformation[0].PlanName
		serviceArea = s.PlanInformation[0].ServiceArea
	}
	return substitutePlaceholderSet(msg, map[string]string{
		"plan name":    planName,
		"plan_name":    planName,
		"doctor name":  s.Persona.PrimaryCarePhysician,
		"doctor_name":  s.Persona.PrimaryCarePhysician,
		"service area": serviceArea,
		"service_area": serviceArea,
	})
}

func substitutePlaceholderSet(msg string, values map[string]string) string {
	for key, value := range values {
		if value == "" {
			continue
		}
		msg = strings.ReplaceAll(msg, "["+key+"]", value)
		msg = strings.ReplaceAll(msg, "{"+key+"}", value)
	}
	return msg
}
