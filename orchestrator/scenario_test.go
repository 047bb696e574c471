package orchestrator

import (
	"testing"

	"github.com/shayo/shipeval/types"
)

func validScenario() *types.Scenario {
	return &types.Scenario{
		ScenarioID: "S1",
		Title:      "A scenario",
		ScriptedTurns: []types.ScriptedTurn{
			{TurnID: "Q1", UserMessage: "hello"},
		},
		AnswerKey: types.AnswerKey{
			CanonicalFacts: []types.CanonicalFact{
				{FactID: "F1", Statement: "fact one"},
			},
			RequiredPoints: []string{"F1"},
		},
	}
}

func TestValidateScenario_Valid(t *testing.T) {
	if err := ValidateScenario(validScenario()); err != nil {
		t.Fatalf("expected valid scenario, got %v", err)
	}
}

func TestValidateScenario_UnknownRequiredPoint(t *testing.T) {
	s := validScenario()
	s.AnswerKey.RequiredPoints = []string{"F1", "F99"}
	if err := ValidateScenario(s); err == nil {
		t.Fatalf("expected error for required_point referencing unknown fact_id")
	}
}

func TestValidateScenario_MissingScenarioID(t *testing.T) {
	s := validScenario()
	s.ScenarioID = ""
	if err := ValidateScenario(s); err == nil {
		t.Fatalf("expected error for missing scenario_id")
	}
}

func TestValidateScenario_DuplicateTurnID(t *testing.T) {
	s := validScenario()
	s.ScriptedTurns = append(s.ScriptedTurns, types.ScriptedTurn{TurnID: "Q1", UserMessage: "again"})
	if err := ValidateScenario(s); err == nil {
		t.Fatalf("expected error for duplicate turn_id")
	}
}

func TestValidateScenario_NoCanonicalFacts(t *testing.T) {
	s := validScenario()
	s.AnswerKey.CanonicalFacts = nil
	s.AnswerKey.RequiredPoints = nil
	if err := ValidateScenario(s); err == nil {
		t.Fatalf("expected error for empty canonical_facts")
	}
}
