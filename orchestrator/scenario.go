package orchestrator

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shayo/shipeval/types"
)

// LoadScenario reads and validates a scenario file at path. A
// scenario that fails validation never reaches runTrial - this is a
// Configuration-class error, caught at startup, not mid-run.
func LoadScenario(path string) (*types.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.NewError(types.ErrConfiguration, fmt.Sprintf("read scenario file %s", path)).WithCause(err)
	}

	var scenario types.Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return nil, types.NewError(types.ErrConfiguration, fmt.Sprintf("parse scenario file %s", path)).WithCause(err)
	}

	if err := ValidateScenario(&scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// ValidateScenario checks the required-fields and referential-integrity
// rules from the scenario file schema: scenario_id, title, at least one
// scripted_turn and at least one answer_key canonical_fact are required
// (persona is not checked), every required_point must name a fact_id
// that actually appears in canonical_facts, and turn_ids must be
// present and unique.
func ValidateScenario(scenario *types.Scenario) error {
	var problems []string

	if scenario.ScenarioID == "" {
		problems = append(problems, "scenario_id is required")
	}
	if scenario.Title == "" {
		problems = append(problems, "title is required")
	}
	if len(scenario.ScriptedTurns) == 0 {
		problems = append(problems, "scripted_turns must have at least one turn")
	}
	if len(scenario.AnswerKey.CanonicalFacts) == 0 {
		problems = append(problems, "answer_key.canonical_facts must have at least one fact")
	}

	factIDs := map[string]bool{}
	for _, fact := range scenario.AnswerKey.CanonicalFacts {
		if fact.FactID == "" {
			problems = append(problems, "every canonical_fact needs a fact_id")
			continue
		}
		factIDs[fact.FactID] = true
	}
	for _, point := range scenario.AnswerKey.RequiredPoints {
		if !factIDs[point] {
			problems = append(problems, fmt.Sprintf("required_points references unknown fact_id %q", point))
		}
	}

	seenTurnIDs := map[string]bool{}
	for _, turn := range scenario.ScriptedTurns {
		if turn.TurnID == "" {
			problems = append(problems, "every scripted_turn needs a turn_id")
			continue
		}
		if seenTurnIDs[turn.TurnID] {
			problems = append(problems, fmt.Sprintf("duplicate turn_id %q", turn.TurnID))
		}
		seenTurnIDs[turn.TurnID] = true
	}

	if len(problems) == 0 {
		return nil
	}
	return types.NewError(types.ErrConfiguration, fmt.Sprintf("invalid scenario %s: %v", scenario.ScenarioID, problems))
}
