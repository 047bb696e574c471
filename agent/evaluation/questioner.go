package evaluation

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/shayo/shipeval/agent/structured"
	"github.com/shayo/shipeval/llm"
	"github.com/shayo/shipeval/types"
)

// TurnPrompt is one line of dialogue the Questioner hands the
// orchestrator to send to the target, in order.
type TurnPrompt struct {
	TurnID      string `json:"turn_id"`
	UserMessage string `json:"user_message"`
}

const questionerSystemPrompt = `You are role-playing a Medicare beneficiary contacting a State Health Insurance Assistance Program (SHIP) counselor. You will be given a list of questions to ask, in order. Paraphrase each question naturally, in the voice of someone genuinely trying to understand their coverage, while preserving every substantive detail of the original question - do not drop any plan names, conditions, or specifics.

Respond with a JSON object of the shape {"turns": [{"turn_id": "...", "user_message": "..."}]}, one entry per input question, in the same order and with the same turn_id values you were given.`

// Questioner emits the ordered list of user turns the target will be
// asked. Deterministic mode (the default) just replays the scenario's
// scripted turns after placeholder substitution - the LLM is never
// called. LLM mode paraphrases, and is only used when the scenario
// explicitly opts in.
type Questioner struct {
	provider llm.Provider
	logger   *zap.Logger
}

// NewQuestioner creates a Questioner. provider may be nil; it is only
// used in LLM (paraphrasing) mode.
func NewQuestioner(provider llm.Provider, logger *zap.Logger) *Questioner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Questioner{provider: provider, logger: logger}
}

// Generate produces the ordered turns for scenario. It never emits
// system context or plan details to the caller beyond the substituted
// user_message text - the target must never see the answer key or
// scenario metadata.
func (q *Questioner) Generate(ctx context.Context, scenario *types.Scenario) ([]TurnPrompt, error) {
	if allowParaphrasing(scenario) {
		return q.generateWithLLM(ctx, scenario)
	}
	return q.generateDeterministic(scenario), nil
}

func allowParaphrasing(scenario *types.Scenario) bool {
	if scenario == nil || scenario.VariationKnobs == nil {
		return false
	}
	allow, _ := scenario.VariationKnobs["allow_paraphrasing"].(bool)
	return allow
}

func (q *Questioner) generateDeterministic(scenario *types.Scenario) []TurnPrompt {
	turns := make([]TurnPrompt, 0, len(scenario.ScriptedTurns))
	for _, turn := range scenario.ScriptedTurns {
		turns = append(turns, TurnPrompt{
			TurnID:      turn.TurnID,
			UserMessage: scenario.SubstitutePlaceholders(turn.UserMessage),
		})
	}
	return turns
}

type questionerPayload struct {
	Turns []TurnPrompt `json:"turns"`
}

func (q *Questioner) generateWithLLM(ctx context.Context, scenario *types.Scenario) ([]TurnPrompt, error) {
	if q.provider == nil {
		return nil, types.NewError(types.ErrConfiguration, "questioner LLM mode requires a provider")
	}

	deterministic := q.generateDeterministic(scenario)
	input, err := json.Marshal(deterministic)
	if err != nil {
		return nil, fmt.Errorf("marshal scripted turns: %w", err)
	}

	resp, err := q.provider.Generate(ctx, &types.ChatRequest{
		Messages: []types.Message{
			types.NewSystemMessage(questionerSystemPrompt),
			types.NewUserMessage(fmt.Sprintf("Questions to paraphrase:\n%s", input)),
		},
		Options: types.ChatOptions{Temperature: 0.3},
	})
	if err != nil {
		return nil, err
	}

	raw, err := structured.ExtractJSON(resp.Content)
	if err != nil {
		return nil, err
	}
	payload, err := structured.DecodeInto[questionerPayload](raw)
	if err != nil {
		return nil, err
	}
	if len(payload.Turns) != len(deterministic) {
		q.logger.Warn("paraphrased turn count mismatch, falling back to deterministic",
			zap.Int("expected", len(deterministic)), zap.Int("got", len(payload.Turns)))
		return deterministic, nil
	}
	return payload.Turns, nil
}
