// Package orchestrator drives one evaluation trial end to end: it
// asks the Questioner for the shopper's turns, carries on the scripted
// conversation with the target under test, extracts claims from each
// assistant turn, fans the claims out to N independent Verifiers,
// adjudicates their verdicts, scores the result against the scenario's
// rubric, and persists everything a reviewer would need to audit the
// trial afterward.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shayo/shipeval/agent/evaluation"
	"github.com/shayo/shipeval/agent/persistence"
	"github.com/shayo/shipeval/llm"
	"github.com/shayo/shipeval/llm/retry"
	"github.com/shayo/shipeval/types"
)

// RunOptions configures one invocation of Run. Zero values are
// replaced with invocation-surface defaults by ApplyDefaults.
type RunOptions struct {
	AgentModel string
	Judges     int
	Seed       int64
	OutputDir  string
	RunID      string
}

// ApplyDefaults fills in the invocation-surface defaults: agent_model
// "mock:default", judges 2 (minimum 1), seed 42, output_dir "runs/".
func (o RunOptions) ApplyDefaults() RunOptions {
	if o.AgentModel == "" {
		o.AgentModel = "mock:default"
	}
	if o.Judges < 1 {
		o.Judges = 2
	}
	if o.Seed == 0 {
		o.Seed = 42
	}
	if o.OutputDir == "" {
		o.OutputDir = "runs/"
	}
	return o
}

// Orchestrator runs evaluation trials. It holds only a logger; each
// Run call builds its own providers, run store and five-agent
// pipeline, and executes one trial.
type Orchestrator struct {
	logger *zap.Logger
}

// New creates an Orchestrator.
func New(logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{logger: logger}
}

// Run is the external entrypoint: it parses targetSpec, loads and
// validates the scenario file at scenarioPath, mints a run directory,
// and executes one trial inside it. Startup failures (bad scenario,
// unknown provider, missing credentials) are Configuration-class
// errors and never create a run directory.
func (o *Orchestrator) Run(ctx context.Context, scenarioPath, targetSpec string, opts RunOptions) (*types.TrialResult, error) {
	opts = opts.ApplyDefaults()

	scenario, err := LoadScenario(scenarioPath)
	if err != nil {
		return nil, err
	}

	target, err := llm.NewProvider(targetSpec, o.logger, nil)
	if err != nil {
		return nil, err
	}
	agentProvider, err := llm.NewProvider(opts.AgentModel, o.logger, nil)
	if err != nil {
		return nil, err
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.New().String()
	}

	store, err := persistence.NewRunStore(opts.OutputDir, o.logger)
	if err != nil {
		return nil, types.NewError(types.ErrConfiguration, "create output dir").WithCause(err)
	}
	run, err := store.CreateRun(runID)
	if err != nil {
		return nil, types.NewError(types.ErrConfiguration, "create run directory").WithCause(err)
	}

	var seed *int64
	if opts.Seed != 0 {
		s := opts.Seed
		seed = &s
	}
	if err := run.WriteRunMetadata(persistence.RunMetadata{
		RunID:      runID,
		ScenarioID: scenario.ScenarioID,
		Target:     targetSpec,
		AgentModel: opts.AgentModel,
		JudgeCount: opts.Judges,
		Seed:       seed,
	}); err != nil {
		return nil, fmt.Errorf("write run metadata: %w", err)
	}

	ctx = types.WithRunID(ctx, runID)

	trialID := uuid.New().String()
	ctx = types.WithTrialID(ctx, trialID)

	targetInfo := types.TargetInfo{ModelName: targetSpec, Provider: target.Name()}
	agentInfo := types.AgentInfo{ModelName: opts.AgentModel, Provider: agentProvider.Name()}

	pipeline := newPipeline(target, agentProvider, opts.Judges, o.logger)
	result, err := pipeline.runTrial(ctx, trialID, scenario, targetInfo, agentInfo, seed, opts.Judges, run)
	if err != nil {
		return nil, err
	}
	if appendErr := run.AppendResult(result); appendErr != nil {
		return result, fmt.Errorf("append trial result: %w", appendErr)
	}
	return result, nil
}

// pipeline holds the five agents and the two providers (target and
// agent) a trial needs, constructed once per Run call.
type pipeline struct {
	target      llm.Provider
	questioner  *evaluation.Questioner
	extractor   *evaluation.Extractor
	verifiers   []*evaluation.Verifier
	adjudicator *evaluation.Adjudicator
	scorer      *evaluation.Scorer
	targetRetry retry.Retryer
	logger      *zap.Logger
}

func newPipeline(target, agentProvider llm.Provider, judges int, logger *zap.Logger) *pipeline {
	verifiers := make([]*evaluation.Verifier, judges)
	for i := 0; i < judges; i++ {
		verifiers[i] = evaluation.NewVerifier(verifierID(i), agentProvider, logger)
	}
	return &pipeline{
		target:      target,
		questioner:  evaluation.NewQuestioner(agentProvider, logger),
		extractor:   evaluation.NewExtractor(agentProvider, logger),
		verifiers:   verifiers,
		adjudicator: evaluation.NewAdjudicator(),
		scorer:      evaluation.NewScorer(),
		targetRetry: retry.NewBackoffRetryer(retry.DefaultRetryPolicy(), logger),
		logger:      logger,
	}
}

func verifierID(i int) string { return fmt.Sprintf("V%d", i+1) }

// runTrial executes the ten-step trial algorithm and always returns a
// TrialResult - complete on success, or partial (FinalScores == nil,
// Metadata.Aborted == true) when the target or the extractor fails
// irrecoverably. Only an invariant violation elsewhere in the pipeline
// returns a bare error instead of a partial result, since that
// signals a bug rather than an expected failure mode.
func (p *pipeline) runTrial(ctx context.Context, trialID string, scenario *types.Scenario, targetInfo types.TargetInfo, agentInfo types.AgentInfo, seed *int64, judges int, run *persistence.Run) (*types.TrialResult, error) {
	metadata := types.TrialMetadata{Seed: seed, JudgeCount: judges}
	metadata.StartedAt = time.Now()

	turns, err := p.questioner.Generate(ctx, scenario)
	if err != nil {
		return nil, fmt.Errorf("questioner: %w", err)
	}

	conversation, assistantText, err := p.conductConversation(ctx, scenario, turns)
	if err != nil {
		return abortedResult(trialID, scenario.ScenarioID, targetInfo, agentInfo, metadata, conversation, "target_failure", err), nil
	}
	if err := run.WriteTranscript(trialID, conversation); err != nil {
		p.logger.Warn("failed to persist transcript", zap.Error(err), zap.String("trial_id", trialID))
	}

	claims, err := p.extractWithRetry(ctx, assistantText)
	if err != nil {
		return abortedResult(trialID, scenario.ScenarioID, targetInfo, agentInfo, metadata, conversation, "extraction_failure", err), nil
	}
	if err := run.WriteIntermediate(trialID, "extraction", claims); err != nil {
		p.logger.Warn("failed to persist extraction", zap.Error(err), zap.String("trial_id", trialID))
	}

	verdictsByJudge, err := p.verifyAll(ctx, claims, scenario.AnswerKey)
	if err != nil {
		return abortedResult(trialID, scenario.ScenarioID, targetInfo, agentInfo, metadata, conversation, "verification_failure", err), nil
	}
	for judgeID, verdicts := range verdictsByJudge {
		if err := run.WriteIntermediate(trialID, "verification_"+strings.ToLower(judgeID), verdicts); err != nil {
			p.logger.Warn("failed to persist verification", zap.Error(err), zap.String("trial_id", trialID), zap.String("judge_id", judgeID))
		}
	}

	adjudication := p.adjudicator.Adjudicate(claims, verdictsByJudge)
	if err := run.WriteIntermediate(trialID, "adjudication", adjudication); err != nil {
		p.logger.Warn("failed to persist adjudication", zap.Error(err), zap.String("trial_id", trialID))
	}
	metadata.DisagreementPct = adjudication.DisagreementPercentage

	refusalPattern := hasRefusalPattern(assistantText)
	scoreResult, refusal, err := p.scorer.Score(claims, adjudication.AdjudicatedVerdicts, scenario.AnswerKey, scenario.ScoringRubric, refusalPattern)
	if err != nil {
		return nil, types.NewError(types.ErrInvariantViolation, "scoring failed").WithCause(err)
	}
	if err := run.WriteIntermediate(trialID, "grading", scoreResult); err != nil {
		p.logger.Warn("failed to persist grading", zap.Error(err), zap.String("trial_id", trialID))
	}

	metadata.CompletedAt = time.Now()

	return &types.TrialResult{
		TrialID:             trialID,
		ScenarioID:          scenario.ScenarioID,
		Target:              targetInfo,
		Agent:               agentInfo,
		Conversation:        conversation,
		Claims:              claims,
		VerdictsByJudge:     verdictsByJudge,
		AdjudicatedVerdicts: adjudication.AdjudicatedVerdicts,
		FinalScores:         scoreResult,
		Flags:               detectFlags(claims, adjudication.AdjudicatedVerdicts, assistantText, refusal),
		Metadata:            metadata,
	}, nil
}

// conductConversation sends each scripted turn to the target in order
// (serialized - a target call depends on the transcript so far),
// appending the target's retried response after each. It returns as
// soon as any turn's target call fails irrecoverably, along with the
// conversation collected up to that point.
func (p *pipeline) conductConversation(ctx context.Context, scenario *types.Scenario, turns []evaluation.TurnPrompt) ([]types.ConversationTurn, string, error) {
	var conversation []types.ConversationTurn
	var messages []types.Message
	var assistantText string

	for _, turn := range turns {
		messages = append(messages, types.NewUserMessage(turn.UserMessage))
		conversation = append(conversation, types.ConversationTurn{TurnID: turn.TurnID, Role: types.RoleUser, Content: turn.UserMessage})

		resp, err := retry.DoWithResultTyped[*types.ChatResponse](p.targetRetry, ctx, func() (*types.ChatResponse, error) {
			return p.target.Generate(ctx, &types.ChatRequest{Messages: messages})
		})
		if err != nil {
			return conversation, assistantText, err
		}

		messages = append(messages, types.NewAssistantMessage(resp.Content))
		conversation = append(conversation, types.ConversationTurn{TurnID: turn.TurnID, Role: types.RoleAssistant, Content: resp.Content})
		if assistantText != "" {
			assistantText += "\n\n"
		}
		assistantText += resp.Content
	}
	return conversation, assistantText, nil
}

// extractWithRetry calls the Extractor once, and exactly once more on
// an agent-protocol failure (JSON coercion or schema mismatch) - the
// Agent-protocol error class allows only a single retry with the same
// input before the trial aborts.
func (p *pipeline) extractWithRetry(ctx context.Context, responseText string) ([]types.Claim, error) {
	claims, err := p.extractor.Extract(ctx, responseText)
	if err == nil {
		return claims, nil
	}
	p.logger.Warn("extractor failed, retrying once", zap.Error(err))
	return p.extractor.Extract(ctx, responseText)
}

// verifyAll runs every Verifier concurrently and joins on all of them,
// indexed by verifier_id rather than completion order. Quorum is 1:
// the trial aborts only if every Verifier fails; individual failures
// are tolerated and simply absent from the result map.
func (p *pipeline) verifyAll(ctx context.Context, claims []types.Claim, answerKey types.AnswerKey) (map[string][]types.Verdict, error) {
	results := make([]struct {
		verdicts []types.Verdict
		err      error
	}, len(p.verifiers))

	g, gctx := errgroup.WithContext(ctx)
	for i, v := range p.verifiers {
		i, v := i, v
		g.Go(func() error {
			verdicts, err := v.Verify(gctx, claims, answerKey)
			results[i].verdicts, results[i].err = verdicts, err
			return nil // individual failures are tolerated, never abort the group early
		})
	}
	_ = g.Wait()

	verdictsByJudge := map[string][]types.Verdict{}
	var lastErr error
	for i, v := range p.verifiers {
		if results[i].err != nil {
			p.logger.Warn("verifier failed", zap.String("verifier_id", v.VerifierID), zap.Error(results[i].err))
			lastErr = results[i].err
			continue
		}
		verdictsByJudge[v.VerifierID] = results[i].verdicts
	}
	if len(verdictsByJudge) == 0 {
		return nil, fmt.Errorf("all verifiers failed: %w", lastErr)
	}
	return verdictsByJudge, nil
}

// detectFlags computes the step-9 deterministic signals. refusal is
// passed in from the Scorer, which is the single place the
// refusal-pattern/completeness-threshold combination is evaluated.
// askedClarifying scans the target's own response text, not the
// extracted claims - the Extractor emits atomic assertions, never the
// interrogative sentences a clarifying question would appear in.
func detectFlags(claims []types.Claim, adjudicated []types.AdjudicatedVerdict, assistantText string, refusal bool) types.TrialFlags {
	notInKey := 0
	for _, v := range adjudicated {
		if v.Label == types.VerdictNotInKey {
			notInKey++
		}
	}
	hallucinated := len(claims) > 0 && float64(notInKey)/float64(len(claims)) > 0.20

	askedClarifying := hasClarifyingQuestion(assistantText)

	referencedExternal := false
	for _, v := range adjudicated {
		for _, fact := range v.Evidence {
			if fact == "acceptable_referrals" {
				referencedExternal = true
			}
		}
	}

	return types.TrialFlags{
		Refusal:                     refusal,
		HallucinatedSpecifics:       hallucinated,
		AskedClarifyingQuestions:    askedClarifying,
		ReferencedExternalResources: referencedExternal,
	}
}

// abortedResult builds the partial TrialResult persisted when a trial
// aborts mid-pipeline: FinalScores stays nil and Metadata records why.
func abortedResult(trialID, scenarioID string, targetInfo types.TargetInfo, agentInfo types.AgentInfo, metadata types.TrialMetadata, conversation []types.ConversationTurn, reason string, cause error) *types.TrialResult {
	metadata.Aborted = true
	metadata.AbortReason = fmt.Sprintf("%s: %v", reason, cause)
	metadata.CompletedAt = time.Now()
	return &types.TrialResult{
		TrialID:      trialID,
		ScenarioID:   scenarioID,
		Target:       targetInfo,
		Agent:        agentInfo,
		Conversation: conversation,
		FinalScores:  nil,
		Metadata:     metadata,
	}
}
