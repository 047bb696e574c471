// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

/*
Package types holds the shared vocabulary used across the evaluation
pipeline: the scenario/answer-key/rubric data model, claims and
verdicts, the top-level TrialResult artifact, provider/pipeline
errors, token accounting, and the context.Context keys used to
correlate logs across one run. It has no dependency on any other
package in this module, so every other package can import it without
risk of an import cycle.

# Core types

  - Scenario / Persona / PlanInformation / ScriptedTurn — the
    immutable per-trial input, loaded from a scenario file
  - AnswerKey / CanonicalFact / ScoringRubric / RubricTier — the
    ground truth and grading criteria a Verifier and the Scorer judge
    against; never shown to the target
  - Claim / QuoteSpan / ClaimType — atomic assertions extracted from a
    target response
  - Verdict / VerdictLabel / AdjudicatedVerdict / Severity — one
    judge's (or the Adjudicator's combined) ruling on a Claim
  - ScoreResult / TrialResult / ConversationTurn / TargetInfo /
    AgentInfo / TrialFlags / TrialMetadata — the Scoring Engine's
    output and the write-once top-level artifact
  - Message / Role / ChatRequest / ChatOptions / ChatResponse — the
    provider-adapter wire types
  - Error / ErrorCode — structured error carrying an HTTP status,
    a Retryable flag, and an optional Provider tag
  - TokenUsage         — prompt/completion/total token accounting,
    accumulated across a trial's agent calls
  - WithRunID / RunID, WithTrialID / TrialID — context propagation for
    log correlation
*/
package types
