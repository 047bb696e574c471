// Copyright 2026 AgentFlow Authors
// Use of this source code is governed by the project license.

/*
Package evaluation implements the five pipeline agents that turn a
scenario and a target's transcript into a scored trial: Questioner,
Extractor, Verifier, Scorer, and Adjudicator.

Questioner, Extractor, and Verifier call an llm.Provider (real or
mock) and decode its response through agent/structured. Scorer and
Adjudicator are pure and rule-based — no LLM call on the default path
— which is why they live alongside the LLM-backed agents rather than
in their own package: all five pass types.Claim/types.Verdict/
types.ScoreResult between each other directly.
*/
package evaluation
