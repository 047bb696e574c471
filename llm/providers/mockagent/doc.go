// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package mockagent implements a Provider that synthesizes plausible
agent-shaped JSON without calling any vendor. It inspects the system
prompt to guess which of the three LLM-backed pipeline agents is
calling (questioner, extractor, verifier - scorer and adjudicator are
pure rule-based and never call a provider) and returns heuristic JSON
matching that agent's expected schema, so the orchestrator can be
exercised end to end with no credentials configured.
*/
package mockagent
