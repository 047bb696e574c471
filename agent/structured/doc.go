// Copyright 2026 AgentFlow Authors
// Use of this source code is governed by the project license.

/*
Package structured coerces the free-text output of an LLM call into a
typed Go value. Despite explicit prompt instructions to return JSON
only, models routinely wrap the payload in prose ("Here are the
claims:") or markdown fences, so every agent response passes through
ExtractJSON before decoding.

ExtractJSON never repairs malformed JSON; it only locates a valid
substring. A model that returns truncated or syntactically broken JSON
is a reported failure (ErrNoJSONFound), not a best-effort patch.
*/
package structured
