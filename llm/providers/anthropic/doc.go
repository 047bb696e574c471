// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package anthropic implements the Provider adapter for Anthropic Claude.
Claude's Messages API differs from the OpenAI-compatible shape in three
ways this adapter accounts for: authentication via x-api-key rather
than a bearer token, a top-level system field instead of a system
message in the array, and a required max_tokens on every request.
*/
package anthropic
