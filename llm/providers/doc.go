// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package providers holds the shared HTTP plumbing used by every
OpenAI-compatible vendor adapter (openai, xai, openrouter): request and
response wire shapes, conversion to and from types.ChatRequest/
ChatResponse, and HTTP status -> types.Error classification.

Anthropic and Gemini have their own incompatible wire shapes and live
in their own packages (llm/providers/anthropic, llm/providers/gemini)
rather than here.
*/
package providers
