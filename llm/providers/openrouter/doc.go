// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package openrouter implements the Provider adapter for OpenRouter.
OpenRouter speaks the OpenAI-compatible chat-completions format and
routes by a "vendor/model" string (e.g. "openai/gpt-4-turbo"), so this
package wraps openaicompat.Provider and passes the model through
unchanged — target specs of the form "openrouter:<vendor>/<model>" are
split by llm.ParseTargetSpec (inside llm.NewProvider) before reaching
this adapter.
*/
package openrouter
