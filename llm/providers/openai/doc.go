// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package openai implements the Provider adapter for OpenAI. It embeds
openaicompat.Provider and adds the one thing OpenAI needs beyond the
shared base: an optional Organization header.
*/
package openai
