// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package xai implements the Provider adapter for xAI Grok. xAI's API is
OpenAI-compatible, so this package is a thin wrapper around
openaicompat.Provider with xAI's base URL and default model.
*/
package xai
