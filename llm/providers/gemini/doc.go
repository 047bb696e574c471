// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package gemini implements the Provider adapter for Google Gemini. It
talks to the Generative Language API directly (generativelanguage.
googleapis.com) rather than embedding openaicompat.Provider, since
Gemini's wire shape — contents/parts, a top-level systemInstruction
field, x-goog-api-key auth — is not OpenAI-compatible.
*/
package gemini
