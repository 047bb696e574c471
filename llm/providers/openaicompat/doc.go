// Package openaicompat provides a shared base implementation for every
// OpenAI-compatible LLM provider.
//
// OpenAI, xAI, and OpenRouter all speak the same chat-completions wire
// format. Instead of duplicating the HTTP handling, message conversion,
// and error mapping in each adapter, they embed openaicompat.Provider
// and only override what differs:
//
//   - Provider name and default model
//   - Base URL and API key
//   - Custom headers, for vendors that need more than a bearer token
//
// Usage:
//
//	p := openaicompat.New(openaicompat.Config{
//	    ProviderName: "openai",
//	    APIKey:       apiKey,
//	    BaseURL:      "https://api.openai.com",
//	    DefaultModel: "gpt-4-turbo",
//	}, logger, metricsCollector)
package openaicompat
