// Package tokencount estimates prompt/completion token counts for
// providers that don't report real usage figures in their responses.
package tokencount

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	once sync.Once
	enc  *tiktoken.Tiktoken
)

// Estimate returns the tiktoken cl100k_base token count for text. If
// the encoding can't be loaded (e.g. no network access to fetch the
// BPE ranks on first use), it falls back to a crude four-characters-
// per-token estimate rather than failing the caller.
func Estimate(text string) int {
	if text == "" {
		return 0
	}
	once.Do(func() {
		e, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			enc = e
		}
	})
	if enc == nil {
		return fallbackEstimate(text)
	}
	return len(enc.Encode(text, nil, nil))
}

func fallbackEstimate(text string) int {
	tokens := len(text) / 4
	if tokens < 1 {
		return 1
	}
	return tokens
}
