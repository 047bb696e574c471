package orchestrator

import "strings"

// refusalPhrases are the text-level signals that a response declined
// to answer rather than addressing the question. Matching one of these
// is necessary but not sufficient for TrialFlags.Refusal - it's
// combined with low completeness in the Scorer (see
// Scorer.Score's hasRefusalPattern parameter).
var refusalPhrases = []string{
	"i cannot", "i can't", "i'm not able to", "i am not able to",
	"i should not", "i shouldn't", "not qualified", "cannot provide",
	"can't provide", "consult a professional", "consult a licensed",
}

// hasRefusalPattern reports whether text contains any refusal phrase.
func hasRefusalPattern(text string) bool {
	return containsAnyPhrase(strings.ToLower(text), refusalPhrases)
}

// hasClarifyingQuestion reports whether any sentence in text asked the
// shopper a clarifying question - a plain "?" is the rule.
func hasClarifyingQuestion(text string) bool {
	return strings.Contains(text, "?")
}

func containsAnyPhrase(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
