package mockagent

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shayo/shipeval/internal/tokencount"
	"github.com/shayo/shipeval/types"
)

// Provider fabricates agent responses by pattern-matching the system
// prompt; it never calls out to a real vendor.
type Provider struct{}

// New creates a mock-agent provider.
func New() *Provider { return &Provider{} }

func (p *Provider) Name() string { return "mock-agent-v1.0" }

// SupportsSeed is always true; output is a deterministic function of
// the input messages.
func (p *Provider) SupportsSeed() bool { return true }

func (p *Provider) HealthCheck(ctx context.Context) (*types.HealthStatus, error) {
	return &types.HealthStatus{Healthy: true}, nil
}

func (p *Provider) Generate(ctx context.Context, req *types.ChatRequest) (*types.ChatResponse, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(50 * time.Millisecond):
	}

	var system, user string
	if len(req.Messages) > 0 {
		system = req.Messages[0].Content
	}
	if len(req.Messages) > 1 {
		user = req.Messages[len(req.Messages)-1].Content
	}
	lower := strings.ToLower(system)

	var content string
	switch {
	case strings.Contains(lower, "questioner") || strings.Contains(lower, "role-playing"):
		content = questionerResponse()
	case strings.Contains(lower, "verifier") || (strings.Contains(lower, "verifying") && strings.Contains(lower, "medicare")):
		content = verifierResponse(user)
	case strings.Contains(lower, "extractor") || strings.Contains(lower, "extracting claims") || strings.Contains(lower, "claim extraction"):
		content = extractorResponse(user)
	default:
		content = `{"error":"unknown agent type"}`
	}

	return &types.ChatResponse{
		Content:          content,
		ModelIdentifier:  p.Name(),
		PromptTokens:     tokencount.Estimate(system + user),
		CompletionTokens: tokencount.Estimate(content),
		Latency:          50 * time.Millisecond,
	}, nil
}

type mockTurn struct {
	TurnID      string `json:"turn_id"`
	UserMessage string `json:"user_message"`
}

func questionerResponse() string {
	data, _ := json.Marshal(map[string]any{
		"turns": []mockTurn{
			{TurnID: "Q1", UserMessage: "I'm trying to decide between Original Medicare and Medicare Advantage. What's the difference?"},
		},
	})
	return string(data)
}

type mockQuoteSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type mockClaim struct {
	ClaimID          string          `json:"claim_id"`
	Text             string          `json:"text"`
	Type             string          `json:"type"`
	Confidence       string          `json:"confidence"`
	Verifiable       bool            `json:"verifiable"`
	QuoteSpans       []mockQuoteSpan `json:"quote_spans"`
	IsHedged         bool            `json:"is_hedged"`
	ContextDependent bool            `json:"context_dependent"`
}

var hedgeWords = []string{"may", "might", "often", "usually", "generally"}

func extractorResponse(userMessage string) string {
	responseText := extractResponseText(userMessage)

	sentences := regexp.MustCompile(`[.\n]`).Split(responseText, -1)
	claims := make([]mockClaim, 0, len(sentences))
	claimNum := 1
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if len(s) < 20 {
			continue
		}
		if strings.HasPrefix(s, "**") || strings.HasPrefix(s, "-") {
			s = strings.TrimSpace(regexp.MustCompile(`\*\*|^-\s*`).ReplaceAllString(s, ""))
		}
		if s == "" {
			continue
		}
		hedged := false
		sLower := strings.ToLower(s)
		for _, w := range hedgeWords {
			if strings.Contains(sLower, w) {
				hedged = true
				break
			}
		}
		spans := []mockQuoteSpan{}
		if start := strings.Index(responseText, s); start >= 0 {
			spans = append(spans, mockQuoteSpan{Start: start, End: start + len(s)})
		}
		claims = append(claims, mockClaim{
			ClaimID:    idFor("C", claimNum),
			Text:       s,
			Type:       "factual",
			Confidence: "high",
			Verifiable: true,
			QuoteSpans: spans,
			IsHedged:   hedged,
		})
		claimNum++
		if len(claims) >= 15 {
			break
		}
	}

	data, _ := json.Marshal(map[string]any{"claims": claims})
	return string(data)
}

func extractResponseText(userMessage string) string {
	idx := strings.Index(userMessage, "{")
	if idx == -1 {
		return userMessage
	}
	var payload struct {
		ResponseText string `json:"response_text"`
	}
	if err := json.Unmarshal([]byte(userMessage[idx:]), &payload); err != nil {
		return userMessage
	}
	return payload.ResponseText
}

type mockVerdict struct {
	ClaimID  string   `json:"claim_id"`
	Label    string   `json:"label"`
	Evidence []string `json:"evidence"`
	Severity string   `json:"severity"`
	Notes    string   `json:"notes"`
}

func verifierResponse(userMessage string) string {
	var payload struct {
		Claims []struct {
			ClaimID string `json:"claim_id"`
			Text    string `json:"text"`
		} `json:"claims"`
	}
	jsonStr := firstJSONObject(userMessage)
	if jsonStr == "" || json.Unmarshal([]byte(jsonStr), &payload) != nil || len(payload.Claims) == 0 {
		empty, _ := json.Marshal(map[string]any{"verdicts": []mockVerdict{}})
		return string(empty)
	}

	verdicts := make([]mockVerdict, 0, len(payload.Claims))
	for _, claim := range payload.Claims {
		label, evidence := classifyClaim(strings.ToLower(claim.Text))
		verdicts = append(verdicts, mockVerdict{
			ClaimID:  claim.ClaimID,
			Label:    label,
			Evidence: evidence,
			Severity: "none",
			Notes:    "Mock verification based on keyword matching",
		})
	}

	data, _ := json.Marshal(map[string]any{"verdicts": verdicts})
	return string(data)
}

func classifyClaim(text string) (label string, evidence []string) {
	switch {
	case strings.Contains(text, "original medicare") && strings.Contains(text, "part"):
		return "SUPPORTED", []string{"F1"}
	case strings.Contains(text, "part a") && strings.Contains(text, "hospital"):
		return "SUPPORTED", []string{"F2"}
	case strings.Contains(text, "part b") && (strings.Contains(text, "doctor") || strings.Contains(text, "outpatient")):
		return "SUPPORTED", []string{"F3"}
	case strings.Contains(text, "medicare advantage") || strings.Contains(text, "part c"):
		switch {
		case strings.Contains(text, "network"):
			return "SUPPORTED", []string{"F8"}
		case strings.Contains(text, "private") || strings.Contains(text, "insurance"):
			return "SUPPORTED", []string{"F4", "F5"}
		default:
			return "SUPPORTED", []string{"F5"}
		}
	case strings.Contains(text, "prescription") || strings.Contains(text, "drug") || strings.Contains(text, "part d"):
		switch {
		case strings.Contains(text, "advantage"):
			return "SUPPORTED", []string{"F6"}
		case strings.Contains(text, "original medicare") || strings.Contains(text, "does not include"):
			return "SUPPORTED", []string{"F7"}
		}
	case strings.Contains(text, "out-of-pocket") || strings.Contains(text, "maximum"):
		switch {
		case strings.Contains(text, "advantage"):
			return "SUPPORTED", []string{"F10"}
		case strings.Contains(text, "original medicare") && strings.Contains(text, "does not"):
			return "SUPPORTED", []string{"F11"}
		}
	case strings.Contains(text, "medigap"):
		return "SUPPORTED", []string{"F11"}
	case strings.Contains(text, "any doctor") || strings.Contains(text, "any provider"):
		return "SUPPORTED", []string{"F9"}
	}
	return "NOT_IN_KEY", []string{}
}

func firstJSONObject(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "{") {
			idx := strings.Index(s, strings.TrimSpace(line))
			if idx >= 0 {
				return s[idx:]
			}
		}
	}
	idx := strings.Index(s, "{")
	if idx == -1 {
		return ""
	}
	return s[idx:]
}

func idFor(prefix string, n int) string {
	return prefix + strconv.Itoa(n)
}
