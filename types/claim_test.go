package types

import "testing"

func TestClaim_WithinBounds(t *testing.T) {
	t.Parallel()

	c := Claim{QuoteSpans: []QuoteSpan{{Start: 0, End: 10}, {Start: 5, End: 20}}}
	if !c.WithinBounds(20) {
		t.Fatalf("expected spans within a 20-char text to be in bounds")
	}
	if c.WithinBounds(15) {
		t.Fatalf("expected a span ending past text length to be out of bounds")
	}
}

func TestClaim_WithinBounds_InvertedSpan(t *testing.T) {
	t.Parallel()

	c := Claim{QuoteSpans: []QuoteSpan{{Start: 10, End: 5}}}
	if c.WithinBounds(100) {
		t.Fatalf("expected an inverted span to be out of bounds")
	}
}
