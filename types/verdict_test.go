package types

import "testing"

func TestVerdictLabel_TieBreakRank(t *testing.T) {
	t.Parallel()

	if VerdictContradicted.TieBreakRank() <= VerdictPartiallyCorrect.TieBreakRank() {
		t.Fatalf("expected CONTRADICTED to outrank PARTIALLY_CORRECT")
	}
	if VerdictPartiallyCorrect.TieBreakRank() <= VerdictSupported.TieBreakRank() {
		t.Fatalf("expected PARTIALLY_CORRECT to outrank SUPPORTED")
	}
	if VerdictSupported.TieBreakRank() <= VerdictNotInKey.TieBreakRank() {
		t.Fatalf("expected SUPPORTED to outrank NOT_IN_KEY")
	}
}
