package diff

import (
	"strings"
	"testing"
)

func withCharEstimate(t *testing.T) {
	t.Helper()
	old := estimateTokensFunc
	estimateTokensFunc = func(text string) int { return len(text) }
	t.Cleanup(func() { estimateTokensFunc = old })
}

func TestTruncatePatchWithinBudget(t *testing.T) {
	withCharEstimate(t)
	patch := "+a\n+b"
	got, truncated := TruncatePatch(patch, 100)
	if truncated || got != patch {
		t.Fatalf("patch within budget must be untouched")
	}
	got, truncated = TruncatePatch(patch, 0)
	if truncated || got != patch {
		t.Fatalf("zero budget disables truncation")
	}
}

func TestTruncatePatchCutsOnLineBoundary(t *testing.T) {
	withCharEstimate(t)
	patch := "@@ -1,3 +1,3 @@\n+line1\n+line2\n+line3"
	got, truncated := TruncatePatch(patch, 24)
	if !truncated {
		t.Fatalf("expected truncation")
	}
	if !strings.HasPrefix(got, "@@ -1,3 +1,3 @@\n+line1\n") {
		t.Fatalf("unexpected kept text %q", got)
	}
	if strings.Contains(got, "+line2") {
		t.Fatalf("line2 should have been dropped: %q", got)
	}
	if !strings.HasSuffix(got, "[patch truncated: 2 of 4 lines shown]") {
		t.Fatalf("missing marker: %q", got)
	}
}

func TestEstimateTokensEmpty(t *testing.T) {
	if EstimateTokens("") != 0 {
		t.Fatalf("empty text has no tokens")
	}
}
