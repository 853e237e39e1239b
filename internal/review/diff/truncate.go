package diff

import (
	"fmt"
	"strings"
)

// TruncatePatch shortens patch to roughly maxTokens, cutting on a line
// boundary and appending a marker that says how much was dropped. A
// non-positive budget leaves the patch alone.
func TruncatePatch(patch string, maxTokens int) (string, bool) {
	if maxTokens <= 0 || EstimateTokens(patch) <= maxTokens {
		return patch, false
	}

	lines := strings.Split(patch, "\n")
	kept := 0
	used := 0
	for _, line := range lines {
		cost := EstimateTokens(line + "\n")
		if used+cost > maxTokens {
			break
		}
		used += cost
		kept++
	}

	var b strings.Builder
	b.WriteString(strings.Join(lines[:kept], "\n"))
	if kept > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "... [patch truncated: %d of %d lines shown]", kept, len(lines))
	return b.String(), true
}
