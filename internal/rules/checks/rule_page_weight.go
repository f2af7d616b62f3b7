package checks

import (
	"context"
	"fmt"

	"sitemedic/internal/page"
	"sitemedic/internal/rules"
)

// Byte budgets for the document itself, excluding subresources. Heuristic
// constants, not normative values.
const (
	warnPageWeightBytes = 1 << 20 // 1 MiB
	failPageWeightBytes = 3 << 20 // 3 MiB
)

type PageWeightRule struct{}

func (r *PageWeightRule) ID() string {
	return "page-weight"
}

func (r *PageWeightRule) Title() string {
	return "Page Weight Budget"
}

func (r *PageWeightRule) Description() string {
	return "Verifies that the document body stays within its byte budget."
}

func (r *PageWeightRule) Category() rules.Category {
	return rules.CategoryPerformance
}

func (r *PageWeightRule) Impact() rules.Impact {
	return rules.ImpactHigh
}

func (r *PageWeightRule) Evaluate(ctx context.Context, snap *page.Snapshot) (rules.Outcome, error) {
	size := snap.Weight.BodyBytes
	switch {
	case size > failPageWeightBytes:
		return rules.WithRecommendation(
			rules.Fail(r, fmt.Sprintf("Document is %d bytes (budget %d)", size, failPageWeightBytes)),
			"Trim markup, remove embedded data and move large payloads to subresources",
		), nil
	case size > warnPageWeightBytes:
		return rules.Warn(r, fmt.Sprintf("Document is %d bytes (budget %d)", size, warnPageWeightBytes)), nil
	default:
		return rules.Pass(r, ""), nil
	}
}

func init() {
	rules.Register(&PageWeightRule{})
}
