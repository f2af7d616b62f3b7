package checks

import (
	"context"
	"fmt"

	"sitemedic/internal/page"
	"sitemedic/internal/rules"
)

// Subresource request budgets.
const (
	warnRequestCount = 50
	failRequestCount = 100
)

type RequestCountRule struct{}

func (r *RequestCountRule) ID() string {
	return "request-count"
}

func (r *RequestCountRule) Title() string {
	return "Subresource Request Budget"
}

func (r *RequestCountRule) Description() string {
	return "Verifies that the page does not reference an excessive number of subresources."
}

func (r *RequestCountRule) Category() rules.Category {
	return rules.CategoryPerformance
}

func (r *RequestCountRule) Impact() rules.Impact {
	return rules.ImpactMedium
}

func (r *RequestCountRule) Evaluate(ctx context.Context, snap *page.Snapshot) (rules.Outcome, error) {
	total := snap.Weight.TotalResources
	switch {
	case total > failRequestCount:
		return rules.Fail(r, fmt.Sprintf("Page references %d subresources (budget %d)", total, failRequestCount)), nil
	case total > warnRequestCount:
		return rules.Warn(r, fmt.Sprintf("Page references %d subresources (budget %d)", total, warnRequestCount)), nil
	default:
		return rules.Pass(r, ""), nil
	}
}

func init() {
	rules.Register(&RequestCountRule{})
}
