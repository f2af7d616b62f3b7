package checks

import (
	"context"
	"fmt"

	"sitemedic/internal/page"
	"sitemedic/internal/rules"
)

const (
	warnIFrameCount = 2
	failIFrameCount = 5
)

type IFrameCountRule struct{}

func (r *IFrameCountRule) ID() string {
	return "iframe-count"
}

func (r *IFrameCountRule) Title() string {
	return "Iframe Usage Budget"
}

func (r *IFrameCountRule) Description() string {
	return "Verifies that the page does not embed an excessive number of iframes, each of which costs a separate document load."
}

func (r *IFrameCountRule) Category() rules.Category {
	return rules.CategoryPerformance
}

func (r *IFrameCountRule) Impact() rules.Impact {
	return rules.ImpactLow
}

func (r *IFrameCountRule) Evaluate(ctx context.Context, snap *page.Snapshot) (rules.Outcome, error) {
	iframes := snap.Weight.ResourceCounts[page.ResourceIframe]
	switch {
	case iframes > failIFrameCount:
		return rules.Fail(r, fmt.Sprintf("Page embeds %d iframes (budget %d)", iframes, failIFrameCount)), nil
	case iframes > warnIFrameCount:
		return rules.Warn(r, fmt.Sprintf("Page embeds %d iframes (budget %d)", iframes, warnIFrameCount)), nil
	default:
		return rules.Pass(r, ""), nil
	}
}

func init() {
	rules.Register(&IFrameCountRule{})
}
