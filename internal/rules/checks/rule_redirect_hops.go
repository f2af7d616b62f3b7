package checks

import (
	"context"
	"fmt"

	"sitemedic/internal/page"
	"sitemedic/internal/rules"
)

// Redirect hop thresholds. Each hop adds a round trip before any content
// arrives.
const (
	warnRedirectHops = 1
	failRedirectHops = 3
)

type RedirectHopsRule struct{}

func (r *RedirectHopsRule) ID() string {
	return "redirect-hops"
}

func (r *RedirectHopsRule) Title() string {
	return "Redirect Chain Length"
}

func (r *RedirectHopsRule) Description() string {
	return "Verifies that reaching the page does not require chained redirects."
}

func (r *RedirectHopsRule) Category() rules.Category {
	return rules.CategoryTransfer
}

func (r *RedirectHopsRule) Impact() rules.Impact {
	return rules.ImpactLow
}

func (r *RedirectHopsRule) Evaluate(ctx context.Context, snap *page.Snapshot) (rules.Outcome, error) {
	hops := len(snap.Fetch.RedirectChain)
	switch {
	case hops >= failRedirectHops:
		return rules.Fail(r, fmt.Sprintf("Reaching the page took %d redirects", hops)), nil
	case hops > warnRedirectHops:
		return rules.Warn(r, fmt.Sprintf("Reaching the page took %d redirects", hops)), nil
	default:
		return rules.Pass(r, ""), nil
	}
}

func init() {
	rules.Register(&RedirectHopsRule{})
}
