package checks

import (
	"context"
	"fmt"

	"sitemedic/internal/page"
	"sitemedic/internal/rules"
)

type HeadingStructureRule struct{}

func (r *HeadingStructureRule) ID() string {
	return "heading-structure"
}

func (r *HeadingStructureRule) Title() string {
	return "Heading Structure"
}

func (r *HeadingStructureRule) Description() string {
	return "Verifies that the page has exactly one top-level heading."
}

func (r *HeadingStructureRule) Category() rules.Category {
	return rules.CategoryContent
}

func (r *HeadingStructureRule) Impact() rules.Impact {
	return rules.ImpactLow
}

func (r *HeadingStructureRule) Evaluate(ctx context.Context, snap *page.Snapshot) (rules.Outcome, error) {
	h1 := snap.Document.Headings[1]
	switch {
	case h1 == 0:
		return rules.WithRecommendation(
			rules.Fail(r, "Page has no <h1> heading"),
			"Give the page exactly one <h1> describing its main content",
		), nil
	case h1 > 1:
		return rules.Warn(r, fmt.Sprintf("Page has %d <h1> headings", h1)), nil
	default:
		return rules.Pass(r, ""), nil
	}
}

func init() {
	rules.Register(&HeadingStructureRule{})
}
