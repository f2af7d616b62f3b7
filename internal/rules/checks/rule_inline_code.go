package checks

import (
	"context"
	"fmt"

	"sitemedic/internal/page"
	"sitemedic/internal/rules"
)

// Inline script/style budgets. Inline code defeats caching across pages.
const (
	warnInlineBlocks = 5
	failInlineBlocks = 15
)

type InlineCodeRule struct{}

func (r *InlineCodeRule) ID() string {
	return "inline-code"
}

func (r *InlineCodeRule) Title() string {
	return "Inline Script and Style Usage"
}

func (r *InlineCodeRule) Description() string {
	return "Verifies that scripts and styles are referenced as cacheable files rather than inlined."
}

func (r *InlineCodeRule) Category() rules.Category {
	return rules.CategoryPerformance
}

func (r *InlineCodeRule) Impact() rules.Impact {
	return rules.ImpactLow
}

func (r *InlineCodeRule) Evaluate(ctx context.Context, snap *page.Snapshot) (rules.Outcome, error) {
	inline := snap.Document.InlineScripts + snap.Document.InlineStyles
	msg := fmt.Sprintf("Page contains %d inline script/style blocks", inline)
	switch {
	case inline > failInlineBlocks:
		return rules.WithRecommendation(
			rules.Fail(r, msg),
			"Move inline scripts and styles into external files so browsers can cache them",
		), nil
	case inline > warnInlineBlocks:
		return rules.Warn(r, msg), nil
	default:
		return rules.Pass(r, ""), nil
	}
}

func init() {
	rules.Register(&InlineCodeRule{})
}
