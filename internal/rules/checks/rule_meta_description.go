package checks

import (
	"context"
	"fmt"

	"sitemedic/internal/page"
	"sitemedic/internal/rules"
)

const maxMetaDescriptionLength = 160

type MetaDescriptionRule struct{}

func (r *MetaDescriptionRule) ID() string {
	return "meta-description"
}

func (r *MetaDescriptionRule) Title() string {
	return "Meta Description Exists"
}

func (r *MetaDescriptionRule) Description() string {
	return "Verifies that the page declares a meta description of a reasonable length."
}

func (r *MetaDescriptionRule) Category() rules.Category {
	return rules.CategoryContent
}

func (r *MetaDescriptionRule) Impact() rules.Impact {
	return rules.ImpactMedium
}

func (r *MetaDescriptionRule) Evaluate(ctx context.Context, snap *page.Snapshot) (rules.Outcome, error) {
	desc := snap.Document.MetaDescription
	if desc == "" {
		return rules.WithRecommendation(
			rules.Fail(r, "Page has no meta description"),
			`Add <meta name="description" content="..."> to the document head`,
		), nil
	}
	if len(desc) > maxMetaDescriptionLength {
		return rules.Warn(r, fmt.Sprintf("Meta description is %d characters long (limit %d)", len(desc), maxMetaDescriptionLength)), nil
	}
	return rules.Pass(r, ""), nil
}

func init() {
	rules.Register(&MetaDescriptionRule{})
}
