package checks

import (
	"context"
	"fmt"

	"sitemedic/internal/page"
	"sitemedic/internal/rules"
)

// maxTitleLength is the point past which search engines truncate titles.
const maxTitleLength = 70

type TitleExistsRule struct{}

func (r *TitleExistsRule) ID() string {
	return "title-exists"
}

func (r *TitleExistsRule) Title() string {
	return "Page Title Exists"
}

func (r *TitleExistsRule) Description() string {
	return "Verifies that the page declares a non-empty, reasonably sized title."
}

func (r *TitleExistsRule) Category() rules.Category {
	return rules.CategoryContent
}

func (r *TitleExistsRule) Impact() rules.Impact {
	return rules.ImpactHigh
}

func (r *TitleExistsRule) Evaluate(ctx context.Context, snap *page.Snapshot) (rules.Outcome, error) {
	title := snap.Document.Title
	if title == "" {
		return rules.WithRecommendation(
			rules.Fail(r, "Page has no <title>"),
			"Add a descriptive <title> element to the document head",
		), nil
	}
	if len(title) > maxTitleLength {
		return rules.Warn(r, fmt.Sprintf("Title is %d characters long (limit %d)", len(title), maxTitleLength)), nil
	}
	return rules.Pass(r, ""), nil
}

func init() {
	rules.Register(&TitleExistsRule{})
}
