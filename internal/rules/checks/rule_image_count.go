package checks

import (
	"context"
	"fmt"

	"sitemedic/internal/page"
	"sitemedic/internal/rules"
)

const (
	warnImageCount = 30
	failImageCount = 80
)

type ImageCountRule struct{}

func (r *ImageCountRule) ID() string {
	return "image-count"
}

func (r *ImageCountRule) Title() string {
	return "Image Count Budget"
}

func (r *ImageCountRule) Description() string {
	return "Verifies that the page does not embed an excessive number of images."
}

func (r *ImageCountRule) Category() rules.Category {
	return rules.CategoryPerformance
}

func (r *ImageCountRule) Impact() rules.Impact {
	return rules.ImpactLow
}

func (r *ImageCountRule) Evaluate(ctx context.Context, snap *page.Snapshot) (rules.Outcome, error) {
	images := snap.Weight.ResourceCounts[page.ResourceImage]
	switch {
	case images > failImageCount:
		return rules.Fail(r, fmt.Sprintf("Page embeds %d images (budget %d)", images, failImageCount)), nil
	case images > warnImageCount:
		return rules.Warn(r, fmt.Sprintf("Page embeds %d images (budget %d)", images, warnImageCount)), nil
	default:
		return rules.Pass(r, ""), nil
	}
}

func init() {
	rules.Register(&ImageCountRule{})
}
