package checks

import (
	"context"
	"fmt"

	"sitemedic/internal/page"
	"sitemedic/internal/rules"
)

// Third-party share thresholds as a fraction of all referenced resources.
const (
	warnThirdPartyShare = 0.3
	failThirdPartyShare = 0.6
)

type ThirdPartyShareRule struct{}

func (r *ThirdPartyShareRule) ID() string {
	return "third-party-share"
}

func (r *ThirdPartyShareRule) Title() string {
	return "Third-Party Resource Share"
}

func (r *ThirdPartyShareRule) Description() string {
	return "Verifies that most referenced resources are served first party."
}

func (r *ThirdPartyShareRule) Category() rules.Category {
	return rules.CategoryPerformance
}

func (r *ThirdPartyShareRule) Impact() rules.Impact {
	return rules.ImpactMedium
}

func (r *ThirdPartyShareRule) Evaluate(ctx context.Context, snap *page.Snapshot) (rules.Outcome, error) {
	total := snap.Weight.TotalResources
	if total == 0 {
		return rules.NotApplicable(r, "Page references no external resources"), nil
	}

	share := float64(snap.Weight.ThirdParty) / float64(total)
	msg := fmt.Sprintf("%d of %d resources (%.0f%%) are third party", snap.Weight.ThirdParty, total, share*100)
	switch {
	case share > failThirdPartyShare:
		return rules.WithRecommendation(
			rules.Fail(r, msg),
			"Self-host assets or cut third-party embeds",
		), nil
	case share > warnThirdPartyShare:
		return rules.Warn(r, msg), nil
	default:
		return rules.Pass(r, msg), nil
	}
}

func init() {
	rules.Register(&ThirdPartyShareRule{})
}
