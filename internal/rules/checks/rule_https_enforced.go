package checks

import (
	"context"
	"net/url"
	"strings"

	"sitemedic/internal/page"
	"sitemedic/internal/rules"
)

type HTTPSEnforcedRule struct{}

func (r *HTTPSEnforcedRule) ID() string {
	return "https-enforced"
}

func (r *HTTPSEnforcedRule) Title() string {
	return "HTTPS Enforced"
}

func (r *HTTPSEnforcedRule) Description() string {
	return "Verifies that the page is ultimately served over HTTPS and references no insecure resources."
}

func (r *HTTPSEnforcedRule) Category() rules.Category {
	return rules.CategorySecurity
}

func (r *HTTPSEnforcedRule) Impact() rules.Impact {
	return rules.ImpactHigh
}

func (r *HTTPSEnforcedRule) Evaluate(ctx context.Context, snap *page.Snapshot) (rules.Outcome, error) {
	final, err := url.Parse(snap.Fetch.FinalURL)
	if err != nil || final.Scheme != "https" {
		return rules.WithRecommendation(
			rules.Fail(r, "Page is served over plain HTTP"),
			"Serve the page over HTTPS and redirect HTTP traffic to it",
		), nil
	}

	insecure := 0
	for _, res := range snap.Document.Resources {
		if strings.HasPrefix(strings.ToLower(res.URL), "http://") {
			insecure++
		}
	}
	if insecure > 0 {
		return rules.Warn(r, "Page references insecure http:// resources"), nil
	}
	return rules.Pass(r, ""), nil
}

func init() {
	rules.Register(&HTTPSEnforcedRule{})
}
