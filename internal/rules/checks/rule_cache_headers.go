package checks

import (
	"context"
	"strings"

	"sitemedic/internal/page"
	"sitemedic/internal/rules"
)

type CacheHeadersRule struct{}

func (r *CacheHeadersRule) ID() string {
	return "cache-headers"
}

func (r *CacheHeadersRule) Title() string {
	return "Caching Headers Present"
}

func (r *CacheHeadersRule) Description() string {
	return "Verifies that the response allows clients to cache it."
}

func (r *CacheHeadersRule) Category() rules.Category {
	return rules.CategoryTransfer
}

func (r *CacheHeadersRule) Impact() rules.Impact {
	return rules.ImpactMedium
}

func (r *CacheHeadersRule) Evaluate(ctx context.Context, snap *page.Snapshot) (rules.Outcome, error) {
	cacheControl := snap.Fetch.Header("Cache-Control")
	expires := snap.Fetch.Header("Expires")

	if cacheControl == "" && expires == "" {
		return rules.WithRecommendation(
			rules.Fail(r, "Response carries neither Cache-Control nor Expires"),
			"Set a Cache-Control header with an appropriate max-age",
		), nil
	}
	if strings.Contains(strings.ToLower(cacheControl), "no-store") {
		return rules.Warn(r, "Cache-Control: no-store prevents all caching"), nil
	}
	return rules.Pass(r, ""), nil
}

func init() {
	rules.Register(&CacheHeadersRule{})
}
