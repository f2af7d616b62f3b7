package checks

import (
	"context"

	"sitemedic/internal/page"
	"sitemedic/internal/rules"
)

// minCompressibleBytes is the body size under which compression buys nothing.
const minCompressibleBytes = 1024

type CompressionEnabledRule struct{}

func (r *CompressionEnabledRule) ID() string {
	return "compression-enabled"
}

func (r *CompressionEnabledRule) Title() string {
	return "Response Compression Enabled"
}

func (r *CompressionEnabledRule) Description() string {
	return "Verifies that the response body was served with a compressing content encoding."
}

func (r *CompressionEnabledRule) Category() rules.Category {
	return rules.CategoryTransfer
}

func (r *CompressionEnabledRule) Impact() rules.Impact {
	return rules.ImpactHigh
}

func (r *CompressionEnabledRule) Evaluate(ctx context.Context, snap *page.Snapshot) (rules.Outcome, error) {
	if snap.Weight.BodyBytes < minCompressibleBytes {
		return rules.NotApplicable(r, "Body too small for compression to matter"), nil
	}
	if !snap.Weight.Compressed {
		return rules.WithRecommendation(
			rules.Fail(r, "Response was served without compression"),
			"Enable gzip or brotli compression on the server",
		), nil
	}
	return rules.Pass(r, ""), nil
}

func init() {
	rules.Register(&CompressionEnabledRule{})
}
