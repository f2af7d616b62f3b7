package checks

import (
	"testing"

	"sitemedic/internal/fetch"
	"sitemedic/internal/rules"
)

func TestPageWeightRule_Evaluate(t *testing.T) {
	rule := &PageWeightRule{}

	tests := []struct {
		name           string
		bodyBytes      int
		expectedStatus rules.Status
	}{
		{"Pass - Small Page", 100_000, rules.StatusPass},
		{"Pass - At Warn Budget", warnPageWeightBytes, rules.StatusPass},
		{"Warn - Over Warn Budget", warnPageWeightBytes + 1, rules.StatusWarn},
		{"Fail - Over Fail Budget", failPageWeightBytes + 1, rules.StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := &fetch.Outcome{FinalURL: "https://example.com/", BodyBytes: tt.bodyBytes}
			snap := snapshotWith(nil, outcome)
			requireStatus(t, evaluate(t, rule, snap), tt.expectedStatus)
		})
	}
}
