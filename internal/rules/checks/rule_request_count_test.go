package checks

import (
	"testing"

	"sitemedic/internal/page"
	"sitemedic/internal/rules"
)

func TestRequestCountRule_Evaluate(t *testing.T) {
	rule := &RequestCountRule{}

	tests := []struct {
		name           string
		resources      int
		expectedStatus rules.Status
	}{
		{"Pass - Few Resources", 10, rules.StatusPass},
		{"Pass - At Warn Budget", warnRequestCount, rules.StatusPass},
		{"Warn - Over Warn Budget", warnRequestCount + 1, rules.StatusWarn},
		{"Fail - Over Fail Budget", failRequestCount + 1, rules.StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &page.Document{Resources: repeatRefs(page.ResourceScript, "/app.js", tt.resources)}
			snap := snapshotWith(doc, nil)
			requireStatus(t, evaluate(t, rule, snap), tt.expectedStatus)
		})
	}
}
