package checks

import (
	"testing"

	"sitemedic/internal/page"
	"sitemedic/internal/rules"
)

func TestHeadingStructureRule_Evaluate(t *testing.T) {
	rule := &HeadingStructureRule{}

	tests := []struct {
		name           string
		headings       map[int]int
		expectedStatus rules.Status
	}{
		{"Pass - Single H1", map[int]int{1: 1, 2: 3}, rules.StatusPass},
		{"Fail - No H1", map[int]int{2: 2}, rules.StatusFail},
		{"Warn - Multiple H1", map[int]int{1: 3}, rules.StatusWarn},
		{"Fail - No Headings At All", map[int]int{}, rules.StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapshotWith(&page.Document{Headings: tt.headings}, nil)
			requireStatus(t, evaluate(t, rule, snap), tt.expectedStatus)
		})
	}
}
