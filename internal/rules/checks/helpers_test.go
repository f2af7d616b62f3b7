package checks

import (
	"context"
	"testing"

	"sitemedic/internal/fetch"
	"sitemedic/internal/page"
	"sitemedic/internal/rules"
)

// snapshotWith builds a snapshot around a document and derives weight metrics
// the same way the orchestrator does.
func snapshotWith(doc *page.Document, outcome *fetch.Outcome) *page.Snapshot {
	if outcome == nil {
		outcome = &fetch.Outcome{FinalURL: "https://example.com/", Headers: map[string]string{}}
	}
	if doc == nil {
		doc = &page.Document{Headings: map[int]int{}}
	}
	return page.NewSnapshot(outcome.RequestedURL, outcome, doc)
}

func evaluate(t *testing.T, r rules.Rule, snap *page.Snapshot) rules.Outcome {
	t.Helper()
	out, err := r.Evaluate(context.Background(), snap)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	return out
}

func requireStatus(t *testing.T, out rules.Outcome, want rules.Status) {
	t.Helper()
	if out.Status != want {
		t.Fatalf("expected status %s, got %s (message: %s)", want, out.Status, out.Message)
	}
}

// repeatRefs builds n resource references of one type.
func repeatRefs(t page.ResourceType, url string, n int) []page.ResourceRef {
	refs := make([]page.ResourceRef, n)
	for i := range refs {
		refs[i] = page.ResourceRef{Type: t, URL: url}
	}
	return refs
}
