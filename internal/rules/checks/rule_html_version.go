package checks

import (
	"context"
	"fmt"

	"sitemedic/internal/page"
	"sitemedic/internal/rules"
)

// HTMLVersionRule is informational: it reports the declared document version
// without passing or failing the page.
type HTMLVersionRule struct{}

func (r *HTMLVersionRule) ID() string {
	return "html-version"
}

func (r *HTMLVersionRule) Title() string {
	return "HTML Version"
}

func (r *HTMLVersionRule) Description() string {
	return "Reports the HTML version declared by the document's doctype."
}

func (r *HTMLVersionRule) Category() rules.Category {
	return rules.CategoryContent
}

func (r *HTMLVersionRule) Impact() rules.Impact {
	return rules.ImpactLow
}

func (r *HTMLVersionRule) Evaluate(ctx context.Context, snap *page.Snapshot) (rules.Outcome, error) {
	return rules.Info(r, fmt.Sprintf("Declared HTML version: %s", snap.Document.HTMLVersion)), nil
}

func init() {
	rules.Register(&HTMLVersionRule{})
}
