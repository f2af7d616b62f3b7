package rules

import (
	"context"

	"sitemedic/internal/page"
)

// Impact is the coarse severity weight of a rule, used only for scoring.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Category groups rule outcomes for per-category rollups.
type Category string

const (
	CategoryContent     Category = "content"
	CategoryPerformance Category = "performance"
	CategoryTransfer    Category = "transfer"
	CategorySecurity    Category = "security"

	// CategoryGeneral is the safe bucket for outcomes whose rule could not
	// report one, e.g. synthetic failures.
	CategoryGeneral Category = "general"
)

// KnownCategories lists every category in stable display order. Rollups
// always carry all of them, even when empty.
func KnownCategories() []Category {
	return []Category{
		CategoryContent,
		CategoryPerformance,
		CategoryTransfer,
		CategorySecurity,
		CategoryGeneral,
	}
}

type Rule interface {
	ID() string
	Title() string
	Description() string
	Category() Category
	Impact() Impact

	// Evaluate runs rule logic using only the snapshot.
	// Rules MUST NOT perform network requests.
	Evaluate(ctx context.Context, snap *page.Snapshot) (Outcome, error)
}
