package score

import (
	"math"

	"sitemedic/internal/rules"
)

// CategoryScore is the per-category rollup. Counts cover every outcome in the
// category; Scored counts only those that contributed to the numeric score.
type CategoryScore struct {
	Category      rules.Category `json:"category"`
	Score         int            `json:"score"`
	Total         int            `json:"total"`
	Passed        int            `json:"passed"`
	Failed        int            `json:"failed"`
	Warned        int            `json:"warned"`
	NotApplicable int            `json:"not_applicable"`
	Scored        int            `json:"scored"`
}

// Summary is the aggregated verdict over one outcome set.
type Summary struct {
	Overall    int             `json:"overall"`
	Categories []CategoryScore `json:"categories"`
}

// Aggregate converts an outcome set into an overall 0-100 score and one score
// per category. It is a pure function of its input: scoring the same outcomes
// twice yields identical results.
//
// Only pass/warn/fail outcomes are scoreable. Each contributes its own score
// field weighted by impact; a category (or the whole run) with nothing
// scoreable defaults to 100 — absence of evidence is not evidence of failure.
func Aggregate(outcomes []rules.Outcome) Summary {
	perCategory := make(map[rules.Category]*categoryAccumulator)
	order := rules.KnownCategories()
	for _, c := range order {
		perCategory[c] = &categoryAccumulator{}
	}

	var overall weightedScore
	for _, out := range outcomes {
		acc, ok := perCategory[out.Category]
		if !ok {
			// Outcomes in unknown categories still get a rollup bucket,
			// appended after the known set in first-seen order.
			acc = &categoryAccumulator{}
			perCategory[out.Category] = acc
			order = append(order, out.Category)
		}

		acc.total++
		switch out.Status {
		case rules.StatusPass:
			acc.passed++
		case rules.StatusFail:
			acc.failed++
		case rules.StatusWarn:
			acc.warned++
		case rules.StatusNotApplicable:
			acc.notApplicable++
		}

		if !out.Status.Scoreable() {
			continue
		}
		w := weightFor(out.Impact)
		acc.score.add(out.Score, w)
		overall.add(out.Score, w)
	}

	summary := Summary{Overall: overall.value()}
	for _, c := range order {
		acc := perCategory[c]
		summary.Categories = append(summary.Categories, CategoryScore{
			Category:      c,
			Score:         acc.score.value(),
			Total:         acc.total,
			Passed:        acc.passed,
			Failed:        acc.failed,
			Warned:        acc.warned,
			NotApplicable: acc.notApplicable,
			Scored:        acc.score.count,
		})
	}
	return summary
}

type categoryAccumulator struct {
	total         int
	passed        int
	failed        int
	warned        int
	notApplicable int
	score         weightedScore
}

type weightedScore struct {
	sum       float64
	weightSum float64
	count     int
}

func (w *weightedScore) add(score, weight int) {
	w.sum += float64(score) * float64(weight)
	w.weightSum += float64(weight)
	w.count++
}

func (w *weightedScore) value() int {
	if w.weightSum == 0 {
		return 100
	}
	return int(math.Round(w.sum / w.weightSum))
}

func weightFor(impact rules.Impact) int {
	switch impact {
	case rules.ImpactHigh:
		return 3
	case rules.ImpactMedium:
		return 2
	case rules.ImpactLow:
		return 1
	default:
		// Unknown impact weighs like low.
		return 1
	}
}
