package checker

import (
	"time"

	"sitemedic/internal/rules"
	"sitemedic/internal/score"
)

// Signals are the supplementary enrichment values attached to a run. They
// carry safe defaults when their collaborators fail.
type Signals struct {
	CarbonGrams  float64 `json:"carbon_grams"`
	CarbonModel  string  `json:"carbon_model"`
	GreenHosting bool    `json:"green_hosting"`
}

// RunResult is the terminal artifact of a successful run. It is created once,
// never mutated afterward, and owned by the caller that receives it.
type RunResult struct {
	URL        string                `json:"url"`
	StartedAt  time.Time             `json:"started_at"`
	Duration   time.Duration         `json:"duration"`
	Score      int                   `json:"score"`
	Categories []score.CategoryScore `json:"categories"`
	Outcomes   []rules.Outcome       `json:"outcomes"`
	Signals    Signals               `json:"signals"`
}

// Counts tallies outcome statuses across the whole run.
func (r *RunResult) Counts() (passed, failed, warned int) {
	for _, out := range r.Outcomes {
		switch out.Status {
		case rules.StatusPass:
			passed++
		case rules.StatusFail:
			failed++
		case rules.StatusWarn:
			warned++
		}
	}
	return passed, failed, warned
}

// ErrorCount reports how many outcomes are synthetic stand-ins for checks
// that errored or panicked.
func (r *RunResult) ErrorCount() int {
	n := 0
	for _, out := range r.Outcomes {
		if out.Errored {
			n++
		}
	}
	return n
}
