package rules

type Status string

const (
	StatusPass          Status = "pass"
	StatusFail          Status = "fail"
	StatusWarn          Status = "warn"
	StatusInfo          Status = "info"
	StatusNotApplicable Status = "not-applicable"
)

// KnownStatuses returns every status a rule outcome can carry.
func KnownStatuses() []Status {
	return []Status{StatusPass, StatusFail, StatusWarn, StatusInfo, StatusNotApplicable}
}

// Scoreable reports whether outcomes with this status take part in numeric
// aggregation. Info and not-applicable outcomes are counted but never scored.
func (s Status) Scoreable() bool {
	switch s {
	case StatusPass, StatusFail, StatusWarn:
		return true
	}
	return false
}

// Conventional scores per status. Rules are free to deviate; the aggregator
// trusts the outcome's Score field, not its status.
const (
	ScorePass = 100
	ScoreWarn = 50
	ScoreFail = 0
)

type Outcome struct {
	RuleID  string `json:"rule_id"`
	Title   string `json:"title"`
	Status  Status `json:"status"`
	Score   int    `json:"score"`
	Message string `json:"message,omitempty"`
	// Details carries free-form supporting detail for the verdict.
	Details        string   `json:"details,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
	References     []string `json:"references,omitempty"`
	Impact         Impact   `json:"impact"`
	Category       Category `json:"category"`
	// Testable is false for purely informational rules whose outcome cannot
	// meaningfully pass or fail.
	Testable bool `json:"testable"`
	// Errored is set on synthetic outcomes standing in for a rule that
	// returned an error or panicked.
	Errored bool `json:"errored,omitempty"`
}
