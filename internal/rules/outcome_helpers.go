package rules

// NewOutcome stamps an outcome with the rule's identity so individual rules
// only fill in status, score and message.
func NewOutcome(r Rule, status Status, score int, message string) Outcome {
	out := Outcome{
		Status:   status,
		Score:    score,
		Testable: true,
	}
	if message != "" {
		out.Message = message
	}
	if r != nil {
		out.RuleID = r.ID()
		out.Title = r.Title()
		out.Category = r.Category()
		out.Impact = r.Impact()
	}
	return out
}

func Pass(r Rule, message string) Outcome {
	return NewOutcome(r, StatusPass, ScorePass, message)
}

func Warn(r Rule, message string) Outcome {
	return NewOutcome(r, StatusWarn, ScoreWarn, message)
}

func Fail(r Rule, message string) Outcome {
	return NewOutcome(r, StatusFail, ScoreFail, message)
}

func Info(r Rule, message string) Outcome {
	out := NewOutcome(r, StatusInfo, 0, message)
	out.Testable = false
	return out
}

func NotApplicable(r Rule, message string) Outcome {
	out := NewOutcome(r, StatusNotApplicable, 0, message)
	out.Testable = false
	return out
}

func WithRecommendation(out Outcome, recommendation string) Outcome {
	out.Recommendation = recommendation
	return out
}

func WithDetails(out Outcome, details string) Outcome {
	out.Details = details
	return out
}

func WithReferences(out Outcome, refs ...string) Outcome {
	out.References = append(out.References, refs...)
	return out
}
