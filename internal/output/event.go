package output

import "sitemedic/internal/rules"

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line):
// - run.started
// - rule.result
// - run.finished
//
// JSON mode remains a single aggregate document written on Close.
type Event struct {
	Type     string         `json:"type"`
	URL      string         `json:"url,omitempty"`
	Result   *rules.Outcome `json:"result,omitempty"`
	Score    int            `json:"score,omitempty"`
	Rules    int            `json:"rules,omitempty"`
	ExitCode int            `json:"exit_code,omitempty"`
}

// RunStarted marks the beginning of a run.
func RunStarted(url string, ruleCount int) Event {
	return Event{Type: "run.started", URL: url, Rules: ruleCount}
}

// RunFinished marks the end of a run with the overall score and the
// process exit code.
func RunFinished(url string, score, exitCode int) Event {
	return Event{Type: "run.finished", URL: url, Score: score, ExitCode: exitCode}
}

func eventFromOutcome(o rules.Outcome) Event {
	return Event{Type: "rule.result", Result: &o}
}
