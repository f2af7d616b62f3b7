package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"sitemedic/internal/checker"
	"sitemedic/internal/rules"
	"sitemedic/internal/score"
)

func init() {
	color.NoColor = true
}

func sampleResult() *checker.RunResult {
	return &checker.RunResult{
		URL:       "https://example.com",
		StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Duration:  420 * time.Millisecond,
		Score:     67,
		Categories: []score.CategoryScore{
			{Category: rules.CategoryContent, Score: 100, Total: 1, Passed: 1, Scored: 1},
			{Category: rules.CategoryPerformance, Score: 50, Total: 1, Warned: 1, Scored: 1},
			{Category: rules.CategorySecurity, Score: 0, Total: 1, Failed: 1, Scored: 1},
		},
		Outcomes: []rules.Outcome{
			{RuleID: "title-exists", Title: "Page has a title", Status: rules.StatusPass, Score: 100, Impact: rules.ImpactHigh, Category: rules.CategoryContent, Testable: true},
			{RuleID: "page-weight", Title: "Page weight", Status: rules.StatusWarn, Score: 50, Message: "page is heavy", Recommendation: "trim assets", Impact: rules.ImpactHigh, Category: rules.CategoryPerformance, Testable: true},
			{RuleID: "https-enforced", Title: "HTTPS enforced", Status: rules.StatusFail, Score: 0, Message: "served over http", Impact: rules.ImpactHigh, Category: rules.CategorySecurity, Testable: true},
		},
		Signals: checker.Signals{CarbonGrams: 0.35, CarbonModel: "swd", GreenHosting: true},
	}
}

func TestConsoleTextMode(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, "text", nil)

	res := sampleResult()
	for _, o := range res.Outcomes {
		if err := sink.Write(o); err != nil {
			t.Fatalf("write outcome: %v", err)
		}
	}
	if err := sink.Write(res); err != nil {
		t.Fatalf("write result: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"PASS", "title-exists",
		"WARN", "page-weight - page is heavy", "trim assets",
		"FAIL", "https-enforced - served over http",
		"Score: 67/100",
		"1 passed, 1 failed, 1 warnings",
		"green hosting",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConsoleTextFilter(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, "text", []rules.Status{rules.StatusFail})

	res := sampleResult()
	for _, o := range res.Outcomes {
		if err := sink.Write(o); err != nil {
			t.Fatal(err)
		}
	}
	out := buf.String()
	if strings.Contains(out, "title-exists") {
		t.Errorf("pass outcome should be filtered:\n%s", out)
	}
	if !strings.Contains(out, "https-enforced") {
		t.Errorf("fail outcome missing:\n%s", out)
	}
}

func TestConsoleJSONMode(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, "json", nil)

	res := sampleResult()
	for _, o := range res.Outcomes {
		if err := sink.Write(o); err != nil {
			t.Fatal(err)
		}
	}
	if err := sink.Write(res); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("json mode must not emit before Close, got %q", buf.String())
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	var decoded checker.RunResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Score != 67 || len(decoded.Outcomes) != 3 {
		t.Fatalf("unexpected decoded result: score=%d outcomes=%d", decoded.Score, len(decoded.Outcomes))
	}
}

func TestConsoleNDJSONMode(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, "ndjson", nil)

	if err := sink.Write(RunStarted("https://example.com", 3)); err != nil {
		t.Fatal(err)
	}
	res := sampleResult()
	for _, o := range res.Outcomes {
		if err := sink.Write(o); err != nil {
			t.Fatal(err)
		}
	}
	if err := sink.Write(RunFinished("https://example.com", 67, 1)); err != nil {
		t.Fatal(err)
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), buf.String())
	}

	var first Event
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if first.Type != "run.started" || first.Rules != 3 {
		t.Fatalf("bad first event: %+v", first)
	}

	var last Event
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &last); err != nil {
		t.Fatal(err)
	}
	if last.Type != "run.finished" || last.Score != 67 || last.ExitCode != 1 {
		t.Fatalf("bad last event: %+v", last)
	}

	var mid Event
	if err := json.Unmarshal([]byte(lines[1]), &mid); err != nil {
		t.Fatal(err)
	}
	if mid.Type != "rule.result" || mid.Result == nil || mid.Result.RuleID != "title-exists" {
		t.Fatalf("bad rule.result event: %+v", mid)
	}
}

func TestConsoleUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, "yaml", nil)
	if err := sink.Write(rules.Outcome{}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
