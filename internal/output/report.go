package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"sitemedic/internal/checker"
	"sitemedic/internal/rules"
)

// ReportSink renders a Markdown report of the run on Close.
type ReportSink struct {
	path         string
	file         *os.File
	mu           sync.Mutex
	result       *checker.RunResult
	exitCode     int
	haveExitCode bool
}

func NewReportSink(path string) (*ReportSink, error) {
	if path == "" {
		return nil, fmt.Errorf("report path required")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	return &ReportSink{
		path: path,
		file: f,
	}, nil
}

func (s *ReportSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t := v.(type) {
	case *checker.RunResult:
		s.result = t
	case Event:
		if t.Type == "run.finished" {
			s.exitCode = t.ExitCode
			s.haveExitCode = true
		}
	}
	return nil
}

func (s *ReportSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeErr := func(err error) error {
		_ = s.file.Close()
		return err
	}

	if s.result == nil {
		if _, err := fmt.Fprintln(s.file, "# Page Check Report\n\nNo result recorded."); err != nil {
			return writeErr(err)
		}
		return s.file.Close()
	}

	var sb strings.Builder
	r := s.result

	sb.WriteString("# Page Check Report\n\n")
	fmt.Fprintf(&sb, "- URL: %s\n", r.URL)
	fmt.Fprintf(&sb, "- Checked: %s\n", r.StartedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&sb, "- Duration: %s\n", r.Duration.Round(time.Millisecond))
	fmt.Fprintf(&sb, "- Score: **%d/100** (%s)\n", r.Score, verdict(r.Score))
	if s.haveExitCode {
		fmt.Fprintf(&sb, "- Exit code: %d\n", s.exitCode)
	}

	sb.WriteString("\n## Scores by Category\n\n")
	sb.WriteString("| Category | Score | Passed | Warned | Failed |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, cat := range r.Categories {
		fmt.Fprintf(&sb, "| %s | %d | %d | %d | %d |\n",
			cat.Category, cat.Score, cat.Passed, cat.Warned, cat.Failed)
	}

	failed, warned := splitProblems(r.Outcomes)
	if len(failed) > 0 {
		sb.WriteString("\n## Failures\n\n")
		writeProblemList(&sb, failed)
	}
	if len(warned) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		writeProblemList(&sb, warned)
	}
	if len(failed) == 0 && len(warned) == 0 {
		sb.WriteString("\nNo failures or warnings.\n")
	}

	if r.Signals.CarbonModel != "" {
		sb.WriteString("\n## Signals\n\n")
		fmt.Fprintf(&sb, "- Estimated transfer carbon: %.3f g CO2 per page view (%s model)\n",
			r.Signals.CarbonGrams, r.Signals.CarbonModel)
		fmt.Fprintf(&sb, "- Green hosting: %s\n", yesNo(r.Signals.GreenHosting))
	}

	if _, err := s.file.WriteString(sb.String()); err != nil {
		return writeErr(err)
	}
	return s.file.Close()
}

func splitProblems(outcomes []rules.Outcome) (failed, warned []rules.Outcome) {
	for _, o := range outcomes {
		switch o.Status {
		case rules.StatusFail:
			failed = append(failed, o)
		case rules.StatusWarn:
			warned = append(warned, o)
		}
	}
	sort.Slice(failed, func(i, j int) bool { return failed[i].RuleID < failed[j].RuleID })
	sort.Slice(warned, func(i, j int) bool { return warned[i].RuleID < warned[j].RuleID })
	return failed, warned
}

func writeProblemList(sb *strings.Builder, outcomes []rules.Outcome) {
	for _, o := range outcomes {
		fmt.Fprintf(sb, "### %s (%s impact)\n\n", o.Title, o.Impact)
		fmt.Fprintf(sb, "%s\n", o.Message)
		if o.Details != "" {
			fmt.Fprintf(sb, "\n%s\n", o.Details)
		}
		if o.Recommendation != "" {
			fmt.Fprintf(sb, "\n> %s\n", o.Recommendation)
		}
		for _, ref := range o.References {
			fmt.Fprintf(sb, "\n- <%s>\n", ref)
		}
		sb.WriteString("\n")
	}
}

func verdict(score int) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 80:
		return "good"
	case score >= 50:
		return "needs work"
	}
	return "poor"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
