package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"sitemedic/internal/checker"
	"sitemedic/internal/rules"
)

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
	infoColor = color.New(color.FgCyan)
	dimColor  = color.New(color.Faint)
)

type ConsoleSink struct {
	writer          io.Writer
	format          string // "text", "json", "ndjson"
	mu              sync.Mutex
	result          *checker.RunResult
	allowedStatuses map[rules.Status]bool
}

// NewConsoleSink writes run progress and the final summary to w. In text
// mode, filterStatuses restricts which outcome lines are printed; the
// summary is always printed.
func NewConsoleSink(w io.Writer, format string, filterStatuses []rules.Status) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}

	s := &ConsoleSink{
		writer: w,
		format: format,
	}

	if len(filterStatuses) > 0 {
		s.allowedStatuses = make(map[rules.Status]bool)
		for _, st := range filterStatuses {
			s.allowedStatuses[st] = true
		}
	}

	return s
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.format {
	case "json":
		if r, ok := v.(*checker.RunResult); ok {
			s.result = r
		}
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case Event:
			if err := encoder.Encode(t); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case rules.Outcome:
			if err := encoder.Encode(eventFromOutcome(t)); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	case "text":
		switch t := v.(type) {
		case rules.Outcome:
			return s.printOutcome(t)
		case *checker.RunResult:
			return s.printSummary(t)
		default:
			return nil
		}
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) printOutcome(o rules.Outcome) error {
	if len(s.allowedStatuses) > 0 && !s.allowedStatuses[o.Status] {
		return nil
	}

	label := statusColor(o.Status).Sprintf("%-14s", strings.ToUpper(string(o.Status)))
	if _, err := fmt.Fprintf(s.writer, "%s %s", label, o.RuleID); err != nil {
		return err
	}
	if o.Message != "" {
		if _, err := fmt.Fprintf(s.writer, " - %s", o.Message); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(s.writer); err != nil {
		return err
	}
	if o.Recommendation != "" && (o.Status == rules.StatusFail || o.Status == rules.StatusWarn) {
		if _, err := fmt.Fprintf(s.writer, "               %s\n", dimColor.Sprint(o.Recommendation)); err != nil {
			return err
		}
	}
	return flushIfPossible(s.writer)
}

func (s *ConsoleSink) printSummary(r *checker.RunResult) error {
	printf := func(format string, args ...any) error {
		_, err := fmt.Fprintf(s.writer, format, args...)
		return err
	}

	if err := printf("\n%s\n", r.URL); err != nil {
		return err
	}
	for _, cat := range r.Categories {
		if err := printf("  %-12s %s\n", cat.Category, scoreColor(cat.Score).Sprintf("%3d", cat.Score)); err != nil {
			return err
		}
	}

	passed, failed, warned := r.Counts()
	if err := printf("  %d passed, %d failed, %d warnings\n", passed, failed, warned); err != nil {
		return err
	}
	if r.Signals.CarbonModel != "" {
		hosting := "grey hosting"
		if r.Signals.GreenHosting {
			hosting = "green hosting"
		}
		if err := printf("  ~%.2f g CO2 per view, %s\n", r.Signals.CarbonGrams, hosting); err != nil {
			return err
		}
	}
	if err := printf("\nScore: %s\n", scoreColor(r.Score).Sprintf("%d/100", r.Score)); err != nil {
		return err
	}
	return flushIfPossible(s.writer)
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		if s.result == nil {
			return nil
		}
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s.result); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	}
	if s.format != "text" && s.format != "ndjson" {
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
	return nil
}

func statusColor(st rules.Status) *color.Color {
	switch st {
	case rules.StatusPass:
		return passColor
	case rules.StatusFail:
		return failColor
	case rules.StatusWarn:
		return warnColor
	default:
		return infoColor
	}
}

func scoreColor(score int) *color.Color {
	switch {
	case score >= 80:
		return passColor
	case score >= 50:
		return warnColor
	default:
		return failColor
	}
}
