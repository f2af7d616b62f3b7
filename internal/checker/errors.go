package checker

import (
	"errors"
	"fmt"
)

// Stage names the pipeline stage a run failed in. Only fetch and parse can
// fail a run; rule faults are recovered into outcomes and signal failures
// are swallowed.
type Stage string

const (
	StageFetch Stage = "fetch"
	StageParse Stage = "parse"
)

// Error is the single failure channel out of Check: a stage tag plus the
// originating error. No partial result accompanies it.
type Error struct {
	Stage Stage
	URL   string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("check %s: %s stage: %v", e.URL, e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StageOf returns the failed stage, or "" if err is not a checker error.
func StageOf(err error) Stage {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Stage
	}
	return ""
}

// IsFetchError reports whether the run failed before reaching the page.
func IsFetchError(err error) bool {
	return StageOf(err) == StageFetch
}

// IsParseError reports whether the page was reached but could not be understood.
func IsParseError(err error) bool {
	return StageOf(err) == StageParse
}
