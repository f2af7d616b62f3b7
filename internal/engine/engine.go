package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"sitemedic/internal/page"
	"sitemedic/internal/rules"
)

// DefaultConcurrency bounds how many rules evaluate at once when the caller
// does not say otherwise.
const DefaultConcurrency = 8

// Engine dispatches rules concurrently against one immutable snapshot and
// isolates each rule's failure. It guarantees one outcome per rule, in input
// order, regardless of which rules fail or panic.
type Engine struct {
	concurrency int
	logger      zerolog.Logger
}

func New(concurrency int, logger zerolog.Logger) *Engine {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Engine{concurrency: concurrency, logger: logger}
}

// Run evaluates every rule against snap. Completion order is unconstrained;
// the returned slice is re-sequenced to match the input order.
func (e *Engine) Run(ctx context.Context, rs []rules.Rule, snap *page.Snapshot) []rules.Outcome {
	outcomes := make([]rules.Outcome, len(rs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, r := range rs {
		i, r := i, r
		g.Go(func() error {
			outcomes[i] = e.evaluateOne(gctx, i, r, snap)
			return nil
		})
	}
	// Workers never return errors; faults are converted to outcomes.
	_ = g.Wait()

	return outcomes
}

// evaluateOne invokes a single rule and centralizes the fault-to-outcome
// translation: a returned error or a panic becomes a synthetic fail outcome
// instead of crossing into the fan-in step.
func (e *Engine) evaluateOne(ctx context.Context, pos int, r rules.Rule, snap *page.Snapshot) rules.Outcome {
	out, err := safeEvaluate(ctx, r, snap)
	if err != nil {
		e.logger.Warn().Str("rule", ruleID(r, pos)).Err(err).Msg("Rule evaluation failed")
		return faultOutcome(r, pos, err)
	}
	backfillIdentity(&out, r)
	return out
}

// safeEvaluate converts a panicking rule into an error return so the caller
// sees a single fallible call regardless of how the rule misbehaves.
func safeEvaluate(ctx context.Context, r rules.Rule, snap *page.Snapshot) (out rules.Outcome, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return r.Evaluate(ctx, snap)
}

// faultOutcome is the one place a rule fault becomes a result: status fail,
// score zero, high impact, bucketed under the general category.
func faultOutcome(r rules.Rule, pos int, err error) rules.Outcome {
	return rules.Outcome{
		RuleID:   ruleID(r, pos),
		Title:    ruleTitle(r),
		Status:   rules.StatusFail,
		Score:    rules.ScoreFail,
		Impact:   rules.ImpactHigh,
		Category: rules.CategoryGeneral,
		Message:  fmt.Sprintf("check error: %v", err),
		Testable: true,
		Errored:  true,
	}
}

// backfillIdentity stamps rule identity onto outcomes whose rule left it
// blank, so downstream consumers always see a well-formed record.
func backfillIdentity(out *rules.Outcome, r rules.Rule) {
	if out.RuleID == "" {
		out.RuleID = r.ID()
	}
	if out.Title == "" {
		out.Title = r.Title()
	}
	if out.Category == "" {
		out.Category = r.Category()
	}
	if out.Impact == "" {
		out.Impact = r.Impact()
	}
}

func ruleID(r rules.Rule, pos int) string {
	if r != nil {
		if id := r.ID(); id != "" {
			return id
		}
	}
	return fmt.Sprintf("check-%d", pos)
}

func ruleTitle(r rules.Rule) string {
	if r != nil {
		return r.Title()
	}
	return ""
}
