package checker

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"sitemedic/internal/engine"
	"sitemedic/internal/fetch"
	"sitemedic/internal/page"
	"sitemedic/internal/rules"
	"sitemedic/internal/score"
	"sitemedic/internal/signals"
)

// Options tunes the optional parts of a Checker.
type Options struct {
	// Hosting resolves the green-hosting signal. Nil leaves it false.
	Hosting signals.HostingChecker

	// Concurrency bounds parallel rule evaluation.
	Concurrency int

	Logger zerolog.Logger
}

// Checker composes retrieval, parsing, rule execution and scoring into one
// fallible operation from URL to RunResult. Every failure path returns a
// tagged *Error; no panic crosses the Check boundary.
type Checker struct {
	client  *fetch.Client
	rules   []rules.Rule
	engine  *engine.Engine
	hosting signals.HostingChecker
	logger  zerolog.Logger
}

// New builds a Checker over a fetch client and an ordered rule list. The
// caller supplies the rules; the checker does not discover them.
func New(client *fetch.Client, rs []rules.Rule, opts Options) *Checker {
	return &Checker{
		client:  client,
		rules:   rs,
		engine:  engine.New(opts.Concurrency, opts.Logger),
		hosting: opts.Hosting,
		logger:  opts.Logger,
	}
}

// Check runs the full pipeline for one URL:
// fetch -> parse -> analyze -> score, plus supplementary signals.
//
// A fetch or parse failure aborts the run with no partial result. Failing
// rules only degrade the result; they never abort it.
func (c *Checker) Check(ctx context.Context, rawURL string) (*RunResult, error) {
	startedAt := time.Now()

	c.logger.Debug().Str("url", rawURL).Msg("Fetching")
	outcome, err := c.client.Fetch(ctx, rawURL)
	if err != nil {
		return nil, &Error{Stage: StageFetch, URL: rawURL, Err: err}
	}

	c.logger.Debug().Str("url", rawURL).Int("status", outcome.StatusCode).Msg("Parsing")
	doc, err := c.parse(outcome)
	if err != nil {
		return nil, &Error{Stage: StageParse, URL: rawURL, Err: err}
	}

	c.logger.Debug().Str("url", rawURL).Int("rules", len(c.rules)).Msg("Analyzing")
	snap := page.NewSnapshot(rawURL, outcome, doc)
	outcomes := c.engine.Run(ctx, c.rules, snap)

	c.logger.Debug().Str("url", rawURL).Msg("Scoring")
	summary := score.Aggregate(outcomes)

	result := &RunResult{
		URL:        rawURL,
		StartedAt:  startedAt,
		Duration:   time.Since(startedAt),
		Score:      summary.Overall,
		Categories: summary.Categories,
		Outcomes:   outcomes,
		Signals:    c.collectSignals(ctx, outcome),
	}

	c.logger.Info().
		Str("url", rawURL).
		Int("score", result.Score).
		Dur("duration", result.Duration).
		Msg("Check completed")
	return result, nil
}

// parse normalizes every parser failure, including panics the parser itself
// did not declare, into a plain error for the parse stage.
func (c *Checker) parse(outcome *fetch.Outcome) (doc *page.Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = &page.ParseError{Err: fmt.Errorf("parser panic: %v", rec)}
		}
	}()

	var base *url.URL
	if u, uerr := url.Parse(outcome.FinalURL); uerr == nil {
		base = u
	}
	return page.Parse(outcome.Body, base)
}

// collectSignals gathers the enrichment values. A failing collaborator is
// replaced by its safe default, never surfaced as an error.
func (c *Checker) collectSignals(ctx context.Context, outcome *fetch.Outcome) Signals {
	carbon := signals.EstimateTransferCarbon(outcome.BodyBytes)
	s := Signals{
		CarbonGrams: carbon.Grams,
		CarbonModel: carbon.Model,
	}

	if c.hosting != nil {
		s.GreenHosting = c.greenHosting(ctx, outcome)
	}
	return s
}

func (c *Checker) greenHosting(ctx context.Context, outcome *fetch.Outcome) (green bool) {
	defer func() {
		if rec := recover(); rec != nil {
			c.logger.Debug().Interface("panic", rec).Msg("Green hosting lookup panicked, defaulting to false")
			green = false
		}
	}()

	u, err := url.Parse(outcome.FinalURL)
	if err != nil {
		return false
	}
	return c.hosting.IsGreen(ctx, u.Hostname())
}
