package flags

// Package flags defines canonical CLI flag names shared across commands.
// Keeping these as constants helps avoid drift between Cobra flag wiring and
// other code paths that need to reference flags by name.
// IMPORTANT: These are flag *names* without leading dashes.
const (
	// Config
	FlagConfig = "config"

	// Rules
	FlagRules      = "rules"
	FlagCategories = "categories"

	// Fetch
	FlagTimeout      = "timeout"
	FlagUserAgent    = "user-agent"
	FlagMaxRedirects = "max-redirects"
	FlagIgnoreRobots = "ignore-robots"
	FlagNoHTTP2      = "no-http2"

	// Output
	FlagConsoleFormat       = "console-format"
	FlagConsoleFilterStatus = "console-filter-status"
	FlagReport              = "report"
	FlagOut                 = "out"
	FlagOutFormat           = "out-format"
	FlagNoConsole           = "no-console"

	// Runtime
	FlagConcurrency   = "concurrency"
	FlagFailThreshold = "fail-threshold"

	// Signals
	FlagNoSignals = "no-signals"
)
