package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"sitemedic/internal/checker"
	"sitemedic/internal/config"
	"sitemedic/internal/fetch"
	"sitemedic/internal/flags"
	"sitemedic/internal/logger"
	"sitemedic/internal/output"
	"sitemedic/internal/rules"
	"sitemedic/internal/signals"
)

var cfg = config.New()
var cfgFile string
var consoleFilterStatus []string
var noHTTP2 bool

// Exit codes for the check command.
const (
	ExitOK      = 0
	ExitBelow   = 1
	ExitErrored = 2
	ExitFatal   = 3
)

var checkCmd = &cobra.Command{
	Use:   "check <url>",
	Short: "Fetch a page and run all compliance checks against it",
	Long: `Fetch a web page and evaluate it against the registered rule battery.

SiteMedic fetches the page exactly once, honoring robots.txt unless told
otherwise, parses it, and runs every selected rule against the same
immutable snapshot. Failing rules degrade the score; they never abort the
run.

Output:
	Console output is controlled by --console-format (default: text).
	Structured outputs can be written via:
	- --out / --out-format: write an aggregate JSON document or NDJSON stream to a file
	- --report: write a Markdown report
	- --no-console: suppress the console sink (use with --out/--report)

	NDJSON mode emits one JSON object per line. Objects are lifecycle Events
	with a "type" field (run.started, rule.result, run.finished).

Exit codes:
	0 = score at or above the fail threshold
	1 = score below the fail threshold
	2 = one or more checks errored
	3 = fatal error (page could not be fetched or parsed)

Examples:
  # Check a page
  sitemedic check https://example.com

  # Stream machine-readable events to a file
  sitemedic check https://example.com --out results.ndjson

  # Fail the build when the score drops under 80
  sitemedic check https://example.com --fail-threshold 80
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 && cmd.Flags().NFlag() == 0 {
			_ = cmd.Help()
			return
		}

		resolved, err := resolveConfig(cmd, args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(ExitFatal)
		}

		os.Exit(runCheck(context.Background(), resolved, os.Stdout))
	},
}

// resolveConfig merges the three configuration sources. Precedence, lowest
// to highest: built-in defaults, the optional YAML config file, explicitly
// set flags.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	resolved := cfg
	if cfgFile != "" {
		fileCfg := config.New()
		if err := config.Load(cfgFile, fileCfg); err != nil {
			return nil, err
		}
		applyFlagOverrides(cmd, fileCfg)
		resolved = fileCfg
	}
	if len(args) > 0 {
		resolved.Target.URL = args[0]
	}
	if noHTTP2 {
		resolved.Fetch.HTTP2 = false
	}

	resolved.Normalize()
	if err := resolved.Validate(); err != nil {
		return nil, err
	}
	return resolved, nil
}

// applyFlagOverrides copies every explicitly set flag value from the
// flag-bound config onto dst, so flags beat config-file values.
func applyFlagOverrides(cmd *cobra.Command, dst *config.Config) {
	f := cmd.Flags()
	if f.Changed(flags.FlagRules) {
		dst.Rules.Selector = cfg.Rules.Selector
	}
	if f.Changed(flags.FlagCategories) {
		dst.Rules.Categories = cfg.Rules.Categories
	}
	if f.Changed(flags.FlagTimeout) {
		dst.Fetch.Timeout = cfg.Fetch.Timeout
	}
	if f.Changed(flags.FlagUserAgent) {
		dst.Fetch.UserAgent = cfg.Fetch.UserAgent
	}
	if f.Changed(flags.FlagMaxRedirects) {
		dst.Fetch.MaxRedirects = cfg.Fetch.MaxRedirects
	}
	if f.Changed(flags.FlagIgnoreRobots) {
		dst.Fetch.IgnoreRobots = cfg.Fetch.IgnoreRobots
	}
	if f.Changed(flags.FlagConsoleFormat) {
		dst.Output.ConsoleFormat = cfg.Output.ConsoleFormat
	}
	if f.Changed(flags.FlagReport) {
		dst.Output.Report = cfg.Output.Report
	}
	if f.Changed(flags.FlagOut) {
		dst.Output.Out = cfg.Output.Out
	}
	if f.Changed(flags.FlagOutFormat) {
		dst.Output.OutFormat = cfg.Output.OutFormat
	}
	if f.Changed(flags.FlagNoConsole) {
		dst.Output.NoConsole = cfg.Output.NoConsole
	}
	if f.Changed(flags.FlagConcurrency) {
		dst.Runtime.Concurrency = cfg.Runtime.Concurrency
	}
	if f.Changed(flags.FlagFailThreshold) {
		dst.Runtime.FailThreshold = cfg.Runtime.FailThreshold
	}
	if f.Changed(flags.FlagNoSignals) {
		dst.Signals.Disable = cfg.Signals.Disable
	}
	dst.Runtime.Verbose = cfg.Runtime.Verbose
}

// runCheck wires the pipeline from configuration and returns the process
// exit code. It is separated from the Cobra Run func so tests can drive it
// without exiting.
func runCheck(ctx context.Context, cfg *config.Config, stdout io.Writer) int {
	log := logger.New(logger.Options{Verbose: cfg.Runtime.Verbose})

	selected, err := selectRules(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitFatal
	}
	if len(selected) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no rules selected")
		return ExitFatal
	}

	manager, err := buildSinks(cfg, stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitFatal
	}

	client := fetch.NewClient(fetch.Options{
		Timeout:      cfg.Fetch.Timeout,
		UserAgent:    cfg.Fetch.UserAgent,
		MaxRedirects: cfg.Fetch.MaxRedirects,
		IgnoreRobots: cfg.Fetch.IgnoreRobots,
		EnableHTTP2:  cfg.Fetch.HTTP2,
	}, log)

	chk := checker.New(client, selected, checker.Options{
		Hosting:     hostingChecker(cfg, log),
		Concurrency: cfg.Runtime.Concurrency,
		Logger:      log,
	})

	_ = manager.Write(output.RunStarted(cfg.Target.URL, len(selected)))

	result, err := chk.Check(ctx, cfg.Target.URL)
	if err != nil {
		log.Error().Err(err).Str("url", cfg.Target.URL).Msg("Check failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_ = manager.Write(output.RunFinished(cfg.Target.URL, 0, ExitFatal))
		_ = manager.Close()
		return ExitFatal
	}

	for _, o := range result.Outcomes {
		_ = manager.Write(o)
	}
	_ = manager.Write(result)

	code := exitCode(cfg, result)
	_ = manager.Write(output.RunFinished(result.URL, result.Score, code))
	if err := manager.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if code == ExitOK {
			code = ExitFatal
		}
	}
	return code
}

func selectRules(cfg *config.Config) ([]rules.Rule, error) {
	var selected []rules.Rule
	if cfg.Rules.Selector != "" {
		resolved, err := rules.Resolve(cfg.Rules.Selector)
		if err != nil {
			return nil, err
		}
		selected = resolved
	} else {
		selected = rules.List()
	}

	if len(cfg.Rules.Categories) > 0 {
		cats, err := rules.ParseCategories(cfg.Rules.Categories)
		if err != nil {
			return nil, err
		}
		selected = rules.FilterByCategory(selected, cats)
	}
	return selected, nil
}

func buildSinks(cfg *config.Config, stdout io.Writer) (*output.Manager, error) {
	manager := output.NewManager()

	if !cfg.Output.NoConsole {
		statuses, err := rules.ParseStatuses(consoleFilterStatus)
		if err != nil {
			return nil, err
		}
		console := output.NewConsoleSink(stdout, cfg.Output.ConsoleFormat, statuses)
		if err := manager.AddSink(console); err != nil {
			return nil, err
		}
	}
	if cfg.Output.Out != "" {
		fileSink, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			return nil, err
		}
		if err := manager.AddSink(fileSink); err != nil {
			return nil, err
		}
	}
	if cfg.Output.Report != "" {
		reportSink, err := output.NewReportSink(cfg.Output.Report)
		if err != nil {
			return nil, err
		}
		if err := manager.AddSink(reportSink); err != nil {
			return nil, err
		}
	}
	return manager, nil
}

func hostingChecker(cfg *config.Config, log zerolog.Logger) signals.HostingChecker {
	if cfg.Signals.Disable {
		return nil
	}
	return signals.NewGreenChecker(cfg.Signals.GreencheckURL, log)
}

func exitCode(cfg *config.Config, result *checker.RunResult) int {
	if result.ErrorCount() > 0 {
		return ExitErrored
	}
	if result.Score < cfg.Runtime.FailThreshold {
		return ExitBelow
	}
	return ExitOK
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&cfgFile, flags.FlagConfig, "", "Path to a YAML config file")

	// Rules
	checkCmd.Flags().StringVar(&cfg.Rules.Selector, flags.FlagRules, "", "Comma-separated rule IDs to run (empty = all rules)")
	checkCmd.Flags().StringSliceVar(&cfg.Rules.Categories, flags.FlagCategories, nil, "Restrict to categories: content|performance|transfer|security|general (repeatable; comma-separated accepted)")

	// Fetch
	checkCmd.Flags().DurationVar(&cfg.Fetch.Timeout, flags.FlagTimeout, cfg.Fetch.Timeout, "Fetch timeout")
	checkCmd.Flags().StringVar(&cfg.Fetch.UserAgent, flags.FlagUserAgent, cfg.Fetch.UserAgent, "User-Agent header sent on every request")
	checkCmd.Flags().IntVar(&cfg.Fetch.MaxRedirects, flags.FlagMaxRedirects, cfg.Fetch.MaxRedirects, "Maximum redirect hops before giving up")
	checkCmd.Flags().BoolVar(&cfg.Fetch.IgnoreRobots, flags.FlagIgnoreRobots, false, "Fetch the page even when robots.txt disallows it")
	checkCmd.Flags().BoolVar(&noHTTP2, flags.FlagNoHTTP2, false, "Disable HTTP/2 on the fetch transport")

	// Output
	checkCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, cfg.Output.ConsoleFormat, "Console output format: text|json|ndjson")
	checkCmd.Flags().StringSliceVar(&consoleFilterStatus, flags.FlagConsoleFilterStatus, nil, "Filter console output by status (pass, fail, warn). Comma-separated.")
	checkCmd.Flags().StringVar(&cfg.Output.Report, flags.FlagReport, "", "Write a Markdown report to this path")
	checkCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this path")
	checkCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson (default: inferred from file extension)")
	checkCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --out/--report)")

	// Runtime
	checkCmd.Flags().IntVar(&cfg.Runtime.Concurrency, flags.FlagConcurrency, cfg.Runtime.Concurrency, "Concurrent rule evaluations")
	checkCmd.Flags().IntVar(&cfg.Runtime.FailThreshold, flags.FlagFailThreshold, cfg.Runtime.FailThreshold, "Exit with code 1 when the score drops below this value")

	// Signals
	checkCmd.Flags().BoolVar(&cfg.Signals.Disable, flags.FlagNoSignals, false, "Skip supplementary signal collection (carbon, green hosting)")
}
