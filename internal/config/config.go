// Package config holds the resolved run configuration for a sitemedic
// invocation. Values come from CLI flags, optionally overlaid with a
// YAML config file, and are validated before the run starts.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Console output formats.
const (
	ConsoleFormatText   = "text"
	ConsoleFormatJSON   = "json"
	ConsoleFormatNDJSON = "ndjson"
)

// Structured output file formats.
const (
	OutFormatJSON    = "json"
	OutFormatNDJSON  = "ndjson"
	OutFormatUnknown = ""
)

// Defaults applied by New.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultMaxRedirects  = 10
	DefaultConcurrency   = 8
	DefaultFailThreshold = 50
	DefaultUserAgent     = "sitemedic/1.0"
	DefaultConsoleFormat = ConsoleFormatText
	DefaultGreencheckURL = "https://api.thegreenwebfoundation.org"
)

// Target identifies the page to check.
type Target struct {
	URL string `yaml:"url" validate:"required,url"`
}

// Rules selects which checks run.
type Rules struct {
	// Selector is a comma-separated list of rule IDs; empty means all.
	Selector string `yaml:"selector"`
	// Categories restricts the run to the named categories.
	Categories []string `yaml:"categories" validate:"dive,oneof=content performance transfer security general"`
}

// Fetch controls HTTP retrieval of the target page.
type Fetch struct {
	Timeout      time.Duration `yaml:"timeout" validate:"gt=0"`
	UserAgent    string        `yaml:"user_agent" validate:"required"`
	MaxRedirects int           `yaml:"max_redirects" validate:"gte=0"`
	IgnoreRobots bool          `yaml:"ignore_robots"`
	HTTP2        bool          `yaml:"http2"`
}

// Output controls where and how results are emitted.
type Output struct {
	ConsoleFormat string `yaml:"console_format" validate:"oneof=text json ndjson"`
	Out           string `yaml:"out"`
	OutFormat     string `yaml:"out_format" validate:"omitempty,oneof=json ndjson"`
	Report        string `yaml:"report"`
	NoConsole     bool   `yaml:"no_console"`
}

// Runtime holds execution knobs that are not about any single stage.
type Runtime struct {
	Concurrency   int  `yaml:"concurrency" validate:"gt=0"`
	FailThreshold int  `yaml:"fail_threshold" validate:"gte=0,lte=100"`
	Verbose       bool `yaml:"verbose"`
}

// Signals controls supplementary signal collection.
type Signals struct {
	GreencheckURL string `yaml:"greencheck_url" validate:"omitempty,url"`
	Disable       bool   `yaml:"disable"`
}

// Config is the full resolved configuration for one run.
type Config struct {
	Target  Target  `yaml:"target"`
	Rules   Rules   `yaml:"rules"`
	Fetch   Fetch   `yaml:"fetch"`
	Output  Output  `yaml:"output"`
	Runtime Runtime `yaml:"runtime"`
	Signals Signals `yaml:"signals"`
}

// New returns a Config with defaults applied. The target URL must still
// be set by the caller.
func New() *Config {
	return &Config{
		Fetch: Fetch{
			Timeout:      DefaultTimeout,
			UserAgent:    DefaultUserAgent,
			MaxRedirects: DefaultMaxRedirects,
			HTTP2:        true,
		},
		Output: Output{
			ConsoleFormat: DefaultConsoleFormat,
		},
		Runtime: Runtime{
			Concurrency:   DefaultConcurrency,
			FailThreshold: DefaultFailThreshold,
		},
		Signals: Signals{
			GreencheckURL: DefaultGreencheckURL,
		},
	}
}

// Load reads a YAML config file and overlays it on top of cfg, so file
// values win over defaults but flag handling can still override after.
func Load(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Normalize canonicalizes enum-like fields and infers derived values.
// Call before Validate.
func (c *Config) Normalize() {
	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
	for i, cat := range c.Rules.Categories {
		c.Rules.Categories[i] = normalizeEnumValue(cat)
	}
	if c.Output.Out != "" && c.Output.OutFormat == OutFormatUnknown {
		c.Output.OutFormat = inferOutFormat(c.Output.Out)
	}
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("invalid config: field %s failed %q", e.Namespace(), e.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// RuleIDs returns the selector as a cleaned list of rule IDs.
func (c *Config) RuleIDs() []string {
	return splitCommaList([]string{c.Rules.Selector})
}

func normalizeEnumValue(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func inferOutFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ndjson", ".jsonl":
		return OutFormatNDJSON
	case ".json":
		return OutFormatJSON
	}
	return OutFormatJSON
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
