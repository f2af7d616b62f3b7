package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "sitemedic",
	Short: "Check a web page against content, performance, transfer and security rules",
	Long: `SiteMedic fetches a web page, runs a battery of compliance checks against
it, and reports a weighted score out of 100.

SiteMedic is read-only: it fetches the page once, honors robots.txt, and
never mutates anything on the target site.

Examples:
	# Show available commands and global flags
	sitemedic --help

	# Check a page
	sitemedic check https://example.com

	# List rules
	sitemedic rules list

	# Print build info
	sitemedic version

Output:
	By default, commands write human-readable output to stdout.
	The check command supports structured output (see "sitemedic check --help").`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, "verbose", false, "Enable verbose logging (prints every fetch and rule evaluation)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
