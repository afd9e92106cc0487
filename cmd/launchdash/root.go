package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	launchlog "github.com/davetashner/launchdash/internal/log"
)

// Global flag values.
var (
	verbose     bool
	quiet       bool
	noColor     bool
	logFormat   string
	configPath  string
	datasetPath string
)

// rootCmd is the base command for launchdash.
var rootCmd = &cobra.Command{
	Use:   "launchdash",
	Short: "Interactive dashboard over launch records",
	Long: `Launchdash loads a table of launch records and serves an interactive
dashboard: a site dropdown and a payload mass range drive a pie chart of
launch outcomes and a payload-versus-outcome scatter chart.

The same charts can be rendered once to HTML, JSON or Markdown, summarized
per site, exported as CSV, or queried by agents over MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if noColor {
			color.NoColor = true
		}
		launchlog.Setup(verbose, quiet, logFormat)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ./.launchdash.yaml or ./.launchdash.toml)")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "launch records CSV: a file path or s3://bucket/key")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(sitesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
