package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/davetashner/launchdash/internal/config"
)

// Config command flags.
var configShowFormat string

// configCmd is the parent command for config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect launchdash configuration",
	Long: `Inspect launchdash configuration.

Launchdash reads .launchdash.yaml (or .launchdash.toml) from the working
directory, or the file given by --config. LAUNCHDASH_* environment variables
override the file, and flags override both.`,
}

// configShowCmd prints the effective configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

// configValidateCmd checks the effective configuration.
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

// configGetCmd retrieves a configuration value by dot-notation key path.
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by dot-notation key path.

Examples:
  launchdash config get dataset
  launchdash config get server.addr
  launchdash config get columns`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

func init() {
	configShowCmd.Flags().StringVar(&configShowFormat, "format", "yaml", "output format: yaml or toml")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configGetCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := mergedConfig(config.Overrides{})
	if err != nil {
		return err
	}
	switch configShowFormat {
	case "yaml":
		return config.Write(cmd.OutOrStdout(), cfg)
	case "toml":
		return config.WriteTOML(cmd.OutOrStdout(), cfg)
	default:
		return exitError(ExitInvalidArgs, "launchdash: unsupported format %q (supported: yaml, toml)", configShowFormat)
	}
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := mergedConfig(config.Overrides{})
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return exitError(ExitInvalidArgs, "launchdash: %v", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s configuration is valid\n", color.GreenString("ok"))
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := mergedConfig(config.Overrides{})
	if err != nil {
		return err
	}
	val, err := config.GetValue(cfg, args[0])
	if err != nil {
		return exitError(ExitInvalidArgs, "launchdash: %v", err)
	}
	return printValue(cmd, val)
}

// printValue outputs a value: scalars as plain text, maps/slices as YAML.
func printValue(cmd *cobra.Command, val any) error {
	switch v := val.(type) {
	case map[string]any, []any:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), string(data))
	default:
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	return nil
}
