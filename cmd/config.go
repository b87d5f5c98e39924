package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/spiffcs/teamping/config"
)

// NewCmdConfig creates the config command with subcommands.
func NewCmdConfig(opts *Options) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		Long: `Show or manage configuration.

When run without arguments, shows the current merged configuration.

Subcommands:
  init      Create a starter config file
  path      Show the config file location
  show      Show current merged config (same as bare 'teamping config')`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, opts, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	cmd.AddCommand(NewCmdConfigInit(opts))
	cmd.AddCommand(NewCmdConfigPath())
	cmd.AddCommand(NewCmdConfigShow(opts))

	return cmd
}

// NewCmdConfigInit creates the config init subcommand.
func NewCmdConfigInit(opts *Options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter config file",
		Long: `Create a starter config file in ./.teamping.yaml, or at the path given
with --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd.OutOrStdout(), opts.ConfigPath, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

// NewCmdConfigPath creates the config path subcommand.
func NewCmdConfigPath() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file location",
		Long:  `Show the path to the local config file and whether it exists.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigPath(cmd.OutOrStdout())
		},
	}
}

// NewCmdConfigShow creates the config show subcommand.
func NewCmdConfigShow(opts *Options) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current merged configuration",
		Long: `Show the configuration after merging defaults, the config file, INPUT_*
environment variables and flags. The token is never printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, opts, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	return cmd
}

func runConfigInit(w io.Writer, path string, force bool) error {
	if path == "" {
		path = config.LocalConfigPath()
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse 'teamping config show' to view current config", path)
	}

	if err := config.SaveTo(path, config.MinimalConfig()); err != nil {
		return err
	}

	fmt.Fprintf(w, "Created config file: %s\n\n", path)
	fmt.Fprintln(w, "Edit this file to set the organization, team and project board.")
	fmt.Fprintln(w, "The token is read from INPUT_TOKEN or GITHUB_TOKEN, never from this file.")

	return nil
}

func runConfigPath(w io.Writer) error {
	paths := config.GetConfigPaths()

	status := "not found"
	if paths.LocalExists {
		status = "exists"
	}

	fmt.Fprintln(w, "Configuration file location:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Local: %s (%s)\n", paths.LocalPath, status)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Load order: defaults -> config file -> INPUT_* environment -> flags")

	return nil
}

func runConfigShow(cmd *cobra.Command, opts *Options, format string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch format {
	case "yaml":
		yamlStr, err := cfg.ToYAML()
		if err != nil {
			return err
		}
		fmt.Fprint(w, yamlStr)
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	default:
		return fmt.Errorf("invalid format: %s (must be yaml or json)", format)
	}

	token := "not set"
	if cfg.HasToken() {
		token = "set"
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "token: %s\n", token)

	return nil
}
