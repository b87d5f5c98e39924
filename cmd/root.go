package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/spiffcs/teamping/internal/constants"
	"github.com/spiffcs/teamping/internal/log"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := NewOptions()

	rootCmd := &cobra.Command{
		Use:   "teamping",
		Short: "Add open issues and pull requests that mention a team to a project board",
		Long: `Searches an organization for open issues and pull requests that mention
a team (and optionally request its review), skipping anything authored or
already answered by the team, and adds each one to a project board column,
optionally posting a comment.

Inputs come from ./.teamping.yaml, INPUT_* environment variables and flags,
in increasing order of precedence.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, opts)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	addInputFlags(rootCmd, opts)
	// Add run flags to root command so `teamping` and `teamping run` work identically
	addRunFlags(rootCmd, opts)

	rootCmd.AddCommand(NewCmdRun(opts))
	rootCmd.AddCommand(NewCmdQuery(opts))
	rootCmd.AddCommand(NewCmdConfig(opts))
	rootCmd.AddCommand(NewCmdRateLimit(opts))
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}

// setup loads .env and initializes logging before any command runs.
func setup(opts *Options) error {
	if err := loadDotEnv(constants.DotEnvFile); err != nil {
		return err
	}

	log.Initialize(opts.Verbosity, os.Stderr)
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		log.EnableAnnotations(os.Stdout)
	}
	return nil
}

// loadDotEnv loads path into the environment when it exists. Variables that
// are already set are left alone.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	log.Debug("loaded environment file", "path", path)
	return nil
}
