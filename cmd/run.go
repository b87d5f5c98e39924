package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spiffcs/teamping/internal/ghclient"
	"github.com/spiffcs/teamping/internal/output"
	"github.com/spiffcs/teamping/internal/service"
)

// NewCmdRun creates the run command.
func NewCmdRun(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Search for team pings and add them to the project board",
		Long: `Runs the full pipeline once: resolve exclusions, search, merge, then
create a project card (and comment) for every item, stopping at the first
failure. With --dry-run nothing is written and the planned actions are
printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, opts)
		},
	}

	addRunFlags(cmd, opts)

	return cmd
}

func runPipeline(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()

	format, err := output.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	client, err := ghclient.NewClient(ctx, cfg.Token)
	if err != nil {
		return err
	}

	outcome, err := service.New(client, cfg).Run(ctx, opts.DryRun)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if opts.DryRun && len(outcome.Actions) > 0 {
		if err := output.NewFormatter(format).FormatActions(outcome.Actions, w); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "Finished running: %s\n", outcome.Message)
	return nil
}
