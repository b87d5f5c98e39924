package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spiffcs/teamping/internal/ghclient"
	"github.com/spiffcs/teamping/internal/log"
	"github.com/spiffcs/teamping/internal/output"
	"github.com/spiffcs/teamping/internal/service"
)

// NewCmdQuery creates the query command.
func NewCmdQuery(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the search queries a run would issue",
		Long: `Resolves the team roster and exclusion lists, then prints every search
query in plain and encoded form without searching or writing anything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "output", "o", "table", "Output format (table, json)")

	return cmd
}

func runQuery(cmd *cobra.Command, opts *Options) error {
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

	plan, err := service.New(client, cfg).Plan(ctx)
	if err != nil {
		return err
	}
	log.Info("resolved exclusions",
		"project", plan.Project.String(),
		"authors", len(plan.Exclusions.Authors),
		"commenters", len(plan.Exclusions.Commenters))

	return output.NewFormatter(format).FormatQueries(plan.Queries, cmd.OutOrStdout())
}
