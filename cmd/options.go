package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spiffcs/teamping/config"
)

// Options holds the shared command-line options for the teamping CLI.
type Options struct {
	ConfigPath string
	Format     string
	Verbosity  int
	DryRun     bool

	// Input overrides. Only flags set on the command line are applied on
	// top of the file and environment configuration.
	Token                 string
	Org                   string
	Team                  string
	Since                 string
	ProjectBoard          string
	ProjectColumn         int64
	IgnoreTeam            string
	IgnoreBot             string
	IncludeReviewRequests bool
	CommentBody           string
	CommentTemplate       bool
	IgnoreRepos           []string
	IgnoreLabels          []string
	IgnoreAuthors         []string
	IgnoreCommenters      []string
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{
		Format: "table",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithConfigPath sets the config file to load instead of ./.teamping.yaml.
func WithConfigPath(path string) Option {
	return func(o *Options) {
		o.ConfigPath = path
	}
}

// WithFormat sets the output format (table, json).
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithDryRun skips every card and comment write.
func WithDryRun(dryRun bool) Option {
	return func(o *Options) {
		o.DryRun = dryRun
	}
}

// addInputFlags registers one persistent flag per action input.
func addInputFlags(cmd *cobra.Command, opts *Options) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (default ./.teamping.yaml)")
	flags.CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")

	flags.StringVar(&opts.Token, config.InputToken, "", "GitHub token (default $INPUT_TOKEN or $GITHUB_TOKEN)")
	flags.StringVar(&opts.Org, config.InputOrg, "", "Organization that owns the team")
	flags.StringVar(&opts.Team, config.InputTeam, "", "Team slug to search mentions for")
	flags.StringVar(&opts.Since, config.InputSince, "", "Only consider items created after this date (YYYY-MM-DD or relative, e.g. 90d)")
	flags.StringVar(&opts.ProjectBoard, config.InputProjectBoard, "", "Project board URL")
	flags.Int64Var(&opts.ProjectColumn, config.InputProjectColumn, 0, "Project column id new cards are added to")
	flags.StringVar(&opts.IgnoreTeam, config.InputIgnoreTeam, "", "Team whose members are excluded (default --team)")
	flags.StringVar(&opts.IgnoreBot, config.InputIgnoreBot, "", "Bot login excluded as author and commenter")
	flags.BoolVar(&opts.IncludeReviewRequests, config.InputIncludeReviewRequests, false, "Also search pull requests requesting the team's review")
	flags.StringVar(&opts.CommentBody, config.InputCommentBody, "", "Comment posted on every item, as written")
	flags.BoolVar(&opts.CommentTemplate, config.InputCommentTemplate, false, "Render --comment-body as a Go text/template")
	flags.StringSliceVar(&opts.IgnoreRepos, config.InputIgnoreRepos, nil, "Repositories to exclude (owner/repo)")
	flags.StringSliceVar(&opts.IgnoreLabels, config.InputIgnoreLabels, nil, "Labels to exclude")
	flags.StringSliceVar(&opts.IgnoreAuthors, config.InputIgnoreAuthors, nil, "Additional authors to exclude")
	flags.StringSliceVar(&opts.IgnoreCommenters, config.InputIgnoreCommenters, nil, "Additional commenters to exclude")
}

// addRunFlags registers the flags shared by the root and run commands.
func addRunFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Search and plan without creating cards or comments")
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "table", "Dry run output format (table, json)")
}

// applyFlags overlays every input flag explicitly set on cmd.
func (o *Options) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed

	strs := []struct {
		name string
		src  string
		dst  *string
	}{
		{config.InputToken, o.Token, &cfg.Token},
		{config.InputOrg, o.Org, &cfg.Org},
		{config.InputTeam, o.Team, &cfg.Team},
		{config.InputSince, o.Since, &cfg.Since},
		{config.InputProjectBoard, o.ProjectBoard, &cfg.ProjectBoard},
		{config.InputIgnoreTeam, o.IgnoreTeam, &cfg.IgnoreTeam},
		{config.InputIgnoreBot, o.IgnoreBot, &cfg.IgnoreBot},
		{config.InputCommentBody, o.CommentBody, &cfg.CommentBody},
	}
	for _, s := range strs {
		if changed(s.name) {
			*s.dst = s.src
		}
	}

	lists := []struct {
		name string
		src  []string
		dst  *[]string
	}{
		{config.InputIgnoreRepos, o.IgnoreRepos, &cfg.IgnoreRepos},
		{config.InputIgnoreLabels, o.IgnoreLabels, &cfg.IgnoreLabels},
		{config.InputIgnoreAuthors, o.IgnoreAuthors, &cfg.IgnoreAuthors},
		{config.InputIgnoreCommenters, o.IgnoreCommenters, &cfg.IgnoreCommenters},
	}
	for _, l := range lists {
		if changed(l.name) {
			*l.dst = config.SplitList(strings.Join(l.src, ","))
		}
	}

	if changed(config.InputProjectColumn) {
		cfg.ProjectColumn = o.ProjectColumn
	}
	if changed(config.InputIncludeReviewRequests) {
		cfg.IncludeReviewRequests = o.IncludeReviewRequests
	}
	if changed(config.InputCommentTemplate) {
		cfg.CommentTemplate = o.CommentTemplate
	}
}

// loadConfig resolves the configuration for a command: file, environment,
// then explicitly set flags.
func loadConfig(cmd *cobra.Command, opts *Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	opts.applyFlags(cmd, cfg)
	return cfg, nil
}
