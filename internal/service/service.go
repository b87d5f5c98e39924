// Package service runs the team ping pipeline: resolve the project board and
// exclusions, search, merge, and dispatch.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/spiffcs/teamping/config"
	"github.com/spiffcs/teamping/internal/constants"
	"github.com/spiffcs/teamping/internal/dispatch"
	"github.com/spiffcs/teamping/internal/duration"
	"github.com/spiffcs/teamping/internal/exclusion"
	"github.com/spiffcs/teamping/internal/ghclient"
	"github.com/spiffcs/teamping/internal/log"
	"github.com/spiffcs/teamping/internal/model"
	"github.com/spiffcs/teamping/internal/query"
)

// Service orchestrates a single team ping run.
type Service struct {
	api ghclient.GitHub
	cfg *config.Config
	now func() time.Time
}

// New creates a Service for the given client and configuration.
func New(api ghclient.GitHub, cfg *config.Config) *Service {
	return &Service{api: api, cfg: cfg, now: time.Now}
}

// Plan is everything resolved before the first search is issued.
type Plan struct {
	Project    model.ProjectRef
	Exclusions model.ExclusionSet
	Comment    *dispatch.Template
	// Queries holds the mention query, followed by the review-request
	// query when review requests are included.
	Queries []*query.Query
}

// Outcome reports what a run found and did.
type Outcome struct {
	Found      int
	Processed  int
	Incomplete bool
	Message    string
	Items      []model.Item
	Actions    []dispatch.Action
}

// Plan validates the configuration and assembles the search queries.
func (s *Service) Plan(ctx context.Context) (*Plan, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	project, err := model.ParseProjectURL(s.cfg.ProjectBoard, s.cfg.Org)
	if err != nil {
		return nil, err
	}
	log.Debug("project board", "ref", project.String())

	comment, err := dispatch.NewComment(s.cfg.CommentBody, s.cfg.CommentTemplate)
	if err != nil {
		return nil, err
	}

	exclusions, err := exclusion.Build(ctx, s.api, exclusion.Params{
		Org:        s.cfg.Org,
		Team:       s.cfg.Team,
		IgnoreTeam: s.cfg.IgnoreTeam,
		IgnoreBot:  s.cfg.IgnoreBot,
		Authors:    s.cfg.IgnoreAuthors,
		Commenters: s.cfg.IgnoreCommenters,
	})
	if err != nil {
		return nil, err
	}

	since := duration.ResolveDate(s.cfg.Since, s.now())
	if since != s.cfg.Since {
		log.Debug("resolved relative since", "since", s.cfg.Since, "date", since)
	}

	params := query.Params{
		Org:        s.cfg.Org,
		Team:       s.cfg.Team,
		Since:      since,
		Project:    project,
		Exclusions: exclusions,
		Repos:      s.cfg.IgnoreRepos,
		Labels:     s.cfg.IgnoreLabels,
	}

	modes := []query.Mode{query.ModeMention}
	if s.cfg.IncludeReviewRequests {
		modes = append(modes, query.ModeReviewRequested)
	}

	plan := &Plan{Project: project, Exclusions: exclusions, Comment: comment}
	for _, mode := range modes {
		q, err := query.Build(mode, params)
		if err != nil {
			return nil, err
		}
		log.Debug("search query", "mode", mode, "query", q.Encode())
		plan.Queries = append(plan.Queries, q)
	}

	return plan, nil
}

// Run executes the pipeline once. On a dispatch failure the returned
// Outcome still reports the items processed before it.
func (s *Service) Run(ctx context.Context, dryRun bool) (*Outcome, error) {
	plan, err := s.Plan(ctx)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{}

	var lists [][]model.Item
	for _, q := range plan.Queries {
		result, err := s.api.SearchIssues(ctx, q)
		if err != nil {
			return nil, err
		}
		if result.Incomplete {
			outcome.Incomplete = true
			log.Warn("search results may be incomplete", "mode", q.Mode, "total", result.Total, "returned", len(result.Items))
		} else {
			log.Info("all search results were found", "mode", q.Mode, "total", result.Total)
		}
		lists = append(lists, result.Items)
	}

	items := lists[0]
	if len(lists) > 1 {
		items = model.Merge(lists[0], lists[1])
	}

	outcome.Items = items
	outcome.Found = len(items)

	if len(items) == 0 {
		outcome.Message = constants.NoItemsMessage
		return outcome, nil
	}
	log.Info("search found items", "count", len(items))

	d := dispatch.New(s.api, s.cfg.ProjectColumn,
		dispatch.WithComment(plan.Comment),
		dispatch.WithDryRun(dryRun),
	)

	report, err := d.Dispatch(ctx, items)
	if report != nil {
		outcome.Processed = report.Processed
		outcome.Actions = report.Actions
	}
	if err != nil {
		return outcome, fmt.Errorf("processed %d of %d items: %w", outcome.Processed, outcome.Found, err)
	}

	if dryRun {
		outcome.Message = constants.DryRunMessage
	} else {
		outcome.Message = constants.DoneMessage
	}
	return outcome, nil
}
