package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	gh "github.com/google/go-github/v57/github"
	"github.com/spiffcs/teamping/internal/constants"
	"github.com/spiffcs/teamping/internal/log"
	"github.com/spiffcs/teamping/internal/model"
	"github.com/spiffcs/teamping/internal/query"
	"golang.org/x/oauth2"
)

// loggingTransport wraps an http.RoundTripper and logs each request along
// with the rate limit headers GitHub returns.
type loggingTransport struct {
	base http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		log.Debug("request failed", "method", req.Method, "path", req.URL.Path, "error", err)
		return resp, err
	}

	log.Debug("request", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode, "elapsed", time.Since(start).Round(time.Millisecond))

	remaining, limit, resetAt := parseRateLimitHeaders(resp)
	if remaining >= 0 && limit > 0 {
		log.Trace("rate limit", "remaining", remaining, "limit", limit, "resets_at", resetAt.Format(time.RFC3339))
	}
	if remaining >= 0 && remaining <= constants.RateLimitLowWatermark {
		log.Warn("rate limit low", "remaining", remaining, "resets_at", resetAt.Format(time.RFC3339))
	}

	return resp, nil
}

// parseRateLimitHeaders extracts rate limit info from response headers.
func parseRateLimitHeaders(resp *http.Response) (remaining, limit int, resetAt time.Time) {
	remaining = -1
	limit = -1

	if remainingStr := resp.Header.Get("X-RateLimit-Remaining"); remainingStr != "" {
		if rem, err := strconv.Atoi(remainingStr); err == nil {
			remaining = rem
		}
	}

	if limitStr := resp.Header.Get("X-RateLimit-Limit"); limitStr != "" {
		if lim, err := strconv.Atoi(limitStr); err == nil {
			limit = lim
		}
	}

	if resetStr := resp.Header.Get("X-RateLimit-Reset"); resetStr != "" {
		if resetTime, err := strconv.ParseInt(resetStr, 10, 64); err == nil {
			resetAt = time.Unix(resetTime, 0)
		}
	}

	return remaining, limit, resetAt
}

// Client wraps the GitHub REST API client
type Client struct {
	client *gh.Client
}

// NewClient creates a new GitHub client using a personal access token.
func NewClient(ctx context.Context, token string) (*Client, error) {
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("GitHub token not provided. Set the token input or the GITHUB_TOKEN environment variable")
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Transport = &loggingTransport{base: tc.Transport}

	return &Client{client: gh.NewClient(tc)}, nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing against an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{client: client}, nil
}

// RateLimits fetches the current GitHub API rate limit status.
func (c *Client) RateLimits(ctx context.Context) (*gh.RateLimits, error) {
	limits, _, err := c.client.RateLimit.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate limits: %w", err)
	}
	return limits, nil
}

// SearchIssues runs one issue search and returns the first page.
// Incomplete pages are not followed up.
func (c *Client) SearchIssues(ctx context.Context, q *query.Query) (*model.SearchResult, error) {
	opts := &gh.SearchOptions{
		ListOptions: gh.ListOptions{
			PerPage: constants.SearchPerPage,
		},
	}

	log.Debug("searching", "mode", q.Mode, "query", q.Encode())
	result, _, err := c.client.Search.Issues(ctx, q.String(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search for team %s items: %w", q.Mode, err)
	}

	items := make([]model.Item, 0, len(result.Issues))
	for _, issue := range result.Issues {
		items = append(items, model.Item{
			ID:      issue.GetID(),
			Number:  issue.GetNumber(),
			Title:   issue.GetTitle(),
			HTMLURL: issue.GetHTMLURL(),
		})
	}

	return &model.SearchResult{
		Total:      result.GetTotal(),
		Incomplete: result.GetIncompleteResults(),
		Items:      items,
	}, nil
}

// ListTeamMembers returns the logins of every member of an organization team.
func (c *Client) ListTeamMembers(ctx context.Context, org, slug string) ([]string, error) {
	opts := &gh.TeamListTeamMembersOptions{
		ListOptions: gh.ListOptions{
			PerPage: constants.MembersPerPage,
		},
	}

	var logins []string

	for {
		members, resp, err := c.client.Teams.ListTeamMembersBySlug(ctx, org, slug, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list members of %s/%s (page %d): %w", org, slug, opts.Page, err)
		}

		for _, m := range members {
			logins = append(logins, m.GetLogin())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return logins, nil
}

// ContentID returns the internal id of an issue or pull request, which the
// project card API takes instead of its number.
func (c *Client) ContentID(ctx context.Context, ref model.ItemRef) (int64, error) {
	switch ref.Kind {
	case model.KindIssue:
		issue, _, err := c.client.Issues.Get(ctx, ref.Owner, ref.Repo, ref.Number)
		if err != nil {
			return 0, fmt.Errorf("failed to get issue %s: %w", ref, err)
		}
		return issue.GetID(), nil
	default:
		pr, _, err := c.client.PullRequests.Get(ctx, ref.Owner, ref.Repo, ref.Number)
		if err != nil {
			return 0, fmt.Errorf("failed to get pull request %s: %w", ref, err)
		}
		return pr.GetID(), nil
	}
}

// CreateProjectCard adds the content to a project column. Any status other
// than 201 Created is returned as a *StatusError.
func (c *Client) CreateProjectCard(ctx context.Context, columnID, contentID int64, kind model.ContentKind) error {
	opts := &gh.ProjectCardOptions{
		ContentID:   contentID,
		ContentType: string(kind),
	}

	target := fmt.Sprintf("%s %d in column #%d", kind, contentID, columnID)
	_, resp, err := c.client.Projects.CreateProjectCard(ctx, columnID, opts)
	return checkCreated(OpCreateCard, target, resp, err)
}

// CreateComment posts a comment on an issue or pull request. Any status
// other than 201 Created is returned as a *StatusError.
func (c *Client) CreateComment(ctx context.Context, ref model.ItemRef, body string) error {
	comment := &gh.IssueComment{Body: gh.String(body)}

	_, resp, err := c.client.Issues.CreateComment(ctx, ref.Owner, ref.Repo, ref.Number, comment)
	return checkCreated(OpCreateComment, ref.String(), resp, err)
}
