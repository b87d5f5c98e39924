// Package ghclient provides GitHub API client functionality.
package ghclient

import (
	"context"

	"github.com/spiffcs/teamping/internal/model"
	"github.com/spiffcs/teamping/internal/query"
)

// GitHub defines every GitHub operation a teamping run performs.
// This interface enables faking the GitHub client in unit tests.
type GitHub interface {
	// Search
	SearchIssues(ctx context.Context, q *query.Query) (*model.SearchResult, error)

	// Teams
	ListTeamMembers(ctx context.Context, org, slug string) ([]string, error)

	// Issues and pull requests
	ContentID(ctx context.Context, ref model.ItemRef) (int64, error)
	CreateComment(ctx context.Context, ref model.ItemRef, body string) error

	// Projects
	CreateProjectCard(ctx context.Context, columnID, contentID int64, kind model.ContentKind) error
}

// Ensure Client implements GitHub interface.
var _ GitHub = (*Client)(nil)
