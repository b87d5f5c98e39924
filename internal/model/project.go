package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedProjectURL is returned when a project board URL is neither an
// organization board nor a repository board of the configured organization.
var ErrMalformedProjectURL = errors.New("malformed project board URL")

// ProjectRef identifies a classic project board.
type ProjectRef struct {
	Owner  string
	Number int
	// Repo is empty for organization-level boards.
	Repo string
}

// IsZero reports whether the reference was never set.
func (p ProjectRef) IsZero() bool {
	return p.Owner == "" && p.Number == 0
}

// String renders the reference the way the search project qualifier expects:
// owner/number, or owner/repo/number for repository boards.
func (p ProjectRef) String() string {
	if p.Repo != "" {
		return fmt.Sprintf("%s/%s/%d", p.Owner, p.Repo, p.Number)
	}
	return fmt.Sprintf("%s/%d", p.Owner, p.Number)
}

// ParseProjectURL turns a board URL into a ProjectRef.
//
//	https://github.com/orgs/<owner>/projects/<n>
//	https://github.com/<org>/<repo>/projects/<n>
func ParseProjectURL(rawURL, org string) (ProjectRef, error) {
	parts := strings.Split(rawURL, "/")
	if len(parts) < 7 {
		return ProjectRef{}, fmt.Errorf("%w: %s", ErrMalformedProjectURL, rawURL)
	}

	number, err := strconv.Atoi(parts[6])
	if err != nil || number <= 0 {
		return ProjectRef{}, fmt.Errorf("%w: %s: invalid project number %q", ErrMalformedProjectURL, rawURL, parts[6])
	}

	switch parts[3] {
	case "orgs":
		return ProjectRef{Owner: parts[4], Number: number}, nil
	case org:
		return ProjectRef{Owner: org, Number: number, Repo: parts[4]}, nil
	default:
		return ProjectRef{}, fmt.Errorf("%w: %s", ErrMalformedProjectURL, rawURL)
	}
}
