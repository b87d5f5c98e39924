// Package model contains domain types for teamping.
// These types are independent of any external GitHub library.
package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedItemURL is returned when a search hit's html URL does not have
// the owner/repo/kind/number shape.
var ErrMalformedItemURL = errors.New("malformed item URL")

// ContentKind is the polymorphic variant a search hit represents. The string
// values are the content_type accepted by the project card API.
type ContentKind string

const (
	KindIssue       ContentKind = "Issue"
	KindPullRequest ContentKind = "PullRequest"
)

// kindFromToken maps the path segment of an html URL to a ContentKind.
// Anything other than "issues" is treated as a pull request.
func kindFromToken(token string) ContentKind {
	if token == "issues" {
		return KindIssue
	}
	return KindPullRequest
}

// Item is a single issue or pull request returned by the search API.
type Item struct {
	ID      int64  `json:"id"`
	Number  int    `json:"number"`
	Title   string `json:"title"`
	HTMLURL string `json:"htmlUrl"`
}

// SearchResult is one page of issue search results.
type SearchResult struct {
	Total      int
	Incomplete bool
	Items      []Item
}

// ItemRef locates an issue or pull request inside a repository.
type ItemRef struct {
	Owner  string
	Repo   string
	Kind   ContentKind
	Number int
}

// FullName returns owner/repo.
func (r ItemRef) FullName() string {
	return r.Owner + "/" + r.Repo
}

func (r ItemRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// ParseItemURL decomposes an html URL by fixed position.
// URL format: https://github.com/owner/repo/issues/42
// or: https://github.com/owner/repo/pull/7
func ParseItemURL(htmlURL string) (ItemRef, error) {
	parts := strings.Split(htmlURL, "/")
	if len(parts) < 7 {
		return ItemRef{}, fmt.Errorf("%w: %s", ErrMalformedItemURL, htmlURL)
	}

	number, err := strconv.Atoi(parts[6])
	if err != nil {
		return ItemRef{}, fmt.Errorf("%w: %s: %v", ErrMalformedItemURL, htmlURL, err)
	}

	return ItemRef{
		Owner:  parts[3],
		Repo:   parts[4],
		Kind:   kindFromToken(parts[5]),
		Number: number,
	}, nil
}

// Merge combines the team-mention and review-request result lists into one
// sequence keyed by item ID. Items keep the position of their first
// occurrence, but a duplicate ID takes the data from the later list.
func Merge(mention, review []Item) []Item {
	merged := make([]Item, 0, len(mention)+len(review))
	index := make(map[int64]int, len(mention)+len(review))

	for _, list := range [][]Item{mention, review} {
		for _, item := range list {
			if i, ok := index[item.ID]; ok {
				merged[i] = item
				continue
			}
			index[item.ID] = len(merged)
			merged = append(merged, item)
		}
	}

	return merged
}
