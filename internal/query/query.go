// Package query assembles GitHub issue search queries for team pings.
package query

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spiffcs/teamping/internal/model"
)

// DefaultSince is the creation-date floor used when none is configured.
const DefaultSince = "2020-01-01"

// sinceLayout is the ISO date layout accepted for the creation-date floor.
const sinceLayout = "2006-01-02"

var (
	// ErrNoProject is returned when no project board reference is available
	// for the exclusion clause.
	ErrNoProject = errors.New("project board reference is required")

	// ErrInvalidSince is returned when the creation-date floor is not an ISO date.
	ErrInvalidSince = errors.New("since must be an ISO date (YYYY-MM-DD)")
)

// Mode selects the team predicate of a search.
type Mode int

const (
	// ModeMention matches items where the team was at-mentioned.
	ModeMention Mode = iota
	// ModeReviewRequested matches pull requests where the team's review was requested.
	ModeReviewRequested
)

func (m Mode) String() string {
	switch m {
	case ModeReviewRequested:
		return "review-requested"
	default:
		return "mention"
	}
}

// qualifier returns the search qualifier for the team predicate.
func (m Mode) qualifier() string {
	if m == ModeReviewRequested {
		return "team-review-requested"
	}
	return "team"
}

// Op is the kind of a search clause.
type Op int

const (
	// OpEqual renders key:value.
	OpEqual Op = iota
	// OpNotEqual renders -key:value.
	OpNotEqual
	// OpAfter renders key:>value.
	OpAfter
)

// Clause is one qualifier of a search query.
type Clause struct {
	Op    Op
	Key   string
	Value string
}

func (c Clause) String() string {
	switch c.Op {
	case OpNotEqual:
		return "-" + c.Key + ":" + c.Value
	case OpAfter:
		return c.Key + ":>" + c.Value
	default:
		return c.Key + ":" + c.Value
	}
}

// Query is an ordered list of clauses.
type Query struct {
	Mode    Mode
	Clauses []Clause
}

// Encode renders the query as the q parameter of the search endpoint, each
// clause percent-encoded and joined with '+'.
func (q *Query) Encode() string {
	parts := make([]string, len(q.Clauses))
	for i, c := range q.Clauses {
		parts[i] = url.QueryEscape(c.String())
	}
	return "q=" + strings.Join(parts, "+")
}

// String renders the query in its plain, space-separated form.
func (q *Query) String() string {
	parts := make([]string, len(q.Clauses))
	for i, c := range q.Clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Params holds everything needed to assemble a team ping query.
type Params struct {
	Org        string
	Team       string
	Since      string
	Project    model.ProjectRef
	Exclusions model.ExclusionSet
	Repos      []string
	Labels     []string
}

// Builder accumulates clauses in insertion order.
type Builder struct {
	clauses []Clause
}

// Equal appends key:value.
func (b *Builder) Equal(key, value string) *Builder {
	b.clauses = append(b.clauses, Clause{Op: OpEqual, Key: key, Value: value})
	return b
}

// NotEqual appends -key:value.
func (b *Builder) NotEqual(key, value string) *Builder {
	b.clauses = append(b.clauses, Clause{Op: OpNotEqual, Key: key, Value: value})
	return b
}

// NotEach appends one -key:value clause per value, skipping blanks.
func (b *Builder) NotEach(key string, values []string) *Builder {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		b.NotEqual(key, v)
	}
	return b
}

// After appends key:>value.
func (b *Builder) After(key, value string) *Builder {
	b.clauses = append(b.clauses, Clause{Op: OpAfter, Key: key, Value: value})
	return b
}

// Build returns the query assembled so far.
func (b *Builder) Build(mode Mode) *Query {
	clauses := make([]Clause, len(b.clauses))
	copy(clauses, b.clauses)
	return &Query{Mode: mode, Clauses: clauses}
}

// Build assembles the search query for the given mode.
func Build(mode Mode, p Params) (*Query, error) {
	if p.Org == "" || p.Team == "" {
		return nil, fmt.Errorf("org and team are required to build a %s query", mode)
	}
	if p.Project.IsZero() {
		return nil, ErrNoProject
	}

	since := p.Since
	if since == "" {
		since = DefaultSince
	}
	if _, err := time.Parse(sinceLayout, since); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSince, since)
	}

	labels := make([]string, 0, len(p.Labels))
	for _, l := range p.Labels {
		labels = append(labels, quoteLabel(l))
	}

	var b Builder
	b.Equal("is", "open").
		Equal("org", p.Org).
		Equal(mode.qualifier(), p.Org+"/"+p.Team).
		NotEach("author", p.Exclusions.Authors).
		NotEach("commenter", p.Exclusions.Commenters).
		After("created", since).
		NotEach("repo", p.Repos).
		NotEach("label", labels).
		NotEqual("project", p.Project.String())

	return b.Build(mode), nil
}

// quoteLabel wraps labels containing whitespace in double quotes so the
// search API reads them as a single token.
func quoteLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" || !strings.ContainsAny(label, " \t") {
		return label
	}
	if strings.HasPrefix(label, `"`) && strings.HasSuffix(label, `"`) {
		return label
	}
	return `"` + label + `"`
}
