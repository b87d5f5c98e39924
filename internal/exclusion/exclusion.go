// Package exclusion resolves the logins whose authored or commented items
// are left out of a team ping search.
package exclusion

import (
	"context"
	"fmt"

	"github.com/spiffcs/teamping/internal/log"
	"github.com/spiffcs/teamping/internal/model"
)

// MemberLister lists the logins of an organization team.
type MemberLister interface {
	ListTeamMembers(ctx context.Context, org, slug string) ([]string, error)
}

// Params configures Build.
type Params struct {
	Org  string
	Team string
	// IgnoreTeam replaces Team as the roster to exclude when set.
	IgnoreTeam string
	// IgnoreBot is a single extra login excluded from both sets.
	IgnoreBot  string
	Authors    []string
	Commenters []string
}

// RosterTeam returns the slug whose members are excluded.
func (p Params) RosterTeam() string {
	if p.IgnoreTeam != "" {
		return p.IgnoreTeam
	}
	return p.Team
}

// Build resolves the roster team and unions it, together with the explicit
// lists, into an ExclusionSet. Roster members are excluded both as authors
// and as commenters.
func Build(ctx context.Context, lister MemberLister, p Params) (model.ExclusionSet, error) {
	var set model.ExclusionSet
	set.AddAuthors(p.Authors...)
	set.AddCommenters(p.Commenters...)

	roster := p.RosterTeam()
	if roster != "" {
		logins, err := lister.ListTeamMembers(ctx, p.Org, roster)
		if err != nil {
			return model.ExclusionSet{}, fmt.Errorf("failed to resolve members of team %s/%s: %w", p.Org, roster, err)
		}
		log.Info("resolved team roster", "team", p.Org+"/"+roster, "members", len(logins))
		set.AddBoth(logins...)
	}

	set.AddBoth(p.IgnoreBot)

	log.Debug("exclusions", "authors", len(set.Authors), "commenters", len(set.Commenters))
	return set, nil
}
