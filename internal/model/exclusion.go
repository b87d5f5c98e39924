package model

import "strings"

// ExclusionSet holds the logins excluded from authoring and commenting
// matches. Both lists are ordered sets: first occurrence wins, blanks are
// dropped.
type ExclusionSet struct {
	Authors    []string
	Commenters []string
}

// AddAuthors appends logins to the author set.
func (e *ExclusionSet) AddAuthors(logins ...string) {
	e.Authors = appendUnique(e.Authors, logins...)
}

// AddCommenters appends logins to the commenter set.
func (e *ExclusionSet) AddCommenters(logins ...string) {
	e.Commenters = appendUnique(e.Commenters, logins...)
}

// AddBoth excludes logins from both authoring and commenting.
func (e *ExclusionSet) AddBoth(logins ...string) {
	e.AddAuthors(logins...)
	e.AddCommenters(logins...)
}

func appendUnique(set []string, logins ...string) []string {
	for _, login := range logins {
		login = strings.TrimSpace(login)
		if login == "" {
			continue
		}
		if containsLogin(set, login) {
			continue
		}
		set = append(set, login)
	}
	return set
}

func containsLogin(set []string, login string) bool {
	for _, s := range set {
		if strings.EqualFold(s, login) {
			return true
		}
	}
	return false
}
