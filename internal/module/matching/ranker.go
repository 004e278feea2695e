package matching

import (
	"sort"
	"strings"

	"github.com/buildmate/server/internal/module/profile"
)

// Match is a candidate profile with its score for one viewer.
type Match struct {
	Profile *profile.Profile `json:"profile"`
	Score   int              `json:"score"`
}

// Rank scores every candidate for viewer and orders them by score,
// highest first. Candidates sharing the viewer's id are dropped. Equal
// scores keep their input order.
func Rank(viewer *profile.Profile, candidates []*profile.Profile) []Match {
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		if c == nil || (viewer != nil && c.ID == viewer.ID) {
			continue
		}
		matches = append(matches, Match{Profile: c, Score: Score(viewer, c)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// Filter keeps the matches whose name, skills or interests contain query,
// ignoring case. Order is preserved.
func Filter(matches []Match, query string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return matches
	}

	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if matchesQuery(m.Profile, query) {
			out = append(out, m)
		}
	}
	return out
}

func matchesQuery(p *profile.Profile, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	for _, tags := range []profile.TagSet{p.Skills, p.Interests} {
		for _, tag := range tags {
			if strings.Contains(strings.ToLower(tag), query) {
				return true
			}
		}
	}
	return false
}
