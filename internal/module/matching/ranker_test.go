package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildmate/server/internal/module/profile"
)

func TestRank(t *testing.T) {
	viewer := newProfile([]string{"Go", "SQL"}, []string{"AI"})
	viewer.Name = "viewer"

	low := newProfile([]string{"Rust"}, []string{"Games"})
	tieA := newProfile([]string{"Go"}, []string{"Games"})
	high := newProfile([]string{"Go", "SQL"}, []string{"AI"})
	tieB := newProfile([]string{"SQL"}, []string{"Health"})

	self := *viewer
	candidates := []*profile.Profile{low, tieA, &self, high, nil, tieB}

	ranked := Rank(viewer, candidates)
	require.Len(t, ranked, 4)

	assert.Same(t, high, ranked[0].Profile)
	assert.Equal(t, 100, ranked[0].Score)
	// tieA and tieB score 35 each and keep their input order.
	assert.Same(t, tieA, ranked[1].Profile)
	assert.Same(t, tieB, ranked[2].Profile)
	assert.Equal(t, ranked[1].Score, ranked[2].Score)
	assert.Same(t, low, ranked[3].Profile)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
	for _, m := range ranked {
		assert.NotEqual(t, viewer.ID, m.Profile.ID)
	}
}

func TestRank_EmptyViewerKeepsInputOrder(t *testing.T) {
	viewer := newProfile(nil, nil)
	a := newProfile([]string{"Go"}, nil)
	b := newProfile([]string{"Rust"}, nil)

	ranked := Rank(viewer, []*profile.Profile{a, b})
	require.Len(t, ranked, 2)
	assert.Same(t, a, ranked[0].Profile)
	assert.Same(t, b, ranked[1].Profile)
	assert.Zero(t, ranked[0].Score)
}

func TestRank_NoCandidates(t *testing.T) {
	assert.Empty(t, Rank(newProfile([]string{"Go"}, nil), nil))
}

func TestFilter(t *testing.T) {
	ada := &profile.Profile{Name: "Ada", Skills: profile.TagSet{"Go"}}
	bob := &profile.Profile{Name: "Bob", Interests: profile.TagSet{"Machine Learning"}}
	cy := &profile.Profile{Name: "Cy", Skills: profile.TagSet{"Figma"}}
	matches := []Match{{Profile: ada, Score: 90}, {Profile: bob, Score: 50}, {Profile: cy, Score: 10}}

	assert.Len(t, Filter(matches, ""), 3)
	assert.Len(t, Filter(matches, "  "), 3)

	got := Filter(matches, "LEARN")
	require.Len(t, got, 1)
	assert.Same(t, bob, got[0].Profile)

	got = Filter(matches, "a")
	require.Len(t, got, 2)
	assert.Same(t, ada, got[0].Profile)
	assert.Same(t, cy, got[1].Profile)
}
