package matching

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/buildmate/server/internal/module/profile"
)

func newProfile(skills, interests []string) *profile.Profile {
	return &profile.Profile{
		ID:        uuid.New(),
		Skills:    profile.NewTagSet(skills...),
		Interests: profile.NewTagSet(interests...),
	}
}

func TestScore_WorkedExample(t *testing.T) {
	viewer := newProfile([]string{"React", "Figma"}, []string{"AI"})
	candidate := newProfile([]string{"React", "Python"}, []string{"AI", "SaaS"})

	// skills 1/3, interests 1/2: round(100 * (0.7/3 + 0.15)) = 38
	assert.Equal(t, 38, Score(viewer, candidate))
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		viewer    *profile.Profile
		candidate *profile.Profile
		expected  int
	}{
		{
			name:      "identical full profiles",
			viewer:    newProfile([]string{"Go", "SQL"}, []string{"Fintech"}),
			candidate: newProfile([]string{"SQL", "Go"}, []string{"Fintech"}),
			expected:  100,
		},
		{
			name:      "disjoint",
			viewer:    newProfile([]string{"Go"}, []string{"Games"}),
			candidate: newProfile([]string{"Rust"}, []string{"Health"}),
			expected:  0,
		},
		{
			name:      "skills match, interests disjoint",
			viewer:    newProfile([]string{"Go"}, []string{"Games"}),
			candidate: newProfile([]string{"Go"}, []string{"Health"}),
			expected:  70,
		},
		{
			name:      "interests match, skills disjoint",
			viewer:    newProfile([]string{"Go"}, []string{"AI"}),
			candidate: newProfile([]string{"Rust"}, []string{"AI"}),
			expected:  30,
		},
		{
			name:      "candidate has no interests",
			viewer:    newProfile([]string{"Go"}, []string{"AI"}),
			candidate: newProfile([]string{"Go"}, nil),
			expected:  70,
		},
		{
			name:      "neither lists interests",
			viewer:    newProfile([]string{"Go", "SQL"}, nil),
			candidate: newProfile([]string{"Go"}, nil),
			expected:  35,
		},
		{
			name:      "skills-only profile against itself",
			viewer:    newProfile([]string{"React"}, nil),
			candidate: newProfile([]string{"React"}, nil),
			expected:  70,
		},
		{
			name:      "interests-only profiles",
			viewer:    newProfile(nil, []string{"AI", "SaaS"}),
			candidate: newProfile(nil, []string{"AI"}),
			expected:  15,
		},
		{
			name:      "tags are case sensitive",
			viewer:    newProfile([]string{"react"}, nil),
			candidate: newProfile([]string{"React"}, nil),
			expected:  0,
		},
		{
			name:      "empty viewer",
			viewer:    newProfile(nil, nil),
			candidate: newProfile([]string{"Go"}, []string{"AI"}),
			expected:  0,
		},
		{
			name:      "nil candidate",
			viewer:    newProfile([]string{"Go"}, []string{"AI"}),
			candidate: nil,
			expected:  0,
		},
		{
			name:      "nil viewer",
			viewer:    nil,
			candidate: newProfile([]string{"Go"}, nil),
			expected:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(tt.viewer, tt.candidate))
		})
	}
}

func TestScore_Properties(t *testing.T) {
	profiles := []*profile.Profile{
		newProfile([]string{"React", "Figma"}, []string{"AI"}),
		newProfile([]string{"React", "Python"}, []string{"AI", "SaaS"}),
		newProfile([]string{"Go"}, []string{"Fintech", "AI"}),
		newProfile([]string{"Go", "Rust", "C"}, []string{"Games"}),
		newProfile([]string{"Figma"}, nil),
		newProfile(nil, []string{"SaaS"}),
	}
	empty := newProfile(nil, nil)

	for i, a := range profiles {
		if len(a.Skills) > 0 && len(a.Interests) > 0 {
			t.Run("self overlap is total", func(t *testing.T) {
				assert.Equal(t, 100, Score(a, a), "profile %d", i)
			})
		}

		t.Run("empty viewer scores zero", func(t *testing.T) {
			assert.Equal(t, 0, Score(empty, a))
		})

		for j, b := range profiles {
			score := Score(a, b)
			assert.Equal(t, score, Score(b, a), "symmetry %d,%d", i, j)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}
