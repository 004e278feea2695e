package matching

import (
	"math"

	"github.com/buildmate/server/internal/module/profile"
)

// Weights of the two overlap dimensions.
const (
	SkillWeight    = 0.7
	InterestWeight = 0.3
)

// Score returns the compatibility of candidate from viewer's point of view,
// an integer in [0,100]: round(100 * (0.7*skillOverlap + 0.3*interestOverlap)).
//
// Each overlap is the Jaccard index of the two tag sets, 0 when both are
// empty. A viewer with no skills and no interests scores 0 against everyone.
// Nil profiles and nil sets are treated as empty.
func Score(viewer, candidate *profile.Profile) int {
	if viewer.IsEmpty() {
		return 0
	}

	var candSkills, candInterests profile.TagSet
	if candidate != nil {
		candSkills, candInterests = candidate.Skills, candidate.Interests
	}

	total := SkillWeight*jaccard(viewer.Skills, candSkills) +
		InterestWeight*jaccard(viewer.Interests, candInterests)

	return int(math.Round(100 * total))
}

// jaccard returns |a ∩ b| / |a ∪ b|, or 0 when the union is empty.
func jaccard(a, b profile.TagSet) float64 {
	am, bm := a.Members(), b.Members()

	inter := 0
	for tag := range am {
		if _, found := bm[tag]; found {
			inter++
		}
	}

	union := len(am) + len(bm) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
