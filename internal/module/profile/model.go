package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TagSet is a case-sensitive set of tags. Order carries no meaning; it is
// kept as first seen so stored records read back the way they were entered.
type TagSet []string

// NewTagSet trims every value, drops blanks and collapses duplicates.
func NewTagSet(values ...string) TagSet {
	seen := make(map[string]struct{}, len(values))
	set := make(TagSet, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		set = append(set, v)
	}
	return set
}

// ParseTagList splits a comma-separated list into a TagSet.
func ParseTagList(list string) TagSet {
	return NewTagSet(strings.Split(list, ",")...)
}

// Len returns the number of distinct tags.
func (s TagSet) Len() int {
	return len(s.Members())
}

// Members returns the set as a lookup map.
func (s TagSet) Members() map[string]struct{} {
	m := make(map[string]struct{}, len(s))
	for _, v := range s {
		m[v] = struct{}{}
	}
	return m
}

// Contains reports whether tag is in the set.
func (s TagSet) Contains(tag string) bool {
	for _, v := range s {
		if v == tag {
			return true
		}
	}
	return false
}

// Profile is a participant's public profile.
type Profile struct {
	ID                 uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name               string    `json:"name" gorm:"not null"`
	Bio                string    `json:"bio"`
	AvatarURL          string    `json:"avatar_url,omitempty"`
	Skills             TagSet    `json:"skills" gorm:"type:text;serializer:json"`
	Interests          TagSet    `json:"interests" gorm:"type:text;serializer:json"`
	ProjectPreferences string    `json:"project_preferences"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (Profile) TableName() string {
	return "profiles"
}

// IsEmpty reports whether the profile has neither skills nor interests.
func (p *Profile) IsEmpty() bool {
	return p == nil || (p.Skills.Len() == 0 && p.Interests.Len() == 0)
}
