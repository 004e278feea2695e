package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTagSet(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected TagSet
	}{
		{"nil input", nil, TagSet{}},
		{"duplicates collapse", []string{"Go", "Go", "React"}, TagSet{"Go", "React"}},
		{"case sensitive", []string{"react", "React"}, TagSet{"react", "React"}},
		{"trims and drops blanks", []string{"  Figma ", "", "   ", "Figma"}, TagSet{"Figma"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewTagSet(tt.input...))
		})
	}
}

func TestParseTagList(t *testing.T) {
	assert.Equal(t, TagSet{"React", "Node.js", "Postgres"}, ParseTagList(" React, Node.js ,,Postgres, React"))
	assert.Empty(t, ParseTagList(""))
}

func TestTagSet_Members(t *testing.T) {
	s := TagSet{"Go", "Go", "Rust"}
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("Rust"))
	assert.False(t, s.Contains("rust"))

	var empty TagSet
	assert.Equal(t, 0, empty.Len())
}

func TestProfile_IsEmpty(t *testing.T) {
	var nilProfile *Profile
	assert.True(t, nilProfile.IsEmpty())
	assert.True(t, (&Profile{Name: "a"}).IsEmpty())
	assert.False(t, (&Profile{Interests: TagSet{"AI"}}).IsEmpty())
	assert.False(t, (&Profile{Skills: TagSet{"Go"}}).IsEmpty())
}
