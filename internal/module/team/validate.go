package team

import (
	"strings"
	"unicode/utf8"

	"github.com/buildmate/server/internal/module/profile"
)

// Form limits, counted in characters after trimming.
const (
	MinNameLength    = 3
	MinTitleLength   = 5
	MinSummaryLength = 20
	MaxSummaryLength = 500
)

// NewTeam validates the creation form and builds the team record.
// techStack is a comma-separated list.
func NewTeam(name, title, summary, techStack string) (*Team, error) {
	name = strings.TrimSpace(name)
	title = strings.TrimSpace(title)
	summary = strings.TrimSpace(summary)

	if utf8.RuneCountInString(name) < MinNameLength {
		return nil, ErrNameTooShort
	}
	if utf8.RuneCountInString(title) < MinTitleLength {
		return nil, ErrTitleTooShort
	}
	if n := utf8.RuneCountInString(summary); n < MinSummaryLength || n > MaxSummaryLength {
		return nil, ErrSummaryLength
	}

	return &Team{
		Name:      name,
		Status:    StatusOpen,
		TechStack: profile.ParseTagList(techStack),
		ProjectIdea: ProjectIdea{
			Title:   title,
			Summary: summary,
		},
	}, nil
}
