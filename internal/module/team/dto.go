package team

import (
	"github.com/google/uuid"

	"github.com/buildmate/server/internal/shared/pagination"
)

// CreateTeamRequest is the team creation form.
type CreateTeamRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	ProjectTitle   string `json:"project_title" binding:"required,max=200"`
	ProjectSummary string `json:"project_summary" binding:"required"`
	// TechStack is a comma-separated list, e.g. "Go, Postgres, Redis".
	TechStack string `json:"tech_stack" binding:"max=500"`
}

// AddMemberRequest is the body of POST /teams/:id/members.
type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// TeamDetail is a team with its members.
type TeamDetail struct {
	*Team
	Members []*Member `json:"members"`
	MyRole  Role      `json:"my_role"`
}

// ListTeamsResponse is one page of the caller's teams.
type ListTeamsResponse struct {
	Teams      []*Team             `json:"teams"`
	Pagination pagination.PageInfo `json:"pagination"`
}
