package team

import (
	"time"

	"github.com/google/uuid"

	"github.com/buildmate/server/internal/module/profile"
)

// Status represents whether a team is looking for members.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Role represents a team member's role.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// IsValid checks if the role is valid.
func (r Role) IsValid() bool {
	return r == RoleOwner || r == RoleMember
}

// ProjectIdea is the pitch a team forms around.
type ProjectIdea struct {
	Title   string `json:"title" gorm:"not null"`
	Summary string `json:"summary" gorm:"not null"`
}

// Team represents a hackathon team.
type Team struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	CreatedBy   uuid.UUID      `json:"created_by" gorm:"type:uuid;not null"`
	Status      Status         `json:"status" gorm:"type:varchar(16);not null;default:open"`
	TechStack   profile.TagSet `json:"tech_stack" gorm:"type:text;serializer:json"`
	ProjectIdea ProjectIdea    `json:"project_idea" gorm:"embedded;embeddedPrefix:project_"`
	CreatedAt   time.Time      `json:"created_at"`
}

// TableName returns the database table name.
func (Team) TableName() string {
	return "teams"
}

// Member links a user to a team. Membership is keyed by (team, user) ids.
type Member struct {
	TeamID   uuid.UUID `json:"team_id" gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey;index"`
	Role     Role      `json:"role" gorm:"type:varchar(16);not null;default:member"`
	JoinedAt time.Time `json:"joined_at"`
}

// TableName returns the database table name.
func (Member) TableName() string {
	return "team_members"
}
