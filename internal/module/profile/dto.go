package profile

import "github.com/buildmate/server/internal/shared/pagination"

// UpdateProfileRequest replaces the caller's editable profile fields.
type UpdateProfileRequest struct {
	Name               string   `json:"name" binding:"required,max=100"`
	Bio                string   `json:"bio" binding:"max=1000"`
	AvatarURL          string   `json:"avatar_url" binding:"omitempty,url"`
	Skills             []string `json:"skills" binding:"max=50"`
	Interests          []string `json:"interests" binding:"max=50"`
	ProjectPreferences string   `json:"project_preferences" binding:"max=1000"`
}

// ListProfilesResponse is one page of profiles.
type ListProfilesResponse struct {
	Profiles   []*Profile          `json:"profiles"`
	Pagination pagination.PageInfo `json:"pagination"`
}
