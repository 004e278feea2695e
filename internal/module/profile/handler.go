package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/buildmate/server/internal/shared/middleware"
	"github.com/buildmate/server/internal/shared/pagination"
	"github.com/buildmate/server/internal/shared/response"
)

// Handler handles HTTP requests for profiles.
type Handler struct {
	service *Service
}

// NewHandler creates a new profile handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers profile routes on an authenticated group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	profiles := r.Group("/profiles")
	{
		profiles.GET("", h.ListProfiles)
		profiles.GET("/me", h.GetMyProfile)
		profiles.PUT("/me", h.UpdateMyProfile)
		profiles.GET("/:id", h.GetProfile)
	}
}

// GetMyProfile returns the caller's profile.
func (h *Handler) GetMyProfile(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	p, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateMyProfile creates or replaces the caller's profile.
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetProfile returns a profile by id.
func (h *Handler) GetProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid profile id")
		return
	}

	p, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListProfiles returns one page of profiles.
func (h *Handler) ListProfiles(c *gin.Context) {
	page := pagination.New()
	if err := c.ShouldBindQuery(page); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profiles, total, err := h.service.ListProfiles(c.Request.Context(), page)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListProfilesResponse{
		Profiles:   profiles,
		Pagination: page.Info(total),
	})
}
