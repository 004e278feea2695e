package team

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/buildmate/server/internal/shared/middleware"
	"github.com/buildmate/server/internal/shared/pagination"
	"github.com/buildmate/server/internal/shared/response"
)

// Handler handles HTTP requests for teams.
type Handler struct {
	service *Service
}

// NewHandler creates a new team handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers team routes on an authenticated group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	teams := r.Group("/teams")
	{
		teams.POST("", h.CreateTeam)
		teams.GET("", h.ListMyTeams)
		teams.GET("/:id", h.GetTeam)
		teams.POST("/:id/members", h.AddMember)
	}
}

// CreateTeam creates a team owned by the caller.
func (h *Handler) CreateTeam(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	team, err := h.service.CreateTeam(c.Request.Context(), userID, &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, team)
}

// ListMyTeams lists the caller's teams.
func (h *Handler) ListMyTeams(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	page := pagination.New()
	if err := c.ShouldBindQuery(page); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	teams, total, err := h.service.ListMyTeams(c.Request.Context(), userID, page)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListTeamsResponse{Teams: teams, Pagination: page.Info(total)})
}

// GetTeam returns a team the caller belongs to.
func (h *Handler) GetTeam(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid team id")
		return
	}

	detail, err := h.service.GetTeam(c.Request.Context(), teamID, userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// AddMember adds a user to the caller's team.
func (h *Handler) AddMember(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid team id")
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.service.AddMember(c.Request.Context(), teamID, userID, req.UserID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}
