package matching

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/buildmate/server/internal/shared/middleware"
	"github.com/buildmate/server/internal/shared/response"
)

// Handler handles HTTP requests for matches.
type Handler struct {
	service      *Service
	defaultLimit int
}

// NewHandler creates a new matching handler. defaultLimit applies when the
// request has no limit; zero returns the full list.
func NewHandler(service *Service, defaultLimit int) *Handler {
	return &Handler{service: service, defaultLimit: defaultLimit}
}

// RegisterRoutes registers matching routes on an authenticated group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	matches := r.Group("/matches")
	{
		matches.GET("", h.ListMatches)
		matches.GET("/:candidate_id", h.GetMatch)
	}
}

// ListMatchesQuery holds the list query parameters.
type ListMatchesQuery struct {
	Limit *int   `form:"limit" binding:"omitempty,min=1,max=500"`
	Query string `form:"q" binding:"max=100"`
}

// ListMatchesResponse is a ranked list.
type ListMatchesResponse struct {
	Matches []Match `json:"matches"`
}

// ListMatches returns the caller's ranked candidates.
func (h *Handler) ListMatches(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	var q ListMatchesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	opts := ListOptions{Limit: h.defaultLimit, Query: q.Query}
	if q.Limit != nil {
		opts.Limit = *q.Limit
	}

	matches, err := h.service.Matches(c.Request.Context(), userID, opts)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListMatchesResponse{Matches: matches})
}

// GetMatch returns the caller's score for one candidate.
func (h *Handler) GetMatch(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	candidateID, err := uuid.Parse(c.Param("candidate_id"))
	if err != nil {
		response.BadRequest(c, "invalid candidate id")
		return
	}

	match, err := h.service.ScorePair(c.Request.Context(), userID, candidateID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}
