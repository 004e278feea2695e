package connection

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/buildmate/server/internal/shared/middleware"
	"github.com/buildmate/server/internal/shared/response"
)

// Handler handles HTTP requests for connection requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new connection handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers connection routes on an authenticated group.
// submitGuards run before POST /connections, e.g. a rate limiter.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, submitGuards ...gin.HandlerFunc) {
	connections := r.Group("/connections")
	{
		connections.POST("", append(submitGuards, h.Submit)...)
		connections.GET("", h.ListConnections)
		connections.GET("/incoming", h.ListIncoming)
		connections.GET("/outgoing", h.ListOutgoing)
		connections.POST("/:id/accept", h.Accept)
		connections.POST("/:id/reject", h.Reject)
	}
}

// Submit sends a connection request.
func (h *Handler) Submit(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Submit(c.Request.Context(), userID, req.ToID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Accept accepts a request addressed to the caller.
func (h *Handler) Accept(c *gin.Context) {
	h.resolve(c, StatusAccepted)
}

// Reject rejects a request addressed to the caller.
func (h *Handler) Reject(c *gin.Context) {
	h.resolve(c, StatusRejected)
}

func (h *Handler) resolve(c *gin.Context, decision Status) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid request id")
		return
	}

	req, err := h.service.Resolve(c.Request.Context(), requestID, decision, userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// ListIncoming lists requests addressed to the caller; pending by default.
func (h *Handler) ListIncoming(c *gin.Context) {
	userID, status, ok := h.bindList(c)
	if !ok {
		return
	}

	reqs, err := h.service.Incoming(c.Request.Context(), userID, status)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, RequestsResponse{Requests: reqs})
}

// ListOutgoing lists requests sent by the caller.
func (h *Handler) ListOutgoing(c *gin.Context) {
	userID, status, ok := h.bindList(c)
	if !ok {
		return
	}

	reqs, err := h.service.Outgoing(c.Request.Context(), userID, status)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, RequestsResponse{Requests: reqs})
}

// ListConnections lists the caller's accepted connections.
func (h *Handler) ListConnections(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	conns, err := h.service.Connections(c.Request.Context(), userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ConnectionsResponse{Connections: conns})
}

func (h *Handler) bindList(c *gin.Context) (uuid.UUID, *Status, bool) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return uuid.Nil, nil, false
	}

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return uuid.Nil, nil, false
	}
	if q.Status == "" {
		return userID, nil, true
	}
	return userID, &q.Status, true
}
