package board

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/buildmate/server/internal/shared/middleware"
	"github.com/buildmate/server/internal/shared/response"
)

// Handler handles HTTP requests for task boards.
type Handler struct {
	service *Service
}

// NewHandler creates a new board handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers board routes on an authenticated group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	projects := r.Group("/projects/:id")
	{
		projects.GET("/board", h.GetBoard)
		projects.POST("/tasks", h.CreateTask)
		projects.POST("/tasks/:task_id/move", h.MoveTask)
		projects.PUT("/tasks/:task_id/column", h.SetColumn)
		projects.PUT("/tasks/:task_id/assignee", h.AssignTask)
	}
}

// GetBoard returns the project's board.
func (h *Handler) GetBoard(c *gin.Context) {
	userID, projectID, ok := h.projectParams(c)
	if !ok {
		return
	}

	view, err := h.service.GetBoard(c.Request.Context(), projectID, userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CreateTask adds a task to a column.
func (h *Handler) CreateTask(c *gin.Context) {
	userID, projectID, ok := h.projectParams(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.service.CreateTask(c.Request.Context(), projectID, userID, &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// MoveTask moves a task one column left or right.
func (h *Handler) MoveTask(c *gin.Context) {
	userID, projectID, taskID, ok := h.taskParams(c)
	if !ok {
		return
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.service.MoveTask(c.Request.Context(), projectID, taskID, userID, req.Direction)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// SetColumn places a task directly in a column.
func (h *Handler) SetColumn(c *gin.Context) {
	userID, projectID, taskID, ok := h.taskParams(c)
	if !ok {
		return
	}

	var req SetColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.service.SetColumn(c.Request.Context(), projectID, taskID, userID, req.ColumnID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// AssignTask sets or clears a task's assignee.
func (h *Handler) AssignTask(c *gin.Context) {
	userID, projectID, taskID, ok := h.taskParams(c)
	if !ok {
		return
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.service.AssignTask(c.Request.Context(), projectID, taskID, userID, req.UserID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) projectParams(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, projectID, true
}

func (h *Handler) taskParams(c *gin.Context) (uuid.UUID, uuid.UUID, uuid.UUID, bool) {
	userID, projectID, ok := h.projectParams(c)
	if !ok {
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	return userID, projectID, taskID, true
}
