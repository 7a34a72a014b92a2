package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskhub/internal/dto"
	apierrors "taskhub/internal/errors"
	"taskhub/internal/models"
	"taskhub/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTaskRequest is shared by the standalone and the user-scoped create
// routes; the latter takes the owner from the path instead of the body.
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	UserID      uint64     `json:"user_id"`
}

// CreateTask creates a new task owned by the user named in the body
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.UserID == 0 {
		apierrors.BadRequest(c, "user_id is required")
		return
	}

	h.createTask(c, req, req.UserID)
}

// CreateUserTask creates a new task owned by the user named in the path
func (h *TaskHandler) CreateUserTask(c *gin.Context) {
	userID, ok := parseID(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	h.createTask(c, req, userID)
}

func (h *TaskHandler) createTask(c *gin.Context, req CreateTaskRequest, userID uint64) {
	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		DueDate:     req.DueDate,
		UserID:      userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks returns tasks, filtered by status and sorted when requested
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(
		c.Query("status"),
		c.Query("sort_by"),
		c.DefaultQuery("order", "asc"),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       *string            `json:"title"`
		Description optionalString     `json:"description"`
		Status      *models.TaskStatus `json:"status"`
		DueDate     *time.Time         `json:"due_date"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(id, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description.ptr(),
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ChangeStatus moves a task to one of the recognized statuses
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	type ChangeStatusRequest struct {
		Status models.TaskStatus `json:"status" binding:"required"`
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.ChangeStatus(id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task permanently
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
