package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/synergysphere-backend/internal/api/middleware"
	"github.com/Marga-Ghale/synergysphere-backend/internal/models"
	"github.com/Marga-Ghale/synergysphere-backend/internal/repository"
	"github.com/Marga-Ghale/synergysphere-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ============================================
// Task Handler
// ============================================

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListByProject - GET /api/tasks/project/:projectId
func (h *TaskHandler) ListByProject(c *gin.Context) {
	projectID, ok := paramID(c, "projectId")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponses(tasks))
}

// ListByAssignee - GET /api/tasks/my-tasks/:userId
func (h *TaskHandler) ListByAssignee(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByAssignee(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponses(tasks))
}

// Get - GET /api/tasks/:taskId
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "taskId")
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Create - POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), service.CreateTaskInput{
		ProjectID:   int64(req.ProjectID),
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo.Int64Ptr(),
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Tags:        req.Tags,
		Status:      req.Status,
		CreatedBy:   req.CreatedBy.Int64Ptr(),
	}, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.CreatedResponse{ID: task.ID, Message: "Task created successfully"})
}

// Update - PUT /api/tasks/:taskId
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "taskId")
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.taskService.Update(c.Request.Context(), id, repository.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo.Int64Ptr(),
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Tags:        req.Tags,
		Status:      req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Task updated successfully"})
}

// UpdateStatus - PATCH /api/tasks/:taskId/status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "taskId")
	if !ok {
		return
	}

	var req models.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.taskService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Task status updated successfully"})
}

// Delete - DELETE /api/tasks/:taskId
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "taskId")
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Task deleted successfully"})
}
