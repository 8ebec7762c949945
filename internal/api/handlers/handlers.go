package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Marga-Ghale/synergysphere-backend/internal/models"
	"github.com/Marga-Ghale/synergysphere-backend/internal/repository"
	"github.com/Marga-Ghale/synergysphere-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	User    *UserHandler
	Project *ProjectHandler
	Task    *TaskHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		User:    NewUserHandler(services.User),
		Project: NewProjectHandler(services.Project),
		Task:    NewTaskHandler(services.Task),
	}
}

// ============================================
// Request Helpers
// ============================================

// paramID parses a numeric path parameter, answering 400 when it is malformed.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// respondError maps service errors onto status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("❌ [API] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ============================================
// Response Mappers
// ============================================

func toUserResponse(u *repository.User) models.UserResponse {
	return models.UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []*repository.User) []models.UserResponse {
	out := make([]models.UserResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}

func toProjectResponse(p *repository.Project) models.ProjectResponse {
	return models.ProjectResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Tags:            p.Tags,
		Priority:        p.Priority,
		Deadline:        p.Deadline,
		ImageURL:        p.ImageURL,
		ProjectManager:  p.ProjectManager,
		CreatedBy:       p.CreatedBy,
		Status:          p.Status,
		Pinned:          p.Pinned,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		CreatorName:     p.CreatorName,
		CreatorLastName: p.CreatorLastName,
	}
}

func toProjectSummaryResponse(p *repository.ProjectSummary) models.ProjectSummaryResponse {
	return models.ProjectSummaryResponse{
		ProjectResponse: toProjectResponse(&p.Project),
		MemberCount:     p.MemberCount,
		TaskCount:       p.TaskCount,
		LastUpdated:     p.UpdatedAt,
	}
}

func toProjectDetailResponse(d *service.ProjectDetail) models.ProjectDetailResponse {
	members := make([]models.ProjectMemberResponse, len(d.Members))
	for i, m := range d.Members {
		members[i] = models.ProjectMemberResponse{
			ID:        m.UserID,
			UserID:    m.UserID,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Email:     m.Email,
			Role:      m.Role,
			JoinedAt:  m.JoinedAt,
		}
	}

	tasks := toTaskResponses(d.Tasks)
	return models.ProjectDetailResponse{
		ProjectResponse: toProjectResponse(d.Project),
		Members:         members,
		Tasks:           tasks,
		TaskCount:       len(tasks),
	}
}

func toTaskResponse(t *repository.Task) models.TaskResponse {
	return models.TaskResponse{
		ID:               t.ID,
		ProjectID:        t.ProjectID,
		Title:            t.Title,
		Description:      t.Description,
		AssignedTo:       t.AssignedTo,
		DueDate:          t.DueDate,
		Priority:         t.Priority,
		Tags:             t.Tags,
		Status:           t.Status,
		CreatedBy:        t.CreatedBy,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
		AssigneeName:     t.AssigneeName,
		AssigneeLastName: t.AssigneeLastName,
		AssigneeEmail:    t.AssigneeEmail,
		CreatorName:      t.CreatorName,
		CreatorLastName:  t.CreatorLastName,
		ProjectName:      t.ProjectName,
	}
}

func toTaskResponses(tasks []*repository.Task) []models.TaskResponse {
	out := make([]models.TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}
