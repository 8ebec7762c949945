package models

import (
	"time"

	"github.com/Marga-Ghale/synergysphere-backend/internal/types"
)

// Request models
type CreateTaskRequest struct {
	ProjectID   types.ID         `json:"project_id" binding:"required"`
	Title       string           `json:"title" binding:"required"`
	Description *string          `json:"description"`
	AssignedTo  *types.ID        `json:"assigned_to"`
	DueDate     *types.Date      `json:"due_date"`
	Priority    types.Priority   `json:"priority"`
	Tags        types.Tags       `json:"tags"`
	Status      types.TaskStatus `json:"status"`
	CreatedBy   *types.ID        `json:"created_by"`
}

type UpdateTaskRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	AssignedTo  *types.ID         `json:"assigned_to"`
	DueDate     *types.Date       `json:"due_date"`
	Priority    *types.Priority   `json:"priority"`
	Tags        *types.Tags       `json:"tags"`
	Status      *types.TaskStatus `json:"status"`
}

type UpdateTaskStatusRequest struct {
	Status types.TaskStatus `json:"status" binding:"required"`
}

// Response models
type TaskResponse struct {
	ID          int64            `json:"id"`
	ProjectID   int64            `json:"project_id"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	AssignedTo  *int64           `json:"assigned_to"`
	DueDate     *types.Date      `json:"due_date"`
	Priority    types.Priority   `json:"priority"`
	Tags        types.Tags       `json:"tags"`
	Status      types.TaskStatus `json:"status"`
	CreatedBy   *int64           `json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// Present only on the queries that join them
	AssigneeName     *string `json:"assignee_name,omitempty"`
	AssigneeLastName *string `json:"assignee_last_name,omitempty"`
	AssigneeEmail    *string `json:"assignee_email,omitempty"`
	CreatorName      *string `json:"creator_name,omitempty"`
	CreatorLastName  *string `json:"creator_last_name,omitempty"`
	ProjectName      *string `json:"project_name,omitempty"`
}
