package models

import (
	"time"

	"github.com/Marga-Ghale/synergysphere-backend/internal/types"
)

// Request models
type CreateProjectRequest struct {
	Name           string         `json:"name" binding:"required"`
	Description    *string        `json:"description"`
	Tags           types.Tags     `json:"tags"`
	Priority       types.Priority `json:"priority"`
	Deadline       *types.Date    `json:"deadline"`
	ProjectManager *types.ID      `json:"project_manager"`
	Image          *string        `json:"image"`
	CreatedBy      *types.ID      `json:"created_by"`
}

// UpdateProjectRequest is a partial update. Absent and null fields are left as they are.
type UpdateProjectRequest struct {
	Name           *string              `json:"name"`
	Description    *string              `json:"description"`
	Tags           *types.Tags          `json:"tags"`
	Priority       *types.Priority      `json:"priority"`
	Deadline       *types.Date          `json:"deadline"`
	ProjectManager *types.ID            `json:"project_manager"`
	Image          *string              `json:"image"`
	ImageURL       *string              `json:"image_url"`
	Status         *types.ProjectStatus `json:"status"`
	Pinned         *bool                `json:"pinned"`
}

type UpdateProjectStatusRequest struct {
	Status types.ProjectStatus `json:"status" binding:"required"`
}

type PinProjectRequest struct {
	Pinned *bool `json:"pinned" binding:"required"`
}

// Response models
type ProjectResponse struct {
	ID              int64               `json:"id"`
	Name            string              `json:"name"`
	Description     *string             `json:"description"`
	Tags            types.Tags          `json:"tags"`
	Priority        types.Priority      `json:"priority"`
	Deadline        *types.Date         `json:"deadline"`
	ImageURL        *string             `json:"image_url"`
	ProjectManager  *int64              `json:"project_manager"`
	CreatedBy       int64               `json:"created_by"`
	Status          types.ProjectStatus `json:"status"`
	Pinned          bool                `json:"pinned"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	CreatorName     *string             `json:"creator_name"`
	CreatorLastName *string             `json:"creator_last_name"`
}

type ProjectSummaryResponse struct {
	ProjectResponse
	MemberCount int64     `json:"member_count"`
	TaskCount   int64     `json:"task_count"`
	LastUpdated time.Time `json:"last_updated"`
}

type ProjectMemberResponse struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Email     string           `json:"email"`
	Role      types.MemberRole `json:"role"`
	JoinedAt  time.Time        `json:"joined_at"`
}

type ProjectDetailResponse struct {
	ProjectResponse
	Members   []ProjectMemberResponse `json:"members"`
	Tasks     []TaskResponse          `json:"tasks"`
	TaskCount int                     `json:"task_count"`
}
