package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Marga-Ghale/synergysphere-backend/internal/repository"
	"github.com/Marga-Ghale/synergysphere-backend/internal/socket"
	"github.com/Marga-Ghale/synergysphere-backend/internal/types"
)

// ============================================
// Project Service
// ============================================

type CreateProjectInput struct {
	Name           string
	Description    *string
	Tags           types.Tags
	Priority       types.Priority
	Deadline       *types.Date
	ProjectManager *int64
	ImageURL       *string
	CreatedBy      *int64
}

// ProjectDetail is a project with its members and tasks.
type ProjectDetail struct {
	Project *repository.Project
	Members []*repository.ProjectMember
	Tasks   []*repository.Task
}

type ProjectService interface {
	List(ctx context.Context, search string) ([]*repository.ProjectSummary, error)
	GetByID(ctx context.Context, id int64) (*repository.Project, error)
	GetDetail(ctx context.Context, id int64) (*ProjectDetail, error)
	// actorID is the authenticated user, if any.
	Create(ctx context.Context, input CreateProjectInput, actorID *int64) (*repository.Project, error)
	Update(ctx context.Context, id int64, patch repository.ProjectPatch) error
	UpdateStatus(ctx context.Context, id int64, status types.ProjectStatus) error
	SetPinned(ctx context.Context, id int64, pinned bool) error
	Delete(ctx context.Context, id int64) error
}

type projectService struct {
	projectRepo   repository.ProjectRepository
	taskRepo      repository.TaskRepository
	broadcaster   *socket.Broadcaster
	defaultUserID int64
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	broadcaster *socket.Broadcaster,
	defaultUserID int64,
) ProjectService {
	return &projectService{
		projectRepo:   projectRepo,
		taskRepo:      taskRepo,
		broadcaster:   broadcaster,
		defaultUserID: defaultUserID,
	}
}

func (s *projectService) List(ctx context.Context, search string) ([]*repository.ProjectSummary, error) {
	return s.projectRepo.List(ctx, strings.TrimSpace(search))
}

func (s *projectService) GetByID(ctx context.Context, id int64) (*repository.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	return project, nil
}

func (s *projectService) GetDetail(ctx context.Context, id int64) (*ProjectDetail, error) {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	members, err := s.projectRepo.FindMembers(ctx, id)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.FindByProjectID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ProjectDetail{Project: project, Members: members, Tasks: tasks}, nil
}

func (s *projectService) Create(ctx context.Context, input CreateProjectInput, actorID *int64) (*repository.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.Priority != "" && !input.Priority.IsValid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, input.Priority)
	}

	tags := input.Tags
	if tags == nil {
		tags = types.Tags{}
	}

	project := &repository.Project{
		Name:           name,
		Description:    input.Description,
		Tags:           tags,
		Priority:       input.Priority.OrDefault(),
		Deadline:       input.Deadline,
		ImageURL:       input.ImageURL,
		ProjectManager: input.ProjectManager,
		CreatedBy:      creatorOf(input.CreatedBy, actorID, s.defaultUserID),
		Status:         types.ProjectPlanning,
	}

	members := []*repository.ProjectMember{{UserID: project.CreatedBy, Role: types.RoleOwner}}
	if pm := input.ProjectManager; pm != nil && *pm != project.CreatedBy {
		members = append(members, &repository.ProjectMember{UserID: *pm, Role: types.RoleManager})
	}

	if err := s.projectRepo.Create(ctx, project, members); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastProjectCreated(project.ID, map[string]interface{}{
			"id":         project.ID,
			"name":       project.Name,
			"priority":   project.Priority,
			"status":     project.Status,
			"created_by": project.CreatedBy,
		})
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, id int64, patch repository.ProjectPatch) error {
	if patch.IsEmpty() {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return fmt.Errorf("%w: name cannot be blank", ErrInvalidInput)
		}
		patch.Name = &name
	}
	if patch.Priority != nil && !patch.Priority.IsValid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *patch.Priority)
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *patch.Status)
	}

	if err := s.projectRepo.Update(ctx, id, patch); err != nil {
		return err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastProjectUpdated(id, patch.Columns())
	}
	return nil
}

func (s *projectService) UpdateStatus(ctx context.Context, id int64, status types.ProjectStatus) error {
	return s.Update(ctx, id, repository.ProjectPatch{Status: &status})
}

func (s *projectService) SetPinned(ctx context.Context, id int64, pinned bool) error {
	return s.Update(ctx, id, repository.ProjectPatch{Pinned: &pinned})
}

func (s *projectService) Delete(ctx context.Context, id int64) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastProjectDeleted(id)
	}
	return nil
}
