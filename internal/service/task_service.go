package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Marga-Ghale/synergysphere-backend/internal/notification"
	"github.com/Marga-Ghale/synergysphere-backend/internal/repository"
	"github.com/Marga-Ghale/synergysphere-backend/internal/socket"
	"github.com/Marga-Ghale/synergysphere-backend/internal/types"
)

// ============================================
// Task Service
// ============================================

type CreateTaskInput struct {
	ProjectID   int64
	Title       string
	Description *string
	AssignedTo  *int64
	DueDate     *types.Date
	Priority    types.Priority
	Tags        types.Tags
	Status      types.TaskStatus
	CreatedBy   *int64
}

type TaskService interface {
	ListByProject(ctx context.Context, projectID int64) ([]*repository.Task, error)
	ListByAssignee(ctx context.Context, userID int64) ([]*repository.Task, error)
	GetByID(ctx context.Context, id int64) (*repository.Task, error)
	Create(ctx context.Context, input CreateTaskInput, actorID *int64) (*repository.Task, error)
	Update(ctx context.Context, id int64, patch repository.TaskPatch) error
	UpdateStatus(ctx context.Context, id int64, status types.TaskStatus) error
	Delete(ctx context.Context, id int64) error
}

type taskService struct {
	taskRepo      repository.TaskRepository
	projectRepo   repository.ProjectRepository
	userRepo      repository.UserRepository
	notifSvc      *notification.Service
	broadcaster   *socket.Broadcaster
	defaultUserID int64
}

func NewTaskService(
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	notifSvc *notification.Service,
	broadcaster *socket.Broadcaster,
	defaultUserID int64,
) TaskService {
	return &taskService{
		taskRepo:      taskRepo,
		projectRepo:   projectRepo,
		userRepo:      userRepo,
		notifSvc:      notifSvc,
		broadcaster:   broadcaster,
		defaultUserID: defaultUserID,
	}
}

func (s *taskService) ListByProject(ctx context.Context, projectID int64) ([]*repository.Task, error) {
	return s.taskRepo.FindByProjectID(ctx, projectID)
}

func (s *taskService) ListByAssignee(ctx context.Context, userID int64) ([]*repository.Task, error) {
	return s.taskRepo.FindByAssignee(ctx, userID)
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*repository.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	return task, nil
}

func (s *taskService) Create(ctx context.Context, input CreateTaskInput, actorID *int64) (*repository.Task, error) {
	if input.ProjectID <= 0 {
		return nil, fmt.Errorf("%w: project_id is required", ErrInvalidInput)
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if input.Priority != "" && !input.Priority.IsValid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, input.Priority)
	}
	if input.Status != "" && !input.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, input.Status)
	}

	tags := input.Tags
	if tags == nil {
		tags = types.Tags{}
	}
	createdBy := creatorOf(input.CreatedBy, actorID, s.defaultUserID)

	task := &repository.Task{
		ProjectID:   input.ProjectID,
		Title:       title,
		Description: input.Description,
		AssignedTo:  input.AssignedTo,
		DueDate:     input.DueDate,
		Priority:    input.Priority.OrDefault(),
		Tags:        tags,
		Status:      input.Status.OrDefault(),
		CreatedBy:   &createdBy,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastTaskCreated(task.ProjectID, map[string]interface{}{
			"id":          task.ID,
			"project_id":  task.ProjectID,
			"title":       task.Title,
			"assigned_to": task.AssignedTo,
			"priority":    task.Priority,
			"status":      task.Status,
		})
	}

	if task.AssignedTo != nil {
		s.notifyAssignee(ctx, task)
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, id int64, patch repository.TaskPatch) error {
	if patch.IsEmpty() {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return fmt.Errorf("%w: title cannot be blank", ErrInvalidInput)
		}
		patch.Title = &title
	}
	if patch.Priority != nil && !patch.Priority.IsValid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *patch.Priority)
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *patch.Status)
	}

	before, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Update(ctx, id, patch); err != nil {
		return err
	}

	// Updating a missing task is not an error, there is just nobody to tell.
	if before == nil {
		return nil
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastTaskUpdated(before.ProjectID, id, patch.Columns())
	}

	if patch.AssignedTo != nil && !sameAssignee(before.AssignedTo, *patch.AssignedTo) {
		after, err := s.taskRepo.FindByID(ctx, id)
		if err != nil {
			log.Printf("[TaskService] Failed to reload task %d for assignment notice: %v", id, err)
			return nil
		}
		if after != nil {
			s.notifyAssignee(ctx, after)
		}
	}
	return nil
}

func (s *taskService) UpdateStatus(ctx context.Context, id int64, status types.TaskStatus) error {
	return s.Update(ctx, id, repository.TaskPatch{Status: &status})
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return err
	}
	if task != nil && s.broadcaster != nil {
		s.broadcaster.BroadcastTaskDeleted(task.ProjectID, id)
	}
	return nil
}

// notifyAssignee is best effort: lookup failures are logged, never returned.
func (s *taskService) notifyAssignee(ctx context.Context, task *repository.Task) {
	if s.notifSvc == nil || task.AssignedTo == nil {
		return
	}

	assignee, err := s.userRepo.FindByID(ctx, *task.AssignedTo)
	if err != nil {
		log.Printf("[TaskService] Failed to load assignee %d: %v", *task.AssignedTo, err)
		return
	}
	if assignee == nil {
		return
	}

	projectName := ""
	if task.ProjectName != nil {
		projectName = *task.ProjectName
	} else if project, err := s.projectRepo.FindByID(ctx, task.ProjectID); err == nil && project != nil {
		projectName = project.Name
	}

	s.notifSvc.SendTaskAssigned(task, assignee, projectName)
}

func sameAssignee(current *int64, next int64) bool {
	return current != nil && *current == next
}
