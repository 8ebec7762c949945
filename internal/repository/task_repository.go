package repository

import (
	"context"
	"sort"
	"time"

	"github.com/Marga-Ghale/synergysphere-backend/internal/types"
	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type Task struct {
	ID          int64            `db:"id"`
	ProjectID   int64            `db:"project_id"`
	Title       string           `db:"title"`
	Description *string          `db:"description"`
	AssignedTo  *int64           `db:"assigned_to"`
	DueDate     *types.Date      `db:"due_date"`
	Priority    types.Priority   `db:"priority"`
	Tags        types.Tags       `db:"tags"`
	Status      types.TaskStatus `db:"status"`
	CreatedBy   *int64           `db:"created_by"`
	CreatedAt   time.Time        `db:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at"`

	// Joined columns, only filled by the queries that select them
	AssigneeName     *string `db:"assignee_name"`
	AssigneeLastName *string `db:"assignee_last_name"`
	AssigneeEmail    *string `db:"assignee_email"`
	CreatorName      *string `db:"creator_name"`
	CreatorLastName  *string `db:"creator_last_name"`
	ProjectName      *string `db:"project_name"`
}

// TaskPatch holds the fields of a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	AssignedTo  *int64
	DueDate     *types.Date
	Priority    *types.Priority
	Tags        *types.Tags
	Status      *types.TaskStatus
}

func (p TaskPatch) IsEmpty() bool {
	return len(p.fields()) == 0
}

// Columns lists the columns the patch sets, sorted.
func (p TaskPatch) Columns() []string {
	f := p.fields()
	out := make([]string, 0, len(f))
	for k := range f {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (p TaskPatch) fields() map[string]interface{} {
	f := map[string]interface{}{}
	if p.Title != nil {
		f["title"] = *p.Title
	}
	if p.Description != nil {
		f["description"] = *p.Description
	}
	if p.AssignedTo != nil {
		f["assigned_to"] = *p.AssignedTo
	}
	if p.DueDate != nil {
		f["due_date"] = *p.DueDate
	}
	if p.Priority != nil {
		f["priority"] = string(*p.Priority)
	}
	if p.Tags != nil {
		f["tags"] = *p.Tags
	}
	if p.Status != nil {
		f["status"] = string(*p.Status)
	}
	return f
}

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id int64) (*Task, error)
	Update(ctx context.Context, id int64, patch TaskPatch) error
	Delete(ctx context.Context, id int64) error

	// Newest first
	FindByProjectID(ctx context.Context, projectID int64) ([]*Task, error)
	// Earliest due date first, undated last
	FindByAssignee(ctx context.Context, userID int64) ([]*Task, error)

	// Scheduler scans
	FindDueWithin(ctx context.Context, window time.Duration) ([]*Task, error)
	FindOverdue(ctx context.Context) ([]*Task, error)
}

var taskColumns = []string{
	"id", "project_id", "title", "description", "assigned_to", "due_date",
	"priority", "tags", "status", "created_by", "created_at", "updated_at",
}

type sqlTaskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &sqlTaskRepository{db: db}
}

func (r *sqlTaskRepository) Create(ctx context.Context, task *Task) error {
	id, err := insert(ctx, r.db, "tasks",
		[]string{"project_id", "title", "description", "assigned_to", "due_date", "priority", "tags", "status", "created_by"},
		task.ProjectID, task.Title, task.Description, task.AssignedTo, task.DueDate,
		string(task.Priority), task.Tags, string(task.Status), task.CreatedBy,
	)
	if err != nil {
		return err
	}
	task.ID = id
	return nil
}

func (r *sqlTaskRepository) FindByID(ctx context.Context, id int64) (*Task, error) {
	b := r.selectWithPeople().Where(squirrel.Eq{"t.id": id})

	task := &Task{}
	found, err := getOne(ctx, r.db, b, task)
	if err != nil || !found {
		return nil, err
	}
	return task, nil
}

func (r *sqlTaskRepository) Update(ctx context.Context, id int64, patch TaskPatch) error {
	return update(ctx, r.db, "tasks", id, patch.fields())
}

func (r *sqlTaskRepository) Delete(ctx context.Context, id int64) error {
	_, err := executeQuery(ctx, r.db, psql.Delete("tasks").Where(squirrel.Eq{"id": id}))
	return err
}

func (r *sqlTaskRepository) FindByProjectID(ctx context.Context, projectID int64) ([]*Task, error) {
	b := r.selectWithPeople().
		Where(squirrel.Eq{"t.project_id": projectID}).
		OrderBy("t.created_at DESC")

	tasks := []*Task{}
	if err := getMany(ctx, r.db, b, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *sqlTaskRepository) FindByAssignee(ctx context.Context, userID int64) ([]*Task, error) {
	columns := append(prefixed("t", taskColumns),
		"p.name AS project_name",
		"c.first_name AS creator_name",
		"c.last_name AS creator_last_name",
	)
	b := psql.Select(columns...).
		From("tasks t").
		Join("projects p ON t.project_id = p.id").
		LeftJoin("users c ON t.created_by = c.id").
		Where(squirrel.Eq{"t.assigned_to": userID}).
		OrderBy("t.due_date ASC NULLS LAST", "t.created_at DESC")

	tasks := []*Task{}
	if err := getMany(ctx, r.db, b, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *sqlTaskRepository) FindDueWithin(ctx context.Context, window time.Duration) ([]*Task, error) {
	now := time.Now()
	b := r.selectForReminders().
		Where(squirrel.GtOrEq{"t.due_date": types.NewDate(now.Year(), now.Month(), now.Day())}).
		Where(squirrel.LtOrEq{"t.due_date": dateOf(now.Add(window))})

	tasks := []*Task{}
	if err := getMany(ctx, r.db, b, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *sqlTaskRepository) FindOverdue(ctx context.Context) ([]*Task, error) {
	b := r.selectForReminders().
		Where(squirrel.Lt{"t.due_date": dateOf(time.Now())})

	tasks := []*Task{}
	if err := getMany(ctx, r.db, b, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *sqlTaskRepository) selectWithPeople() squirrel.SelectBuilder {
	columns := append(prefixed("t", taskColumns),
		"a.first_name AS assignee_name",
		"a.last_name AS assignee_last_name",
		"a.email AS assignee_email",
		"c.first_name AS creator_name",
		"c.last_name AS creator_last_name",
		"p.name AS project_name",
	)
	return psql.Select(columns...).
		From("tasks t").
		LeftJoin("users a ON t.assigned_to = a.id").
		LeftJoin("users c ON t.created_by = c.id").
		LeftJoin("projects p ON t.project_id = p.id")
}

// Open, assigned, dated tasks with the fields a reminder needs.
func (r *sqlTaskRepository) selectForReminders() squirrel.SelectBuilder {
	columns := append(prefixed("t", taskColumns),
		"a.first_name AS assignee_name",
		"a.last_name AS assignee_last_name",
		"a.email AS assignee_email",
		"p.name AS project_name",
	)
	return psql.Select(columns...).
		From("tasks t").
		Join("users a ON t.assigned_to = a.id").
		Join("projects p ON t.project_id = p.id").
		Where(squirrel.NotEq{"t.status": string(types.TaskDone)}).
		Where("t.due_date IS NOT NULL").
		OrderBy("t.due_date ASC", "t.id ASC")
}

func dateOf(t time.Time) types.Date {
	return types.NewDate(t.Year(), t.Month(), t.Day())
}
