package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/Marga-Ghale/synergysphere-backend/internal/types"
	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type Project struct {
	ID             int64               `db:"id"`
	Name           string              `db:"name"`
	Description    *string             `db:"description"`
	Tags           types.Tags          `db:"tags"`
	Priority       types.Priority      `db:"priority"`
	Deadline       *types.Date         `db:"deadline"`
	ImageURL       *string             `db:"image_url"`
	ProjectManager *int64              `db:"project_manager"`
	CreatedBy      int64               `db:"created_by"`
	Status         types.ProjectStatus `db:"status"`
	Pinned         bool                `db:"pinned"`
	CreatedAt      time.Time           `db:"created_at"`
	UpdatedAt      time.Time           `db:"updated_at"`

	// Joined from users on created_by
	CreatorName     *string `db:"creator_name"`
	CreatorLastName *string `db:"creator_last_name"`
}

// ProjectSummary is a list row with aggregated counts.
type ProjectSummary struct {
	Project
	MemberCount int64 `db:"member_count"`
	TaskCount   int64 `db:"task_count"`
}

type ProjectMember struct {
	ProjectID int64            `db:"project_id"`
	UserID    int64            `db:"user_id"`
	Role      types.MemberRole `db:"role"`
	JoinedAt  time.Time        `db:"joined_at"`
	FirstName string           `db:"first_name"`
	LastName  string           `db:"last_name"`
	Email     string           `db:"email"`
}

// ProjectPatch holds the fields of a partial update. Nil fields are left untouched.
type ProjectPatch struct {
	Name           *string
	Description    *string
	Tags           *types.Tags
	Priority       *types.Priority
	Deadline       *types.Date
	ImageURL       *string
	ProjectManager *int64
	Status         *types.ProjectStatus
	Pinned         *bool
}

func (p ProjectPatch) IsEmpty() bool {
	return len(p.fields()) == 0
}

// Columns lists the columns the patch sets, sorted.
func (p ProjectPatch) Columns() []string {
	f := p.fields()
	out := make([]string, 0, len(f))
	for k := range f {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (p ProjectPatch) fields() map[string]interface{} {
	f := map[string]interface{}{}
	if p.Name != nil {
		f["name"] = *p.Name
	}
	if p.Description != nil {
		f["description"] = *p.Description
	}
	if p.Tags != nil {
		f["tags"] = *p.Tags
	}
	if p.Priority != nil {
		f["priority"] = string(*p.Priority)
	}
	if p.Deadline != nil {
		f["deadline"] = *p.Deadline
	}
	if p.ImageURL != nil {
		f["image_url"] = *p.ImageURL
	}
	if p.ProjectManager != nil {
		f["project_manager"] = *p.ProjectManager
	}
	if p.Status != nil {
		f["status"] = string(*p.Status)
	}
	if p.Pinned != nil {
		f["pinned"] = *p.Pinned
	}
	return f
}

type ProjectRepository interface {
	List(ctx context.Context, search string) ([]*ProjectSummary, error)
	FindByID(ctx context.Context, id int64) (*Project, error)
	FindMembers(ctx context.Context, projectID int64) ([]*ProjectMember, error)
	// Create inserts the project and its memberships in one transaction.
	Create(ctx context.Context, project *Project, members []*ProjectMember) error
	Update(ctx context.Context, id int64, patch ProjectPatch) error
	Delete(ctx context.Context, id int64) error
}

var projectColumns = []string{
	"id", "name", "description", "tags", "priority", "deadline", "image_url",
	"project_manager", "created_by", "status", "pinned", "created_at", "updated_at",
}

type sqlProjectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) ProjectRepository {
	return &sqlProjectRepository{db: db}
}

func (r *sqlProjectRepository) List(ctx context.Context, search string) ([]*ProjectSummary, error) {
	columns := append(prefixed("p", projectColumns),
		"u.first_name AS creator_name",
		"u.last_name AS creator_last_name",
		"COUNT(DISTINCT pm.user_id) AS member_count",
		"COUNT(DISTINCT t.id) AS task_count",
	)

	b := psql.Select(columns...).
		From("projects p").
		Join("users u ON p.created_by = u.id").
		LeftJoin("project_members pm ON p.id = pm.project_id").
		LeftJoin("tasks t ON p.id = t.project_id")

	if search != "" {
		match := squirrel.Or{squirrel.ILike{"p.name": containsPattern(search)}}
		if id, err := strconv.ParseInt(search, 10, 64); err == nil {
			match = append(match, squirrel.Eq{"p.id": id})
		}
		b = b.Where(match)
	}

	b = b.GroupBy("p.id", "u.id").OrderBy("p.updated_at DESC")

	projects := []*ProjectSummary{}
	if err := getMany(ctx, r.db, b, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *sqlProjectRepository) FindByID(ctx context.Context, id int64) (*Project, error) {
	columns := append(prefixed("p", projectColumns),
		"u.first_name AS creator_name",
		"u.last_name AS creator_last_name",
	)
	b := psql.Select(columns...).
		From("projects p").
		LeftJoin("users u ON p.created_by = u.id").
		Where(squirrel.Eq{"p.id": id})

	p := &Project{}
	found, err := getOne(ctx, r.db, b, p)
	if err != nil || !found {
		return nil, err
	}
	return p, nil
}

func (r *sqlProjectRepository) FindMembers(ctx context.Context, projectID int64) ([]*ProjectMember, error) {
	b := psql.Select(
		"pm.project_id", "pm.user_id", "pm.role", "pm.joined_at",
		"u.first_name", "u.last_name", "u.email",
	).
		From("project_members pm").
		Join("users u ON pm.user_id = u.id").
		Where(squirrel.Eq{"pm.project_id": projectID}).
		OrderBy("pm.joined_at", "pm.user_id")

	members := []*ProjectMember{}
	if err := getMany(ctx, r.db, b, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *sqlProjectRepository) Create(ctx context.Context, project *Project, members []*ProjectMember) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	id, err := insert(ctx, tx, "projects",
		[]string{"name", "description", "tags", "priority", "deadline", "image_url", "project_manager", "created_by", "status", "pinned"},
		project.Name, project.Description, project.Tags, string(project.Priority), project.Deadline,
		project.ImageURL, project.ProjectManager, project.CreatedBy, string(project.Status), project.Pinned,
	)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	for _, m := range members {
		m.ProjectID = id
		b := psql.Insert("project_members").
			Columns("project_id", "user_id", "role").
			Values(m.ProjectID, m.UserID, string(m.Role))
		if _, err = executeQuery(ctx, tx, b); err != nil {
			return fmt.Errorf("failed to add %s membership: %w", m.Role, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit project: %w", err)
	}

	project.ID = id
	return nil
}

func (r *sqlProjectRepository) Update(ctx context.Context, id int64, patch ProjectPatch) error {
	return update(ctx, r.db, "projects", id, patch.fields())
}

func (r *sqlProjectRepository) Delete(ctx context.Context, id int64) error {
	_, err := executeQuery(ctx, r.db, psql.Delete("projects").Where(squirrel.Eq{"id": id}))
	return err
}
