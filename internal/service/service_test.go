package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Marga-Ghale/synergysphere-backend/internal/email"
	"github.com/Marga-Ghale/synergysphere-backend/internal/notification"
	"github.com/Marga-Ghale/synergysphere-backend/internal/repository"
	"github.com/Marga-Ghale/synergysphere-backend/internal/socket"
	"github.com/Marga-Ghale/synergysphere-backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// ============================================
// Fakes
// ============================================

type fakeProjectRepo struct {
	projects map[int64]*repository.Project
	members  map[int64][]*repository.ProjectMember
	patches  []repository.ProjectPatch
	lastList string
	nextID   int64
	err      error
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{
		projects: map[int64]*repository.Project{},
		members:  map[int64][]*repository.ProjectMember{},
		nextID:   1,
	}
}

func (r *fakeProjectRepo) List(_ context.Context, search string) ([]*repository.ProjectSummary, error) {
	r.lastList = search
	out := []*repository.ProjectSummary{}
	for _, p := range r.projects {
		out = append(out, &repository.ProjectSummary{Project: *p})
	}
	return out, r.err
}

func (r *fakeProjectRepo) FindByID(_ context.Context, id int64) (*repository.Project, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.projects[id], nil
}

func (r *fakeProjectRepo) FindMembers(_ context.Context, id int64) ([]*repository.ProjectMember, error) {
	return r.members[id], r.err
}

func (r *fakeProjectRepo) Create(_ context.Context, p *repository.Project, members []*repository.ProjectMember) error {
	if r.err != nil {
		return r.err
	}
	p.ID = r.nextID
	r.nextID++
	r.projects[p.ID] = p
	for _, m := range members {
		m.ProjectID = p.ID
	}
	r.members[p.ID] = members
	return nil
}

func (r *fakeProjectRepo) Update(_ context.Context, _ int64, patch repository.ProjectPatch) error {
	r.patches = append(r.patches, patch)
	return r.err
}

func (r *fakeProjectRepo) Delete(_ context.Context, id int64) error {
	delete(r.projects, id)
	return r.err
}

type fakeTaskRepo struct {
	repository.TaskRepository
	tasks   map[int64]*repository.Task
	patches []repository.TaskPatch
	nextID  int64
	err     error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[int64]*repository.Task{}, nextID: 1}
}

func (r *fakeTaskRepo) Create(_ context.Context, t *repository.Task) error {
	if r.err != nil {
		return r.err
	}
	t.ID = r.nextID
	r.nextID++
	r.tasks[t.ID] = t
	return nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id int64) (*repository.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, id int64, patch repository.TaskPatch) error {
	r.patches = append(r.patches, patch)
	if t, ok := r.tasks[id]; ok && patch.AssignedTo != nil {
		t.AssignedTo = patch.AssignedTo
	}
	return r.err
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	delete(r.tasks, id)
	return r.err
}

func (r *fakeTaskRepo) FindByProjectID(_ context.Context, projectID int64) ([]*repository.Task, error) {
	out := []*repository.Task{}
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, r.err
}

type fakeUserRepo struct {
	repository.UserRepository
	users map[int64]*repository.User
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*repository.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindAll(context.Context) ([]*repository.User, error) {
	out := []*repository.User{}
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []socket.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev socket.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) rooms(msgType socket.MessageType) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, ev := range p.events {
		if ev.Type == msgType {
			out = append(out, ev.Room)
		}
	}
	return out
}

type fakeMailer struct {
	assigned []string
}

func (m *fakeMailer) SendTaskAssigned(to string, _ email.TaskAssignedData) error {
	m.assigned = append(m.assigned, to)
	return nil
}

func (m *fakeMailer) SendDueDateReminder(string, email.DueDateReminderData) error { return nil }

// ============================================
// Project Service
// ============================================

func TestProjectServiceCreate(t *testing.T) {
	t.Run("applies defaults and owner membership", func(t *testing.T) {
		repo := newFakeProjectRepo()
		pub := &recordingPublisher{}
		svc := NewProjectService(repo, newFakeTaskRepo(), socket.NewBroadcaster(pub), 1)

		project, err := svc.Create(context.Background(), CreateProjectInput{Name: "  Apollo  "}, nil)
		require.NoError(t, err)

		assert.Equal(t, "Apollo", project.Name)
		assert.Equal(t, types.PriorityMedium, project.Priority)
		assert.Equal(t, types.ProjectPlanning, project.Status)
		assert.Equal(t, int64(1), project.CreatedBy)
		assert.Equal(t, types.Tags{}, project.Tags)

		members := repo.members[project.ID]
		require.Len(t, members, 1)
		assert.Equal(t, types.RoleOwner, members[0].Role)
		assert.ElementsMatch(t, []string{socket.RoomProjects, socket.ProjectRoom(project.ID)}, pub.rooms(socket.MessageProjectCreated))
	})

	t.Run("authenticated user is the creator and manager gets a membership", func(t *testing.T) {
		repo := newFakeProjectRepo()
		svc := NewProjectService(repo, newFakeTaskRepo(), nil, 1)

		project, err := svc.Create(context.Background(), CreateProjectInput{
			Name:           "Apollo",
			ProjectManager: ptr(int64(9)),
		}, ptr(int64(4)))
		require.NoError(t, err)

		assert.Equal(t, int64(4), project.CreatedBy)
		members := repo.members[project.ID]
		require.Len(t, members, 2)
		assert.Equal(t, int64(9), members[1].UserID)
		assert.Equal(t, types.RoleManager, members[1].Role)
	})

	t.Run("manager equal to creator is not added twice", func(t *testing.T) {
		repo := newFakeProjectRepo()
		svc := NewProjectService(repo, newFakeTaskRepo(), nil, 1)

		project, err := svc.Create(context.Background(), CreateProjectInput{
			Name:           "Apollo",
			CreatedBy:      ptr(int64(3)),
			ProjectManager: ptr(int64(3)),
		}, ptr(int64(4)))
		require.NoError(t, err)

		assert.Equal(t, int64(3), project.CreatedBy)
		assert.Len(t, repo.members[project.ID], 1)
	})

	t.Run("blank name", func(t *testing.T) {
		svc := NewProjectService(newFakeProjectRepo(), newFakeTaskRepo(), nil, 1)
		_, err := svc.Create(context.Background(), CreateProjectInput{Name: "   "}, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := newFakeProjectRepo()
		repo.err = errors.New("connection refused")
		pub := &recordingPublisher{}
		svc := NewProjectService(repo, newFakeTaskRepo(), socket.NewBroadcaster(pub), 1)

		_, err := svc.Create(context.Background(), CreateProjectInput{Name: "Apollo"}, nil)
		assert.EqualError(t, err, "connection refused")
		assert.Empty(t, pub.events)
	})
}

func TestProjectServiceGetDetail(t *testing.T) {
	projects := newFakeProjectRepo()
	tasks := newFakeTaskRepo()
	svc := NewProjectService(projects, tasks, nil, 1)

	project, err := svc.Create(context.Background(), CreateProjectInput{Name: "Apollo"}, nil)
	require.NoError(t, err)
	require.NoError(t, tasks.Create(context.Background(), &repository.Task{ProjectID: project.ID, Title: "A"}))

	detail, err := svc.GetDetail(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apollo", detail.Project.Name)
	assert.Len(t, detail.Members, 1)
	assert.Len(t, detail.Tasks, 1)

	_, err = svc.GetDetail(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectServiceUpdate(t *testing.T) {
	t.Run("empty patch", func(t *testing.T) {
		svc := NewProjectService(newFakeProjectRepo(), newFakeTaskRepo(), nil, 1)
		err := svc.Update(context.Background(), 1, repository.ProjectPatch{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("blank name", func(t *testing.T) {
		svc := NewProjectService(newFakeProjectRepo(), newFakeTaskRepo(), nil, 1)
		err := svc.Update(context.Background(), 1, repository.ProjectPatch{Name: ptr(" ")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("broadcasts changed fields", func(t *testing.T) {
		repo := newFakeProjectRepo()
		pub := &recordingPublisher{}
		svc := NewProjectService(repo, newFakeTaskRepo(), socket.NewBroadcaster(pub), 1)

		err := svc.Update(context.Background(), 5, repository.ProjectPatch{
			Name:     ptr("Renamed"),
			Priority: ptr(types.PriorityHigh),
		})
		require.NoError(t, err)

		require.Len(t, repo.patches, 1)
		require.Len(t, pub.events, 2)
		assert.Equal(t, []string{"name", "priority"}, pub.events[0].Payload["changed_fields"])
	})

	t.Run("status and pin are single field updates", func(t *testing.T) {
		repo := newFakeProjectRepo()
		svc := NewProjectService(repo, newFakeTaskRepo(), nil, 1)

		require.NoError(t, svc.UpdateStatus(context.Background(), 1, types.ProjectActive))
		require.NoError(t, svc.SetPinned(context.Background(), 1, false))
		assert.ErrorIs(t, svc.UpdateStatus(context.Background(), 1, "archived"), ErrInvalidInput)

		require.Len(t, repo.patches, 2)
		assert.Equal(t, []string{"status"}, repo.patches[0].Columns())
		assert.Equal(t, []string{"pinned"}, repo.patches[1].Columns())
	})
}

func TestProjectServiceDeleteIsIdempotent(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewProjectService(newFakeProjectRepo(), newFakeTaskRepo(), socket.NewBroadcaster(pub), 1)

	require.NoError(t, svc.Delete(context.Background(), 12))
	require.NoError(t, svc.Delete(context.Background(), 12))
	assert.Len(t, pub.rooms(socket.MessageProjectDeleted), 4)
}

// ============================================
// Task Service
// ============================================

type taskFixture struct {
	svc      TaskService
	tasks    *fakeTaskRepo
	projects *fakeProjectRepo
	pub      *recordingPublisher
	mailer   *fakeMailer
}

func newTaskFixture() *taskFixture {
	f := &taskFixture{
		tasks:    newFakeTaskRepo(),
		projects: newFakeProjectRepo(),
		pub:      &recordingPublisher{},
		mailer:   &fakeMailer{},
	}
	f.projects.projects[7] = &repository.Project{ID: 7, Name: "Apollo"}
	users := &fakeUserRepo{users: map[int64]*repository.User{
		2: {ID: 2, FirstName: "Grace", Email: "grace@example.com"},
		3: {ID: 3, FirstName: "Alan", Email: "alan@example.com"},
	}}
	broadcaster := socket.NewBroadcaster(f.pub)
	notif := notification.NewService(broadcaster, f.mailer, "http://app.test")
	f.svc = NewTaskService(f.tasks, f.projects, users, notif, broadcaster, 1)
	return f
}

func TestTaskServiceCreate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		f := newTaskFixture()

		task, err := f.svc.Create(context.Background(), CreateTaskInput{ProjectID: 7, Title: "Write docs"}, nil)
		require.NoError(t, err)

		assert.Equal(t, types.PriorityMedium, task.Priority)
		assert.Equal(t, types.TaskPending, task.Status)
		require.NotNil(t, task.CreatedBy)
		assert.Equal(t, int64(1), *task.CreatedBy)
		assert.Equal(t, []string{socket.ProjectRoom(7)}, f.pub.rooms(socket.MessageTaskCreated))
		assert.Empty(t, f.mailer.assigned)
	})

	t.Run("assignee is notified", func(t *testing.T) {
		f := newTaskFixture()
		due := types.NewDate(2025, time.July, 1)

		_, err := f.svc.Create(context.Background(), CreateTaskInput{
			ProjectID:  7,
			Title:      "Write docs",
			AssignedTo: ptr(int64(2)),
			DueDate:    &due,
		}, ptr(int64(3)))
		require.NoError(t, err)

		assert.Equal(t, []string{socket.UserRoom(2)}, f.pub.rooms(socket.MessageTaskAssigned))
		assert.Equal(t, []string{"grace@example.com"}, f.mailer.assigned)
	})

	t.Run("validation", func(t *testing.T) {
		f := newTaskFixture()

		_, err := f.svc.Create(context.Background(), CreateTaskInput{Title: "No project"}, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = f.svc.Create(context.Background(), CreateTaskInput{ProjectID: 7, Title: "  "}, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = f.svc.Create(context.Background(), CreateTaskInput{ProjectID: 7, Title: "x", Status: "blocked"}, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)

		assert.Empty(t, f.tasks.tasks)
	})
}

func TestTaskServiceUpdate(t *testing.T) {
	t.Run("reassignment notifies the new assignee", func(t *testing.T) {
		f := newTaskFixture()
		f.tasks.tasks[1] = &repository.Task{ID: 1, ProjectID: 7, Title: "T", AssignedTo: ptr(int64(2))}

		require.NoError(t, f.svc.Update(context.Background(), 1, repository.TaskPatch{AssignedTo: ptr(int64(3))}))

		assert.Equal(t, []string{socket.ProjectRoom(7)}, f.pub.rooms(socket.MessageTaskUpdated))
		assert.Equal(t, []string{socket.UserRoom(3)}, f.pub.rooms(socket.MessageTaskAssigned))
		assert.Equal(t, []string{"alan@example.com"}, f.mailer.assigned)
	})

	t.Run("same assignee is not notified again", func(t *testing.T) {
		f := newTaskFixture()
		f.tasks.tasks[1] = &repository.Task{ID: 1, ProjectID: 7, Title: "T", AssignedTo: ptr(int64(2))}

		require.NoError(t, f.svc.Update(context.Background(), 1, repository.TaskPatch{AssignedTo: ptr(int64(2))}))
		assert.Empty(t, f.mailer.assigned)
	})

	t.Run("missing task succeeds quietly", func(t *testing.T) {
		f := newTaskFixture()

		require.NoError(t, f.svc.Update(context.Background(), 99, repository.TaskPatch{Title: ptr("x")}))
		assert.Len(t, f.tasks.patches, 1)
		assert.Empty(t, f.pub.events)
	})

	t.Run("empty patch", func(t *testing.T) {
		f := newTaskFixture()
		assert.ErrorIs(t, f.svc.Update(context.Background(), 1, repository.TaskPatch{}), ErrInvalidInput)
	})

	t.Run("status", func(t *testing.T) {
		f := newTaskFixture()
		f.tasks.tasks[1] = &repository.Task{ID: 1, ProjectID: 7, Title: "T"}

		require.NoError(t, f.svc.UpdateStatus(context.Background(), 1, types.TaskDone))
		assert.Equal(t, []string{"status"}, f.tasks.patches[0].Columns())
		assert.ErrorIs(t, f.svc.UpdateStatus(context.Background(), 1, "blocked"), ErrInvalidInput)
	})
}

func TestTaskServiceDelete(t *testing.T) {
	f := newTaskFixture()
	f.tasks.tasks[1] = &repository.Task{ID: 1, ProjectID: 7, Title: "T"}

	require.NoError(t, f.svc.Delete(context.Background(), 1))
	require.NoError(t, f.svc.Delete(context.Background(), 1))

	assert.Equal(t, []string{socket.ProjectRoom(7)}, f.pub.rooms(socket.MessageTaskDeleted))
}

func TestTaskServiceGetByID(t *testing.T) {
	f := newTaskFixture()
	_, err := f.svc.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)

	f.tasks.err = errors.New("timeout")
	_, err = f.svc.GetByID(context.Background(), 1)
	assert.EqualError(t, err, "timeout")
}

// ============================================
// User & Auth Services
// ============================================

func TestUserServiceGetByID(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{users: map[int64]*repository.User{1: {ID: 1, FirstName: "Ada"}}})

	user, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.FirstName)

	_, err = svc.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthServiceRoundTrip(t *testing.T) {
	svc := NewAuthService("secret")

	raw, err := svc.IssueToken(42, time.Hour)
	require.NoError(t, err)

	token, err := svc.ValidateToken(raw)
	require.NoError(t, err)
	id, err := svc.GetUserIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = NewAuthService("other").ValidateToken(raw)
	assert.Error(t, err)

	expired, err := svc.IssueToken(42, -time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired)
	assert.Error(t, err)
}
