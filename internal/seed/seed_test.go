package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/Marga-Ghale/synergysphere-backend/internal/repository"
	"github.com/Marga-Ghale/synergysphere-backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUsers struct {
	repository.UserRepository
	users    []*repository.User
	countErr error
}

func (r *memUsers) Count(context.Context) (int, error) { return len(r.users), r.countErr }

func (r *memUsers) Create(_ context.Context, u *repository.User) error {
	u.ID = int64(len(r.users) + 1)
	r.users = append(r.users, u)
	return nil
}

type memProjects struct {
	repository.ProjectRepository
	projects []*repository.Project
	members  map[int64][]*repository.ProjectMember
}

func (r *memProjects) Create(_ context.Context, p *repository.Project, members []*repository.ProjectMember) error {
	p.ID = int64(len(r.projects) + 1)
	r.projects = append(r.projects, p)
	r.members[p.ID] = members
	return nil
}

type memTasks struct {
	repository.TaskRepository
	tasks []*repository.Task
}

func (r *memTasks) Create(_ context.Context, t *repository.Task) error {
	t.ID = int64(len(r.tasks) + 1)
	r.tasks = append(r.tasks, t)
	return nil
}

func newRepos() (*repository.Repositories, *memUsers, *memProjects, *memTasks) {
	users := &memUsers{}
	projects := &memProjects{members: map[int64][]*repository.ProjectMember{}}
	tasks := &memTasks{}
	return &repository.Repositories{UserRepo: users, ProjectRepo: projects, TaskRepo: tasks}, users, projects, tasks
}

func TestSeedDataOnEmptyDatabase(t *testing.T) {
	repos, users, projects, tasks := newRepos()

	require.NoError(t, SeedData(context.Background(), repos))

	assert.Len(t, users.users, len(sampleUsers))
	assert.Len(t, projects.projects, len(sampleProjects))
	assert.Len(t, tasks.tasks, 4)

	for _, p := range projects.projects {
		members := projects.members[p.ID]
		require.NotEmpty(t, members)
		assert.Equal(t, p.CreatedBy, members[0].UserID)
		assert.Equal(t, types.RoleOwner, members[0].Role)

		seen := map[int64]bool{}
		for _, m := range members {
			assert.False(t, seen[m.UserID], "duplicate member %d in %s", m.UserID, p.Name)
			seen[m.UserID] = true
		}
	}

	// The third project is managed by its creator, so only one membership besides the assignee.
	assert.Len(t, projects.members[3], 2)
}

func TestSeedDataSkipsWhenUsersExist(t *testing.T) {
	repos, users, projects, _ := newRepos()
	users.users = []*repository.User{{ID: 1}}

	require.NoError(t, SeedData(context.Background(), repos))
	assert.Len(t, users.users, 1)
	assert.Empty(t, projects.projects)
}

func TestSeedDataCountFailure(t *testing.T) {
	repos, users, _, _ := newRepos()
	users.countErr = errors.New("no database")

	assert.ErrorContains(t, SeedData(context.Background(), repos), "no database")
}
