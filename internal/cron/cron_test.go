package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Marga-Ghale/synergysphere-backend/internal/notification"
	"github.com/Marga-Ghale/synergysphere-backend/internal/repository"
	"github.com/Marga-Ghale/synergysphere-backend/internal/socket"
	"github.com/Marga-Ghale/synergysphere-backend/internal/types"
	"github.com/stretchr/testify/assert"
)

type stubTaskRepo struct {
	repository.TaskRepository
	dueSoon []*repository.Task
	overdue []*repository.Task
	err     error
	window  time.Duration
}

func (r *stubTaskRepo) FindDueWithin(_ context.Context, window time.Duration) ([]*repository.Task, error) {
	r.window = window
	return r.dueSoon, r.err
}

func (r *stubTaskRepo) FindOverdue(context.Context) ([]*repository.Task, error) {
	return r.overdue, r.err
}

type countingPublisher struct{ n int }

func (p *countingPublisher) Publish(context.Context, socket.Event) error {
	p.n++
	return nil
}

func TestManualTrigger(t *testing.T) {
	assignee := int64(2)
	due := types.NewDate(2025, time.June, 2)
	task := &repository.Task{ID: 1, ProjectID: 1, Title: "T", AssignedTo: &assignee, DueDate: &due}

	pub := &countingPublisher{}
	repo := &stubTaskRepo{dueSoon: []*repository.Task{task}, overdue: []*repository.Task{task, task}}
	s := NewScheduler(repo, notification.NewService(socket.NewBroadcaster(pub), nil, ""))
	s.now = func() time.Time { return time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC) }

	assert.Equal(t, 1, s.ManualTrigger("due_date"))
	assert.Equal(t, DueSoonWindow, repo.window)
	assert.Equal(t, 2, s.ManualTrigger("overdue"))
	assert.Equal(t, 3, s.ManualTrigger("all"))
	assert.Equal(t, 0, s.ManualTrigger("sprint"))
	assert.Equal(t, 6, pub.n)
}

func TestManualTriggerStorageFailure(t *testing.T) {
	repo := &stubTaskRepo{err: errors.New("db down")}
	s := NewScheduler(repo, notification.NewService(nil, nil, ""))

	assert.Zero(t, s.ManualTrigger("all"))
}
