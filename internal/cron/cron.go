package cron

import (
	"context"
	"log"
	"time"

	"github.com/Marga-Ghale/synergysphere-backend/internal/notification"
	"github.com/Marga-Ghale/synergysphere-backend/internal/repository"
	"github.com/robfig/cron/v3"
)

// DueSoonWindow is how far ahead the daily reminder looks.
const DueSoonWindow = 72 * time.Hour

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron     *cron.Cron
	taskRepo repository.TaskRepository
	notifSvc *notification.Service
	now      func() time.Time
}

// NewScheduler creates a new scheduler
func NewScheduler(taskRepo repository.TaskRepository, notifSvc *notification.Service) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		taskRepo: taskRepo,
		notifSvc: notifSvc,
		now:      time.Now,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	// Run every day at 9 AM - Due date reminders
	s.cron.AddFunc("0 9 * * *", func() {
		log.Println("[Cron] Running due date reminder check...")
		s.checkDueDateReminders()
	})

	// Run every hour - Overdue task check
	s.cron.AddFunc("0 * * * *", func() {
		log.Println("[Cron] Running overdue task check...")
		s.checkOverdueTasks()
	})

	s.cron.Start()
	log.Println("[Cron] ✅ Scheduler started")
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[Cron] Scheduler stopped")
}

// checkDueDateReminders checks for tasks due soon and sends reminders
func (s *Scheduler) checkDueDateReminders() int {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	tasks, err := s.taskRepo.FindDueWithin(ctx, DueSoonWindow)
	if err != nil {
		log.Printf("[Cron] Error finding tasks due soon: %v", err)
		return 0
	}

	sent := s.notifSvc.SendDueDateReminders(tasks, s.now())
	log.Printf("[Cron] Sent %d due date reminders", sent)
	return sent
}

// checkOverdueTasks checks for overdue tasks and sends reminders
func (s *Scheduler) checkOverdueTasks() int {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	tasks, err := s.taskRepo.FindOverdue(ctx)
	if err != nil {
		log.Printf("[Cron] Error finding overdue tasks: %v", err)
		return 0
	}

	sent := s.notifSvc.SendOverdueReminders(tasks, s.now())
	log.Printf("[Cron] Sent %d overdue reminders", sent)
	return sent
}

// ManualTrigger runs a check immediately and returns how many tasks were notified.
func (s *Scheduler) ManualTrigger(checkType string) int {
	switch checkType {
	case "due_date":
		return s.checkDueDateReminders()
	case "overdue":
		return s.checkOverdueTasks()
	case "all":
		return s.checkDueDateReminders() + s.checkOverdueTasks()
	}
	log.Printf("[Cron] Unknown check type: %s", checkType)
	return 0
}
