package notification

import (
	"fmt"
	"log"
	"time"

	"github.com/Marga-Ghale/synergysphere-backend/internal/email"
	"github.com/Marga-Ghale/synergysphere-backend/internal/repository"
	"github.com/Marga-Ghale/synergysphere-backend/internal/socket"
	"github.com/Marga-Ghale/synergysphere-backend/internal/types"
)

// Mailer is the part of the email service notifications use.
type Mailer interface {
	SendTaskAssigned(to string, data email.TaskAssignedData) error
	SendDueDateReminder(to string, data email.DueDateReminderData) error
}

// Service tells users about work that concerns them, over the websocket and by email.
type Service struct {
	broadcaster *socket.Broadcaster
	mailer      Mailer
	frontendURL string
}

// NewService creates a notification service. Either channel may be nil.
func NewService(broadcaster *socket.Broadcaster, mailer Mailer, frontendURL string) *Service {
	return &Service{
		broadcaster: broadcaster,
		mailer:      mailer,
		frontendURL: frontendURL,
	}
}

// ============================================
// Task Notifications
// ============================================

// SendTaskAssigned notifies the assignee of a task.
func (s *Service) SendTaskAssigned(task *repository.Task, assignee *repository.User, projectName string) {
	if task == nil || assignee == nil {
		return
	}

	if s.broadcaster != nil {
		s.broadcaster.SendToUser(assignee.ID, socket.MessageTaskAssigned, map[string]interface{}{
			"task_id":    task.ID,
			"project_id": task.ProjectID,
			"title":      task.Title,
			"message":    fmt.Sprintf("You have been assigned to task: %s", task.Title),
		})
	}

	if s.mailer == nil || assignee.Email == "" {
		return
	}

	data := email.TaskAssignedData{
		AssigneeName: assignee.FirstName,
		TaskTitle:    task.Title,
		ProjectName:  projectName,
		Priority:     string(task.Priority.OrDefault()),
		TaskURL:      fmt.Sprintf("%s/projects/%d?task=%d", s.frontendURL, task.ProjectID, task.ID),
	}
	if task.DueDate != nil {
		data.DueDate = task.DueDate.String()
	}
	if task.Description != nil {
		data.Description = *task.Description
	}

	if err := s.mailer.SendTaskAssigned(assignee.Email, data); err != nil {
		log.Printf("[Notification] Failed to email assignment of task %d to %s: %v", task.ID, assignee.Email, err)
	}
}

// SendDueDateReminders pushes a due-soon event per task and one digest email per assignee.
// It returns the number of tasks notified.
func (s *Service) SendDueDateReminders(tasks []*repository.Task, now time.Time) int {
	today := dayOf(now)

	type digest struct {
		name  string
		tasks []email.DueDateReminderTask
	}
	digests := map[string]*digest{}
	var order []string

	sent := 0
	for _, task := range tasks {
		if task.AssignedTo == nil || task.DueDate == nil {
			continue
		}
		days := daysBetween(today, task.DueDate.Time)
		projectName := deref(task.ProjectName)

		if s.broadcaster != nil {
			s.broadcaster.SendToUser(*task.AssignedTo, socket.MessageTaskDueSoon, map[string]interface{}{
				"task_id":        task.ID,
				"project_id":     task.ProjectID,
				"title":          task.Title,
				"due_date":       task.DueDate.String(),
				"days_remaining": days,
			})
		}
		sent++

		addr := deref(task.AssigneeEmail)
		if addr == "" {
			continue
		}
		d, ok := digests[addr]
		if !ok {
			d = &digest{name: deref(task.AssigneeName)}
			digests[addr] = d
			order = append(order, addr)
		}
		d.tasks = append(d.tasks, email.DueDateReminderTask{
			TaskTitle:     task.Title,
			ProjectName:   projectName,
			DaysRemaining: days,
		})
	}

	if s.mailer != nil {
		for _, addr := range order {
			d := digests[addr]
			err := s.mailer.SendDueDateReminder(addr, email.DueDateReminderData{
				UserName:     d.name,
				Tasks:        d.tasks,
				DashboardURL: s.frontendURL + "/my-tasks",
			})
			if err != nil {
				log.Printf("[Notification] Failed to email due date reminder to %s: %v", addr, err)
			}
		}
	}

	return sent
}

// SendOverdueReminders pushes an overdue event to the assignee of each task.
func (s *Service) SendOverdueReminders(tasks []*repository.Task, now time.Time) int {
	if s.broadcaster == nil {
		return 0
	}
	today := dayOf(now)

	sent := 0
	for _, task := range tasks {
		if task.AssignedTo == nil || task.DueDate == nil {
			continue
		}
		s.broadcaster.SendToUser(*task.AssignedTo, socket.MessageTaskOverdue, map[string]interface{}{
			"task_id":      task.ID,
			"project_id":   task.ProjectID,
			"title":        task.Title,
			"due_date":     task.DueDate.String(),
			"days_overdue": daysBetween(task.DueDate.Time, today),
		})
		sent++
	}
	return sent
}

func dayOf(t time.Time) time.Time {
	return types.NewDate(t.Year(), t.Month(), t.Day()).Time
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
