package email

import (
	"fmt"
	"html/template"
)

func (s *Service) loadTemplates() {
	s.templates["task_assigned"] = template.Must(template.New("task_assigned").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #0ea5e9 0%, #6366f1 100%); color: white; padding: 30px; border-radius: 10px 10px 0 0; }
        .content { background: #f9fafb; padding: 30px; border-radius: 0 0 10px 10px; }
        .task-card { background: white; border-radius: 8px; padding: 20px; margin: 20px 0; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .btn { display: inline-block; background: #6366f1; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin-top: 15px; }
        .priority-high { color: #ef4444; }
        .priority-medium { color: #f59e0b; }
        .priority-low { color: #10b981; }
        .footer { text-align: center; color: #6b7280; font-size: 12px; margin-top: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>📋 New Task Assigned</h1>
        </div>
        <div class="content">
            <p>Hi {{.AssigneeName}},</p>
            <p>A task in <strong>{{.ProjectName}}</strong> has been assigned to you.</p>

            <div class="task-card">
                <h2>{{.TaskTitle}}</h2>
                <p><strong>Priority:</strong> <span class="priority-{{.Priority}}">{{.Priority}}</span></p>
                {{if .DueDate}}<p><strong>Due Date:</strong> {{.DueDate}}</p>{{end}}
                {{if .Description}}<p><strong>Description:</strong><br/>{{.Description}}</p>{{end}}
            </div>

            <a href="{{.TaskURL}}" class="btn">View Task</a>
        </div>
        <div class="footer">
            <p>This email was sent from SynergySphere</p>
        </div>
    </div>
</body>
</html>
`))

	s.templates["due_date_reminder"] = template.Must(template.New("due_date_reminder").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #ef4444 0%, #dc2626 100%); color: white; padding: 30px; border-radius: 10px 10px 0 0; }
        .content { background: #f9fafb; padding: 30px; border-radius: 0 0 10px 10px; }
        .task-list { background: white; border-radius: 8px; padding: 20px; margin: 20px 0; }
        .task-item { padding: 15px; border-bottom: 1px solid #e5e7eb; }
        .task-item:last-child { border-bottom: none; }
        .due-today { color: #ef4444; font-weight: bold; }
        .due-soon { color: #f59e0b; }
        .btn { display: inline-block; background: #ef4444; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin-top: 15px; }
        .footer { text-align: center; color: #6b7280; font-size: 12px; margin-top: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>⏰ Task Due Date Reminder</h1>
        </div>
        <div class="content">
            <p>Hi {{.UserName}},</p>
            <p>You have tasks that need your attention:</p>

            <div class="task-list">
                {{range .Tasks}}
                <div class="task-item">
                    <strong>{{.ProjectName}}</strong> - {{.TaskTitle}}<br/>
                    <span class="{{if eq .DaysRemaining 0}}due-today{{else}}due-soon{{end}}">
                        {{if eq .DaysRemaining 0}}Due Today!{{else}}Due in {{.DaysRemaining}} days{{end}}
                    </span>
                </div>
                {{end}}
            </div>

            <a href="{{.DashboardURL}}" class="btn">View My Tasks</a>
        </div>
        <div class="footer">
            <p>This email was sent from SynergySphere</p>
        </div>
    </div>
</body>
</html>
`))
}

// TaskAssignedData holds data for task assigned email
type TaskAssignedData struct {
	AssigneeName string
	TaskTitle    string
	ProjectName  string
	Priority     string
	DueDate      string
	Description  string
	TaskURL      string
}

// SendTaskAssigned sends a task assigned email
func (s *Service) SendTaskAssigned(to string, data TaskAssignedData) error {
	return s.deliver(
		[]string{to},
		fmt.Sprintf("[SynergySphere] Task assigned: %s", data.TaskTitle),
		"task_assigned",
		data,
	)
}

// DueDateReminderTask holds task info for due date reminder
type DueDateReminderTask struct {
	TaskTitle     string
	ProjectName   string
	DaysRemaining int
}

// DueDateReminderData holds data for due date reminder email
type DueDateReminderData struct {
	UserName     string
	Tasks        []DueDateReminderTask
	DashboardURL string
}

// SendDueDateReminder sends a due date reminder email
func (s *Service) SendDueDateReminder(to string, data DueDateReminderData) error {
	return s.deliver(
		[]string{to},
		"[SynergySphere] Task due date reminder",
		"due_date_reminder",
		data,
	)
}
