// internal/seed/seed.go
package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Marga-Ghale/synergysphere-backend/internal/repository"
	"github.com/Marga-Ghale/synergysphere-backend/internal/types"
)

type sampleProject struct {
	name        string
	description string
	tags        types.Tags
	priority    types.Priority
	status      types.ProjectStatus
	manager     int // index into users
	deadlineIn  int // days from today
	tasks       []sampleTask
}

type sampleTask struct {
	title    string
	assignee int
	priority types.Priority
	status   types.TaskStatus
	dueIn    int
}

var sampleUsers = []repository.User{
	{FirstName: "Aarav", LastName: "Sharma", Email: "aarav.sharma@synergysphere.dev"},
	{FirstName: "Maya", LastName: "Thapa", Email: "maya.thapa@synergysphere.dev"},
	{FirstName: "Liam", LastName: "Gurung", Email: "liam.gurung@synergysphere.dev"},
	{FirstName: "Sofia", LastName: "Rai", Email: "sofia.rai@synergysphere.dev"},
}

var sampleProjects = []sampleProject{
	{
		name:        "RD Services",
		description: "Research and development services for internal tooling",
		tags:        types.Tags{"Services", "Research"},
		priority:    types.PriorityHigh,
		status:      types.ProjectActive,
		manager:     1,
		deadlineIn:  45,
		tasks: []sampleTask{
			{title: "Collect requirements", assignee: 1, priority: types.PriorityHigh, status: types.TaskDone, dueIn: -3},
			{title: "Prototype service catalog", assignee: 2, priority: types.PriorityMedium, status: types.TaskInProgress, dueIn: 2},
		},
	},
	{
		name:        "Marketing Automation",
		description: "Campaign workflows and lead scoring",
		tags:        types.Tags{"Marketing"},
		priority:    types.PriorityMedium,
		status:      types.ProjectPlanning,
		manager:     3,
		deadlineIn:  90,
		tasks: []sampleTask{
			{title: "Draft email sequences", assignee: 3, priority: types.PriorityMedium, status: types.TaskPending, dueIn: 10},
		},
	},
	{
		name:        "Data Analytics Dashboard",
		description: "Self-serve dashboards for project metrics",
		tags:        types.Tags{"Analytics", "Frontend"},
		priority:    types.PriorityLow,
		status:      types.ProjectOnHold,
		manager:     0,
		deadlineIn:  120,
		tasks: []sampleTask{
			{title: "Pick a charting library", assignee: 2, priority: types.PriorityLow, status: types.TaskPending, dueIn: -1},
		},
	},
}

// SeedData fills an empty database with sample users, projects and tasks.
// It does nothing when any user exists.
func SeedData(ctx context.Context, repos *repository.Repositories) error {
	count, err := repos.UserRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		log.Println("[Seed] Data already exists, skipping...")
		return nil
	}

	log.Println("[Seed] 🌱 Creating sample data...")

	users := make([]*repository.User, len(sampleUsers))
	for i := range sampleUsers {
		u := sampleUsers[i]
		if err := repos.UserRepo.Create(ctx, &u); err != nil {
			return fmt.Errorf("create user %s: %w", u.Email, err)
		}
		users[i] = &u
	}
	log.Printf("✅ [Seed] Created %d users", len(users))

	today := time.Now().UTC()
	owner := users[0]

	taskCount := 0
	for _, sp := range sampleProjects {
		deadline := dayAfter(today, sp.deadlineIn)
		manager := users[sp.manager].ID
		description := sp.description

		project := &repository.Project{
			Name:           sp.name,
			Description:    &description,
			Tags:           sp.tags,
			Priority:       sp.priority,
			Deadline:       &deadline,
			ProjectManager: &manager,
			CreatedBy:      owner.ID,
			Status:         sp.status,
		}

		members := []*repository.ProjectMember{{UserID: owner.ID, Role: types.RoleOwner}}
		if manager != owner.ID {
			members = append(members, &repository.ProjectMember{UserID: manager, Role: types.RoleManager})
		}
		for _, st := range sp.tasks {
			if uid := users[st.assignee].ID; uid != owner.ID && uid != manager && !hasMember(members, uid) {
				members = append(members, &repository.ProjectMember{UserID: uid, Role: types.RoleMember})
			}
		}

		if err := repos.ProjectRepo.Create(ctx, project, members); err != nil {
			return fmt.Errorf("create project %q: %w", sp.name, err)
		}

		for _, st := range sp.tasks {
			assignee := users[st.assignee].ID
			due := dayAfter(today, st.dueIn)
			createdBy := manager
			task := &repository.Task{
				ProjectID:  project.ID,
				Title:      st.title,
				AssignedTo: &assignee,
				DueDate:    &due,
				Priority:   st.priority,
				Tags:       types.Tags{},
				Status:     st.status,
				CreatedBy:  &createdBy,
			}
			if err := repos.TaskRepo.Create(ctx, task); err != nil {
				return fmt.Errorf("create task %q: %w", st.title, err)
			}
			taskCount++
		}
	}

	log.Printf("✅ [Seed] Created %d projects and %d tasks", len(sampleProjects), taskCount)
	return nil
}

func dayAfter(from time.Time, days int) types.Date {
	d := from.AddDate(0, 0, days)
	return types.NewDate(d.Year(), d.Month(), d.Day())
}

func hasMember(members []*repository.ProjectMember, userID int64) bool {
	for _, m := range members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
