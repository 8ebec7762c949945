package types

import (
	"encoding/json"
	"fmt"
)

// Priority is shared by projects and tasks.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ProjectStatus values
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCancelled ProjectStatus = "cancelled"
)

// TaskStatus values
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// MemberRole is the role a user holds inside a project.
type MemberRole string

const (
	RoleOwner   MemberRole = "owner"
	RoleManager MemberRole = "manager"
	RoleMember  MemberRole = "member"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectPlanning, ProjectActive, ProjectCompleted, ProjectOnHold, ProjectCancelled:
		return true
	}
	return false
}

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskDone:
		return true
	}
	return false
}

func (r MemberRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleMember:
		return true
	}
	return false
}

// OrDefault returns medium for an empty priority.
func (p Priority) OrDefault() Priority {
	if p == "" {
		return PriorityMedium
	}
	return p
}

func (s ProjectStatus) OrDefault() ProjectStatus {
	if s == "" {
		return ProjectPlanning
	}
	return s
}

func (s TaskStatus) OrDefault() TaskStatus {
	if s == "" {
		return TaskPending
	}
	return s
}

// ============================================
// JSON boundary validation
// ============================================

func (p *Priority) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, "priority", func(s string) bool { return Priority(s).IsValid() })
	if err != nil {
		return err
	}
	*p = Priority(v)
	return nil
}

func (s *ProjectStatus) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, "project status", func(x string) bool { return ProjectStatus(x).IsValid() })
	if err != nil {
		return err
	}
	*s = ProjectStatus(v)
	return nil
}

func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, "task status", func(x string) bool { return TaskStatus(x).IsValid() })
	if err != nil {
		return err
	}
	*s = TaskStatus(v)
	return nil
}

func (r *MemberRole) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, "role", func(x string) bool { return MemberRole(x).IsValid() })
	if err != nil {
		return err
	}
	*r = MemberRole(v)
	return nil
}

// unmarshalEnum accepts an empty string so callers can apply defaults.
func unmarshalEnum(data []byte, name string, valid func(string) bool) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("%s must be a string", name)
	}
	if s != "" && !valid(s) {
		return "", fmt.Errorf("invalid %s %q", name, s)
	}
	return s, nil
}
