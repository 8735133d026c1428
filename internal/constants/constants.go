package constants

// TaskStatus is the bounded workflow state of a task.
type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not_started"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusOnHold     TaskStatus = "on_hold"
)

func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type Role string

const (
	RoleManager    Role = "manager"
	RoleTeamMember Role = "team_member"
)

func ValidRole(r Role) bool {
	return r == RoleManager || r == RoleTeamMember
}

// ActionType tags an activity-log entry.
type ActionType string

const (
	ActionTaskCreated       ActionType = "task_created"
	ActionTaskUpdated       ActionType = "task_updated"
	ActionTaskStatusChanged ActionType = "task_status_changed"
	ActionTaskAssigned      ActionType = "task_assigned"
	ActionTaskDeleted       ActionType = "task_deleted"
	ActionRoleChanged       ActionType = "role_changed"
	ActionConfigUpdated     ActionType = "nomenclature_updated"
)

type NotificationType string

const (
	NotificationTaskAssigned  NotificationType = "task_assigned"
	NotificationStatusChanged NotificationType = "status_changed"
)

// Separators accepted by the nomenclature config. "none" means no
// separator is inserted between prefix and number.
const SeparatorNone = "none"

func ValidSeparator(s string) bool {
	switch s {
	case "-", "_", ".", SeparatorNone:
		return true
	}
	return false
}
