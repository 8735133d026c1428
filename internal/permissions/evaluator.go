package permissions

import (
	"team-task-hub.com/team-task-hub/internal/constants"
	model "team-task-hub.com/team-task-hub/internal/models"
)

// Operation names a guarded action. Every mutation path consults Can with
// one of these; no role check lives anywhere else.
type Operation string

const (
	OpCreateTask   Operation = "create_task"
	OpEditTask     Operation = "edit_task"
	OpReassignTask Operation = "reassign_task"
	OpChangeStatus Operation = "change_status"
	OpDeleteTask   Operation = "delete_task"
	OpManageTeam   Operation = "manage_team"
	OpEditConfig   Operation = "edit_config"
)

// Can is the single permission decision table. Pure: no I/O, no clock.
// task may be nil for operations that do not target an existing task.
//
// Managers may do everything. Team members may only change status, and
// only on a task currently assigned to them; an unassigned task grants
// them nothing.
func Can(role constants.Role, actorID string, task *model.Task, op Operation) bool {
	if role == constants.RoleManager {
		return true
	}

	switch op {
	case OpChangeStatus:
		if task == nil || task.AssigneeID == nil {
			return false
		}
		return *task.AssigneeID == actorID
	default:
		return false
	}
}
