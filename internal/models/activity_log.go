package model

import (
	"time"

	"team-task-hub.com/team-task-hub/internal/constants"
)

// ActivityLog is append-only; nothing in the codebase updates or deletes
// rows of this table.
type ActivityLog struct {
	ID         string               `gorm:"primaryKey;size:36" json:"id"`
	UserID     string               `gorm:"size:36;not null" json:"user_id"`
	ActionType constants.ActionType `gorm:"type:varchar(40);not null" json:"action_type"`
	TaskID     *string              `gorm:"size:36;index" json:"task_id,omitempty"`
	Details    string               `gorm:"type:text" json:"details,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}
