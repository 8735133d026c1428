package model

import (
	"time"

	"team-task-hub.com/team-task-hub/internal/constants"
)

type Notification struct {
	ID        string                     `gorm:"primaryKey;size:36" json:"id"`
	UserID    string                     `gorm:"size:36;index;not null" json:"user_id"`
	TaskID    *string                    `gorm:"size:36" json:"task_id,omitempty"`
	Title     string                     `gorm:"not null" json:"title"`
	Message   string                     `gorm:"not null" json:"message"`
	Type      constants.NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Read      bool                       `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time                  `json:"created_at"`
}
