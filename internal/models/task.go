package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"team-task-hub.com/team-task-hub/internal/constants"
)

// StringList stores a set of free-text tags as a JSON array column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	}
	return errors.New("unsupported tags column type")
}

type Task struct {
	ID          string                 `gorm:"primaryKey;size:36" json:"id"`
	TaskID      string                 `gorm:"uniqueIndex;not null" json:"task_id"`
	Title       string                 `gorm:"not null" json:"title"`
	Description string                 `json:"description"`
	AssigneeID  *string                `gorm:"size:36;index" json:"assignee_id,omitempty"`
	AssignerID  string                 `gorm:"size:36;not null" json:"assigner_id"`
	Priority    constants.TaskPriority `gorm:"type:varchar(20);not null" json:"priority"`
	Status      constants.TaskStatus   `gorm:"type:varchar(20);not null" json:"status"`
	DueDate     time.Time              `gorm:"not null" json:"due_date"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	Tags        StringList             `gorm:"type:text" json:"tags"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
