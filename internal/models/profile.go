package model

import (
	"time"

	"team-task-hub.com/team-task-hub/internal/constants"
)

// Profile is provisioned by the identity layer; this core only reads it,
// except for role assignment.
type Profile struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Timezone  string    `gorm:"default:UTC" json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Role is joined from user_roles; not a column on profiles.
	Role constants.Role `gorm:"-" json:"role,omitempty"`
}

// UserRole pairs a profile with its role. A missing row means team_member.
type UserRole struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	UserID    string         `gorm:"uniqueIndex;size:36;not null" json:"user_id"`
	Role      constants.Role `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
}
