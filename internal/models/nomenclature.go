package model

import "time"

// NomenclatureConfig is a singleton row. Counter advances once per minted
// identifier; format fields only apply to identifiers minted afterwards.
type NomenclatureConfig struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Prefix    string    `gorm:"size:5;not null" json:"prefix"`
	Separator string    `gorm:"size:4;not null" json:"separator"`
	Padding   int       `gorm:"not null" json:"padding"`
	Counter   int64     `gorm:"not null" json:"counter"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
