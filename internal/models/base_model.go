package models

import "time"

// BaseModel provides the surrogate key and timestamps shared by persistent models.
// IDs are assigned by the store in increasing order and never reused.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
