package models

import "time"

type District struct {
	ID          uint      `gorm:"primaryKey"            json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:255"              json:"description"`
	LeaderID    *uint     `json:"leader_id,omitempty"` // staff id, optional
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
