package models

import "time"

type Zone struct {
	ID          uint      `gorm:"primaryKey"            json:"id"`
	DistrictID  uint      `gorm:"index;not null"        json:"district_id"` // FK -> districts.id (checked in handler)
	Name        string    `gorm:"size:100;not null"     json:"name"`
	Description string    `gorm:"size:255"              json:"description"`
	LeaderID    *uint     `json:"leader_id,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
