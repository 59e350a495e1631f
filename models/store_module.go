package models

import "time"

// StoreModule is a catalog entry in the module-subscription store.
// The catalog is seeded at migrate time; churches subscribe per module.
type StoreModule struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"size:30;uniqueIndex;not null" json:"code"` // e.g. hr, finance, events
	Name        string `gorm:"size:80;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Monthly     int64  `gorm:"not null;default:0" json:"monthly"` // price, minor units

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Subscription struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ModuleID uint `gorm:"uniqueIndex;not null" json:"module_id"`

	Enabled     bool       `gorm:"not null;default:true" json:"enabled"`
	ActivatedAt *time.Time `json:"activated_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
