package models

import "time"

type HomeCell struct {
	ID         uint `gorm:"primaryKey"     json:"id"`
	ZoneID     uint `gorm:"index;not null" json:"zone_id"`
	DistrictID uint `gorm:"index;not null" json:"district_id"` // copied from the zone at create time, never from the client

	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"` // members reference cells by this name
	Description string `gorm:"size:255" json:"description"`
	LeaderID    *uint  `json:"leader_id,omitempty"`

	MeetingDay      string `gorm:"size:20"  json:"meeting_day"` // Monday..Sunday
	MeetingTime     string `gorm:"size:5"   json:"meeting_time"` // HH:MM
	MeetingLocation string `gorm:"size:255" json:"meeting_location"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Computed per request from the members table; never persisted.
	MemberCount int64 `gorm:"-" json:"member_count"`
}
