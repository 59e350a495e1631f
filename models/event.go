package models

import "time"

// Event covers the three calendar kinds in one table: service / special / holiday.
type Event struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Kind string `gorm:"size:20;index;not null" json:"kind"` // service | special | holiday

	Title    string `gorm:"size:100;not null" json:"title"`
	Location string `gorm:"size:255" json:"location"`
	Note     string `gorm:"size:255" json:"note"`

	Date      string `gorm:"type:date;not null" json:"date"` // YYYY-MM-DD
	EndDate   string `gorm:"type:date" json:"end_date"`      // holidays may span days
	StartTime string `gorm:"size:5" json:"start_time"`       // HH:MM
	EndTime   string `gorm:"size:5" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
