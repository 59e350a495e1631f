package models

import "time"

// Message is a send log, not a queue; delivery happens through the SMS/email
// gateway and only the outcome counts are recorded here.
type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// all | district:{id} | zone:{id} | cell:{name}
	Audience string `gorm:"size:120;not null" json:"audience"`
	Channel  string `gorm:"size:10;not null" json:"channel"` // sms | email

	Subject string `gorm:"size:120" json:"subject"` // email only
	Body    string `gorm:"type:text;not null" json:"body"`

	Recipients int64 `gorm:"not null" json:"recipients"` // resolved at send time
	CreatedBy  uint  `gorm:"not null" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
