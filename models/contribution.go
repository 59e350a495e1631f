package models

import "time"

// Contribution is an immutable ledger row; corrections are a delete plus a
// new entry, there is no update path.
type Contribution struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MemberID   string `gorm:"size:36;index" json:"member_id"` // empty for anonymous gifts
	MemberName string `gorm:"size:100" json:"member_name"`    // snapshot, survives member deletion

	Fund   string `gorm:"size:30;not null" json:"fund"`   // tithe | offering | building | other
	Method string `gorm:"size:30;not null" json:"method"` // cash | momo | bank | cheque

	Amount  int64     `gorm:"not null" json:"amount"` // minor units
	GivenAt time.Time `gorm:"index;not null" json:"given_at"`
	Note    string    `gorm:"size:255" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
