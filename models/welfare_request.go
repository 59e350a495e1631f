package models

import "time"

type WelfareRequest struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	MemberID string `gorm:"size:36;index;not null" json:"member_id"`

	Type   string `gorm:"size:40;not null" json:"type"`  // medical | bereavement | financial | other
	Reason string `gorm:"type:text" json:"reason"`       // searchable
	Amount int64  `gorm:"not null;default:0" json:"amount"` // requested amount, minor units

	DateFrom string `gorm:"size:10;not null" json:"date_from"` // YYYY-MM-DD
	DateTo   string `gorm:"size:10;not null" json:"date_to"`

	Status       string     `gorm:"size:20;not null" json:"status"` // pending | approved | rejected
	SubmittedAt  time.Time  `gorm:"autoCreateTime" json:"submitted_at"`
	DecidedAt    *time.Time `json:"decided_at"`
	DecidedBy    *uint      `json:"decided_by"` // user id of the deciding pastor/admin
	RejectReason string     `gorm:"type:text" json:"reject_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
