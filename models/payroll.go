package models

import "time"

// PayrollRun is one month's payroll for every active staff member.
// Runs move pending -> approved | rejected; only pending runs may transition.
type PayrollRun struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Month string `gorm:"size:7;uniqueIndex;not null" json:"month"` // YYYY-MM

	Status       string     `gorm:"size:20;not null;default:'pending'" json:"status"` // pending | approved | rejected
	DecidedAt    *time.Time `json:"decided_at"`
	DecidedBy    *uint      `json:"decided_by"` // user id of the approver
	RejectReason string     `gorm:"type:text" json:"reject_reason"`

	TotalNet int64 `gorm:"not null;default:0" json:"total_net"`

	Items []PayrollItem `gorm:"foreignKey:RunID" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PayrollItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	RunID   uint `gorm:"index;not null" json:"run_id"`
	StaffID uint `gorm:"index;not null" json:"staff_id"`

	StaffName string `gorm:"size:100;not null" json:"staff_name"` // snapshot at run time

	// All amounts in minor units.
	Gross      int64 `gorm:"not null" json:"gross"`
	Allowances int64 `gorm:"not null;default:0" json:"allowances"`
	Deductions int64 `gorm:"not null;default:0" json:"deductions"`
	Net        int64 `gorm:"not null" json:"net"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
