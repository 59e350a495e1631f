package models

import "time"

type Staff struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StaffCode string `gorm:"size:20;uniqueIndex;not null" json:"staff_code"`

	FullName string `gorm:"size:100;not null" json:"full_name"`
	Title    string `gorm:"size:50;not null"  json:"title"` // Pastor, Deacon, Administrator, ...
	Phone    string `gorm:"size:15;not null"  json:"phone"`
	Email    string `gorm:"size:100"          json:"email"`

	// Monthly base salary in minor units (cents); avoids float drift in payroll.
	Salary int64 `gorm:"not null;default:0" json:"salary"`

	EmploymentStatus string `gorm:"size:20;not null" json:"employment_status"` // active | suspended | left

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
