package models

import "time"

type Member struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"` // uuid
	MemberID string `gorm:"size:20;uniqueIndex;not null" json:"member_id"` // church register code, e.g. TM-0042

	FullName string     `gorm:"size:100;not null" json:"full_name"`
	Phone    string     `gorm:"size:15;not null"  json:"phone"`
	Email    string     `gorm:"size:100"          json:"email"`
	Address  string     `gorm:"type:text"         json:"address"`
	JoinDate *time.Time `json:"join_date,omitempty"`

	MembershipStatus string `gorm:"size:20;not null" json:"membership_status"` // Active | Inactive | Visitor

	// Reference by cell name, not id. The front end and import files carry
	// names, so renames rewrite this column in the same transaction.
	HomeCellName string `gorm:"size:100;index" json:"home_cell_name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
