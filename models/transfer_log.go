package models

import "time"

// TransferLog keeps the history of a member moving between home cells.
// Stored as names for the same reason members reference cells by name.
type TransferLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MemberID string `gorm:"size:36;index;not null" json:"member_id"`

	FromCell string `gorm:"size:100" json:"from_cell"` // empty when the member was unassigned
	ToCell   string `gorm:"size:100;not null" json:"to_cell"`

	MovedAt time.Time `json:"moved_at"`
	Note    string    `gorm:"size:255" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
