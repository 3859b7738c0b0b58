package models

import "time"

// Task is a user-owned todo item, optionally linked to a time block.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	Title       string     `gorm:"size:160;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	// CompletedAt is set when the task is completed and cleared when reopened.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	TimeBlockID *uint      `gorm:"index" json:"time_block_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	User      User       `gorm:"foreignKey:UserID" json:"-"`
	TimeBlock *TimeBlock `gorm:"foreignKey:TimeBlockID" json:"time_block,omitempty"`
}

// TableName specifies the table name for GORM
func (Task) TableName() string {
	return "tasks"
}
