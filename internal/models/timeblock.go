package models

import "time"

// TimeBlock is a scheduled slot in a user's day. StartTime and EndTime are
// minutes from midnight; the handler layer enforces EndTime > StartTime.
type TimeBlock struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"size:160;not null" json:"title"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	StartTime int       `gorm:"not null" json:"start_time"`
	EndTime   int       `gorm:"not null" json:"end_time"`
	// IsFocus marks the block as distraction-free focus time; completed focus
	// minutes feed the daily statistics.
	IsFocus   bool      `gorm:"not null;default:false" json:"is_focus"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Tasks []Task `gorm:"foreignKey:TimeBlockID" json:"tasks,omitempty"`
}

// TableName specifies the table name for GORM
func (TimeBlock) TableName() string {
	return "time_blocks"
}
