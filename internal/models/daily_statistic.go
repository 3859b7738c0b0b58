package models

import "time"

// DailyStatistic accumulates a user's focus time for a single calendar day.
// There is at most one row per (user, day); updates add to the existing total.
type DailyStatistic struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_daily_statistics_user_date" json:"user_id"`
	// Date is truncated to midnight UTC before persisting.
	Date           time.Time `gorm:"not null;uniqueIndex:idx_daily_statistics_user_date" json:"date"`
	TotalFocusTime int       `gorm:"not null;default:0" json:"total_focus_time"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for GORM
func (DailyStatistic) TableName() string {
	return "daily_statistics"
}

// DailyStatisticView is the API projection of a day's statistics together
// with the owner's progression fields.
type DailyStatisticView struct {
	Date           time.Time `json:"date"`
	TotalFocusTime int       `json:"total_focus_time"`
	Username       string    `json:"username"`
	Xp             int       `json:"xp"`
	Level          int       `json:"level"`
}
