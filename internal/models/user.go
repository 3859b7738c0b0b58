// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Level     int            `gorm:"not null;default:1" json:"level"`
	Xp        int            `gorm:"not null;default:0" json:"xp"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	TimeBlocks []TimeBlock `gorm:"foreignKey:UserID" json:"time_blocks,omitempty"`
	Tasks      []Task      `gorm:"foreignKey:UserID" json:"tasks,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// RequiredXpForNextLevel returns how much XP is needed to advance past the
// given level. The requirement grows with each level.
func RequiredXpForNextLevel(level int) int {
	return 3000 + (level * 100)
}

// AddXp applies an XP gain and performs level-ups, carrying the remainder.
func (u *User) AddXp(amount int) {
	u.Xp += amount
	for u.Xp >= RequiredXpForNextLevel(u.Level) {
		u.Xp -= RequiredXpForNextLevel(u.Level)
		u.Level++
	}
}
