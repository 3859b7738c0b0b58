package models

import "time"

// Template is a reusable day layout a user can apply to build time blocks.
type Template struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"size:160;not null" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User           User            `gorm:"foreignKey:UserID" json:"-"`
	TemplateBlocks []TemplateBlock `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"template_blocks,omitempty"`
}

// TableName specifies the table name for GORM
func (Template) TableName() string {
	return "templates"
}

// TemplateBlock is a single slot within a template. Times are minutes from
// midnight, same encoding as TimeBlock.
type TemplateBlock struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TemplateID uint      `gorm:"not null;index" json:"template_id"`
	Title      string    `gorm:"size:160;not null" json:"title"`
	StartTime  int       `gorm:"not null" json:"start_time"`
	EndTime    int       `gorm:"not null" json:"end_time"`
	IsFocus    bool      `gorm:"not null;default:false" json:"is_focus"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Template *Template `gorm:"foreignKey:TemplateID" json:"-"`
}

// TableName specifies the table name for GORM
func (TemplateBlock) TableName() string {
	return "template_blocks"
}
