package database

import "monkmode/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Friendship{},
		&models.Task{},
		&models.TimeBlock{},
		&models.Template{},
		&models.TemplateBlock{},
		&models.DailyStatistic{},
	}
}
