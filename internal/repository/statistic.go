package repository

import (
	"context"
	"errors"
	"time"

	"monkmode/internal/cache"
	"monkmode/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatisticRepository defines the interface for daily statistic data
// operations. One row exists per (user, day); AddFocusTime accumulates onto
// it atomically.
type StatisticRepository interface {
	// AddFocusTime adds minutes to the user's total for the given day,
	// creating the row if it does not exist yet.
	AddFocusTime(ctx context.Context, userID uint, date time.Time, minutes int) error
	GetByUserAndDate(ctx context.Context, userID uint, date time.Time) (*models.DailyStatistic, error)
	GetByUserAndRange(ctx context.Context, userID uint, from, to time.Time) ([]models.DailyStatistic, error)
}

type statisticRepository struct {
	db *gorm.DB
}

// NewStatisticRepository creates a new statistic repository
func NewStatisticRepository(db *gorm.DB) StatisticRepository {
	return &statisticRepository{db: db}
}

func (r *statisticRepository) AddFocusTime(ctx context.Context, userID uint, date time.Time, minutes int) error {
	day := date.UTC().Truncate(24 * time.Hour)
	stat := models.DailyStatistic{
		UserID:         userID,
		Date:           day,
		TotalFocusTime: minutes,
	}
	// Upsert on the (user_id, date) unique index; concurrent writers both
	// land their minutes because the conflict branch adds rather than sets.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_focus_time": gorm.Expr("daily_statistics.total_focus_time + ?", minutes),
			"updated_at":       time.Now().UTC(),
		}),
	}).Create(&stat).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateDailyStats(ctx, userID, day)
	return nil
}

func (r *statisticRepository) GetByUserAndDate(ctx context.Context, userID uint, date time.Time) (*models.DailyStatistic, error) {
	var stat models.DailyStatistic
	day := date.UTC().Truncate(24 * time.Hour)
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		First(&stat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &stat, nil
}

func (r *statisticRepository) GetByUserAndRange(ctx context.Context, userID uint, from, to time.Time) ([]models.DailyStatistic, error) {
	var stats []models.DailyStatistic
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from.UTC(), to.UTC()).
		Order("date ASC").
		Find(&stats).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return stats, nil
}
