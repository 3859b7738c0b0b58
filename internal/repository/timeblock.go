package repository

import (
	"context"
	"errors"
	"time"

	"monkmode/internal/models"

	"gorm.io/gorm"
)

// TimeBlockRepository defines the interface for time block data operations.
type TimeBlockRepository interface {
	Create(ctx context.Context, block *models.TimeBlock) error
	CreateBatch(ctx context.Context, blocks []models.TimeBlock) error
	GetByID(ctx context.Context, id uint) (*models.TimeBlock, error)
	GetByUserAndDate(ctx context.Context, userID uint, date time.Time) ([]models.TimeBlock, error)
	GetByUserAndRange(ctx context.Context, userID uint, from, to time.Time) ([]models.TimeBlock, error)
	Update(ctx context.Context, block *models.TimeBlock) error
	Delete(ctx context.Context, id uint) error
}

type timeBlockRepository struct {
	db *gorm.DB
}

// NewTimeBlockRepository creates a new time block repository
func NewTimeBlockRepository(db *gorm.DB) TimeBlockRepository {
	return &timeBlockRepository{db: db}
}

func (r *timeBlockRepository) Create(ctx context.Context, block *models.TimeBlock) error {
	if err := r.db.WithContext(ctx).Create(block).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// CreateBatch inserts all blocks in a single transaction, used when applying
// a template to a day.
func (r *timeBlockRepository) CreateBatch(ctx context.Context, blocks []models.TimeBlock) error {
	if len(blocks) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&blocks).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *timeBlockRepository) GetByID(ctx context.Context, id uint) (*models.TimeBlock, error) {
	var block models.TimeBlock
	if err := r.db.WithContext(ctx).Preload("Tasks").First(&block, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("TimeBlock", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &block, nil
}

func (r *timeBlockRepository) GetByUserAndDate(ctx context.Context, userID uint, date time.Time) ([]models.TimeBlock, error) {
	var blocks []models.TimeBlock
	day := date.UTC().Truncate(24 * time.Hour)
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		Order("start_time ASC").
		Preload("Tasks").
		Find(&blocks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return blocks, nil
}

func (r *timeBlockRepository) GetByUserAndRange(ctx context.Context, userID uint, from, to time.Time) ([]models.TimeBlock, error) {
	var blocks []models.TimeBlock
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from.UTC(), to.UTC()).
		Order("date ASC, start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return blocks, nil
}

func (r *timeBlockRepository) Update(ctx context.Context, block *models.TimeBlock) error {
	if err := r.db.WithContext(ctx).Save(block).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *timeBlockRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.TimeBlock{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("TimeBlock", id)
	}
	return nil
}
