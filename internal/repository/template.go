package repository

import (
	"context"
	"errors"

	"monkmode/internal/models"

	"gorm.io/gorm"
)

// TemplateRepository defines the interface for template data operations.
type TemplateRepository interface {
	Create(ctx context.Context, template *models.Template) error
	GetByID(ctx context.Context, id uint) (*models.Template, error)
	GetByUser(ctx context.Context, userID uint) ([]models.Template, error)
	Update(ctx context.Context, template *models.Template) error
	Delete(ctx context.Context, id uint) error
}

type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(ctx context.Context, template *models.Template) error {
	if err := r.db.WithContext(ctx).Create(template).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *templateRepository) GetByID(ctx context.Context, id uint) (*models.Template, error) {
	var template models.Template
	if err := r.db.WithContext(ctx).
		Preload("TemplateBlocks", func(db *gorm.DB) *gorm.DB {
			return db.Order("template_blocks.start_time ASC")
		}).
		First(&template, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Template", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &template, nil
}

func (r *templateRepository) GetByUser(ctx context.Context, userID uint) ([]models.Template, error) {
	var templates []models.Template
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("TemplateBlocks").
		Find(&templates).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return templates, nil
}

// Update replaces the template's blocks wholesale along with its own fields.
func (r *templateRepository) Update(ctx context.Context, template *models.Template) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", template.ID).Delete(&models.TemplateBlock{}).Error; err != nil {
			return err
		}
		return tx.Save(template).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *templateRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Select("TemplateBlocks").Delete(&models.Template{ID: id})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Template", id)
	}
	return nil
}
