package service

import (
	"context"

	"monkmode/internal/models"
	"monkmode/internal/repository"
)

type TemplateService struct {
	templateRepo repository.TemplateRepository
}

type TemplateBlockInput struct {
	Title     string
	StartTime int
	EndTime   int
	IsFocus   bool
}

type TemplateInput struct {
	Title  string
	Blocks []TemplateBlockInput
}

func NewTemplateService(templateRepo repository.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

func buildTemplateBlocks(in []TemplateBlockInput) ([]models.TemplateBlock, error) {
	blocks := make([]models.TemplateBlock, 0, len(in))
	for _, b := range in {
		if b.Title == "" {
			return nil, models.NewValidationError("Block title is required")
		}
		if err := validateBlockTimes(b.StartTime, b.EndTime); err != nil {
			return nil, err
		}
		blocks = append(blocks, models.TemplateBlock{
			Title:     b.Title,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			IsFocus:   b.IsFocus,
		})
	}
	return blocks, nil
}

func (s *TemplateService) CreateTemplate(ctx context.Context, userID uint, in TemplateInput) (*models.Template, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	blocks, err := buildTemplateBlocks(in.Blocks)
	if err != nil {
		return nil, err
	}

	template := &models.Template{
		UserID:         userID,
		Title:          in.Title,
		TemplateBlocks: blocks,
	}
	if err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *TemplateService) GetTemplate(ctx context.Context, userID, templateID uint) (*models.Template, error) {
	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if template.UserID != userID {
		return nil, models.NewForbiddenError("Template belongs to another user")
	}
	return template, nil
}

func (s *TemplateService) ListTemplates(ctx context.Context, userID uint) ([]models.Template, error) {
	return s.templateRepo.GetByUser(ctx, userID)
}

// UpdateTemplate replaces the template's title and block set.
func (s *TemplateService) UpdateTemplate(ctx context.Context, userID, templateID uint, in TemplateInput) (*models.Template, error) {
	template, err := s.GetTemplate(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}

	blocks, err := buildTemplateBlocks(in.Blocks)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		template.Title = in.Title
	}
	for i := range blocks {
		blocks[i].TemplateID = template.ID
	}
	template.TemplateBlocks = blocks

	if err := s.templateRepo.Update(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, userID, templateID uint) error {
	if _, err := s.GetTemplate(ctx, userID, templateID); err != nil {
		return err
	}
	return s.templateRepo.Delete(ctx, templateID)
}
