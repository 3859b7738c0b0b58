package service

import (
	"context"
	"time"

	"monkmode/internal/models"
	"monkmode/internal/repository"
)

// minutesPerDay bounds StartTime/EndTime, which are minutes from midnight.
const minutesPerDay = 24 * 60

type TimeBlockService struct {
	timeBlockRepo repository.TimeBlockRepository
	statRepo      repository.StatisticRepository
	userService   *UserService
}

type TimeBlockInput struct {
	Title     string
	Date      time.Time
	StartTime int
	EndTime   int
	IsFocus   bool
}

func NewTimeBlockService(timeBlockRepo repository.TimeBlockRepository, statRepo repository.StatisticRepository, userService *UserService) *TimeBlockService {
	return &TimeBlockService{
		timeBlockRepo: timeBlockRepo,
		statRepo:      statRepo,
		userService:   userService,
	}
}

func validateBlockTimes(start, end int) error {
	if start < 0 || end > minutesPerDay {
		return models.NewValidationError("Times must fall within a single day")
	}
	if end <= start {
		return models.NewValidationError("End time must be after start time")
	}
	return nil
}

func (s *TimeBlockService) CreateTimeBlock(ctx context.Context, userID uint, in TimeBlockInput) (*models.TimeBlock, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if err := validateBlockTimes(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	block := &models.TimeBlock{
		UserID:    userID,
		Title:     in.Title,
		Date:      in.Date.UTC().Truncate(24 * time.Hour),
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		IsFocus:   in.IsFocus,
	}
	if err := s.timeBlockRepo.Create(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

func (s *TimeBlockService) GetTimeBlock(ctx context.Context, userID, blockID uint) (*models.TimeBlock, error) {
	block, err := s.timeBlockRepo.GetByID(ctx, blockID)
	if err != nil {
		return nil, err
	}
	if block.UserID != userID {
		return nil, models.NewForbiddenError("Time block belongs to another user")
	}
	return block, nil
}

func (s *TimeBlockService) ListForDate(ctx context.Context, userID uint, date time.Time) ([]models.TimeBlock, error) {
	return s.timeBlockRepo.GetByUserAndDate(ctx, userID, date)
}

func (s *TimeBlockService) UpdateTimeBlock(ctx context.Context, userID, blockID uint, in TimeBlockInput) (*models.TimeBlock, error) {
	block, err := s.GetTimeBlock(ctx, userID, blockID)
	if err != nil {
		return nil, err
	}
	if err := validateBlockTimes(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	if in.Title != "" {
		block.Title = in.Title
	}
	block.Date = in.Date.UTC().Truncate(24 * time.Hour)
	block.StartTime = in.StartTime
	block.EndTime = in.EndTime
	block.IsFocus = in.IsFocus

	if err := s.timeBlockRepo.Update(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

func (s *TimeBlockService) DeleteTimeBlock(ctx context.Context, userID, blockID uint) error {
	if _, err := s.GetTimeBlock(ctx, userID, blockID); err != nil {
		return err
	}
	return s.timeBlockRepo.Delete(ctx, blockID)
}

// CompleteFocusBlock records a finished focus session: the block's duration
// is added to the day's statistics and converted to XP. Non-focus blocks
// complete without side effects.
func (s *TimeBlockService) CompleteFocusBlock(ctx context.Context, userID, blockID uint) (*models.User, error) {
	block, err := s.GetTimeBlock(ctx, userID, blockID)
	if err != nil {
		return nil, err
	}

	if !block.IsFocus {
		return s.userService.GetUserByID(ctx, userID)
	}

	minutes := block.EndTime - block.StartTime
	if err := s.statRepo.AddFocusTime(ctx, userID, block.Date, minutes); err != nil {
		return nil, err
	}

	// One XP per focused minute.
	return s.userService.AwardXp(ctx, userID, minutes)
}

// ApplyTemplate materializes a template's blocks onto the given date.
func (s *TimeBlockService) ApplyTemplate(ctx context.Context, userID uint, template *models.Template, date time.Time) ([]models.TimeBlock, error) {
	if template.UserID != userID {
		return nil, models.NewForbiddenError("Template belongs to another user")
	}

	day := date.UTC().Truncate(24 * time.Hour)
	blocks := make([]models.TimeBlock, 0, len(template.TemplateBlocks))
	for _, tb := range template.TemplateBlocks {
		blocks = append(blocks, models.TimeBlock{
			UserID:    userID,
			Title:     tb.Title,
			Date:      day,
			StartTime: tb.StartTime,
			EndTime:   tb.EndTime,
			IsFocus:   tb.IsFocus,
		})
	}

	if err := s.timeBlockRepo.CreateBatch(ctx, blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}
