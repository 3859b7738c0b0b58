package service

import (
	"context"

	"monkmode/internal/models"
	"monkmode/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserByUsername resolves a handle. Absence is an error here, unlike the
// repository, because callers ask for a specific user.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewTargetNotFoundError(username)
	}
	return user, nil
}

// AwardXp adds experience to the user, applying level-ups with remainder
// carry, and persists the result.
func (s *UserService) AwardXp(ctx context.Context, userID uint, amount int) (*models.User, error) {
	if amount <= 0 {
		return nil, models.NewValidationError("XP amount must be positive")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.AddXp(amount)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
