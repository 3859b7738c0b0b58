package service

import (
	"context"
	"time"

	"monkmode/internal/cache"
	"monkmode/internal/models"
	"monkmode/internal/repository"
)

// StatisticService reads and writes daily focus statistics. Reading another
// user's statistics requires an accepted friendship with them.
type StatisticService struct {
	statRepo      repository.StatisticRepository
	userRepo      repository.UserRepository
	friendService *FriendService
}

func NewStatisticService(statRepo repository.StatisticRepository, userRepo repository.UserRepository, friendService *FriendService) *StatisticService {
	return &StatisticService{
		statRepo:      statRepo,
		userRepo:      userRepo,
		friendService: friendService,
	}
}

// AddFocusTime accumulates minutes onto the caller's statistics for the day.
func (s *StatisticService) AddFocusTime(ctx context.Context, userID uint, date time.Time, minutes int) (*models.DailyStatistic, error) {
	if minutes <= 0 {
		return nil, models.NewValidationError("Focus time must be positive")
	}

	if err := s.statRepo.AddFocusTime(ctx, userID, date, minutes); err != nil {
		return nil, err
	}
	return s.statRepo.GetByUserAndDate(ctx, userID, date)
}

// GetDailyView returns the statistics view for viewerID looking at ownerID's
// day. Viewing your own day is always allowed; viewing someone else's
// requires an accepted friendship.
func (s *StatisticService) GetDailyView(ctx context.Context, viewerID, ownerID uint, date time.Time) (*models.DailyStatisticView, error) {
	if viewerID != ownerID {
		friends, err := s.friendService.AreFriends(ctx, viewerID, ownerID)
		if err != nil {
			return nil, err
		}
		if !friends {
			return nil, models.NewForbiddenError("Statistics are only visible to friends")
		}
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	day := date.UTC().Truncate(24 * time.Hour)
	var view models.DailyStatisticView
	err = cache.Aside(ctx, cache.DailyStatsKey(ownerID, day), &view, cache.DailyStatsTTL, func() error {
		stat, err := s.statRepo.GetByUserAndDate(ctx, ownerID, day)
		if err != nil {
			return err
		}
		view = models.DailyStatisticView{
			Date:     day,
			Username: owner.Username,
			Xp:       owner.Xp,
			Level:    owner.Level,
		}
		if stat != nil {
			view.TotalFocusTime = stat.TotalFocusTime
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// GetRange returns the owner's statistics between two days inclusive, under
// the same visibility rule as GetDailyView.
func (s *StatisticService) GetRange(ctx context.Context, viewerID, ownerID uint, from, to time.Time) ([]models.DailyStatistic, error) {
	if viewerID != ownerID {
		friends, err := s.friendService.AreFriends(ctx, viewerID, ownerID)
		if err != nil {
			return nil, err
		}
		if !friends {
			return nil, models.NewForbiddenError("Statistics are only visible to friends")
		}
	}
	return s.statRepo.GetByUserAndRange(ctx, ownerID, from, to)
}
