// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"monkmode/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// FriendRepository defines the interface for friendship data operations.
// Create, AcceptPending, DeletePending and DeleteAccepted are the
// serialization points for concurrent lifecycle transitions: each one is a
// single conditional statement so two racing callers cannot both succeed.
type FriendRepository interface {
	// Create inserts a pending friendship. It returns a REQUEST_ALREADY_EXISTS
	// error when a live record for the pair already exists in either
	// direction, even if the caller's own pre-check passed.
	Create(ctx context.Context, friendship *models.Friendship) error
	GetByID(ctx context.Context, id uint) (*models.Friendship, error)
	// GetByPair finds the live record for an unordered user pair, or nil.
	GetByPair(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error)
	// AcceptPending flips pending -> accepted. Returns false when the record
	// was not pending anymore (or is gone), without error.
	AcceptPending(ctx context.Context, friendshipID uint) (bool, error)
	// DeletePending removes the record only while it is still pending.
	DeletePending(ctx context.Context, friendshipID uint) (bool, error)
	// DeleteAccepted removes the record only while it is accepted.
	DeleteAccepted(ctx context.Context, friendshipID uint) (bool, error)
	GetAccepted(ctx context.Context, userID uint) ([]models.Friendship, error)
	GetIncoming(ctx context.Context, userID uint) ([]models.Friendship, error)
	GetOutgoing(ctx context.Context, userID uint) ([]models.Friendship, error)
}

// friendRepository implements FriendRepository
type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

// isPairConflict reports whether err is the unique violation on the
// friendships pair key. SQLite (tests) reports constraint failures as
// gorm.ErrDuplicatedKey through the translator, Postgres as pgconn 23505.
func isPairConflict(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *friendRepository) Create(ctx context.Context, friendship *models.Friendship) error {
	if err := r.db.WithContext(ctx).Create(friendship).Error; err != nil {
		if isPairConflict(err) {
			return models.NewRequestExistsError()
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) GetByID(ctx context.Context, id uint) (*models.Friendship, error) {
	var friendship models.Friendship
	if err := r.db.WithContext(ctx).Preload("Requester").Preload("Addressee").First(&friendship, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friendship", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &friendship, nil
}

func (r *friendRepository) GetByPair(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error) {
	var friendship models.Friendship
	if err := r.db.WithContext(ctx).
		Where("pair_key = ?", models.FriendshipPairKey(userID1, userID2)).
		First(&friendship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No live record for this pair
		}
		return nil, models.NewInternalError(err)
	}
	return &friendship, nil
}

func (r *friendRepository) AcceptPending(ctx context.Context, friendshipID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("id = ? AND status = ?", friendshipID, models.FriendshipStatusPending).
		Update("status", models.FriendshipStatusAccepted)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *friendRepository) DeletePending(ctx context.Context, friendshipID uint) (bool, error) {
	return r.deleteInStatus(ctx, friendshipID, models.FriendshipStatusPending)
}

func (r *friendRepository) DeleteAccepted(ctx context.Context, friendshipID uint) (bool, error) {
	return r.deleteInStatus(ctx, friendshipID, models.FriendshipStatusAccepted)
}

func (r *friendRepository) deleteInStatus(ctx context.Context, friendshipID uint, status models.FriendshipStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", friendshipID, status).
		Delete(&models.Friendship{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *friendRepository) GetAccepted(ctx context.Context, userID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship
	if err := r.db.WithContext(ctx).
		Where("(requester_id = ? OR addressee_id = ?) AND status = ?",
			userID, userID, models.FriendshipStatusAccepted).
		Preload("Requester").
		Preload("Addressee").
		Find(&friendships).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return friendships, nil
}

func (r *friendRepository) GetIncoming(ctx context.Context, userID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship
	if err := r.db.WithContext(ctx).
		Where("addressee_id = ? AND status = ?", userID, models.FriendshipStatusPending).
		Preload("Requester").
		Preload("Addressee").
		Find(&friendships).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return friendships, nil
}

func (r *friendRepository) GetOutgoing(ctx context.Context, userID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship
	if err := r.db.WithContext(ctx).
		Where("requester_id = ? AND status = ?", userID, models.FriendshipStatusPending).
		Preload("Requester").
		Preload("Addressee").
		Find(&friendships).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return friendships, nil
}
