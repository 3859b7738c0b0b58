// Package service contains the business logic layer.
package service

import (
	"context"
	"strconv"

	"monkmode/internal/models"
	"monkmode/internal/repository"
)

// FriendService enforces the friendship lifecycle: a pair of users moves from
// no relationship to pending to accepted, and back to nothing on rejection or
// removal. It is the only component with branching rules over friendship
// state; handlers translate its outcomes, the repository serializes them.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// SendFriendRequest creates a pending friendship from actor to target.
// A pending request in the reverse direction is a conflict, not an
// auto-accept. The repository's pair uniqueness is authoritative: even when
// the pre-check sees no record, a concurrent insert loses cleanly with
// REQUEST_ALREADY_EXISTS.
func (s *FriendService) SendFriendRequest(ctx context.Context, actorID, targetID uint) (*models.Friendship, error) {
	if actorID == targetID {
		return nil, models.NewSelfTargetError()
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		if models.CodeOf(err) == models.CodeNotFound {
			return nil, models.NewTargetNotFoundError(strconv.FormatUint(uint64(targetID), 10))
		}
		return nil, err
	}

	existing, err := s.friendRepo.GetByPair(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status == models.FriendshipStatusAccepted {
			return nil, models.NewAlreadyAcceptedError()
		}
		return nil, models.NewRequestExistsError()
	}

	friendship := &models.Friendship{
		RequesterID: actorID,
		AddresseeID: targetID,
		Status:      models.FriendshipStatusPending,
	}
	if err := s.friendRepo.Create(ctx, friendship); err != nil {
		return nil, err
	}

	return s.friendRepo.GetByID(ctx, friendship.ID)
}

// AcceptFriendRequest flips a pending request to accepted. Only the addressee
// may accept. Of two concurrent accepts exactly one succeeds; the loser sees
// NOT_PENDING.
func (s *FriendService) AcceptFriendRequest(ctx context.Context, actorID, friendshipID uint) (*models.Friendship, error) {
	friendship, err := s.friendRepo.GetByID(ctx, friendshipID)
	if err != nil {
		return nil, err
	}

	if friendship.AddresseeID != actorID {
		return nil, models.NewForbiddenError("Only the recipient can accept a friend request")
	}
	if friendship.Status != models.FriendshipStatusPending {
		return nil, models.NewNotPendingError()
	}

	ok, err := s.friendRepo.AcceptPending(ctx, friendshipID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race: someone else already moved it out of pending.
		return nil, models.NewNotPendingError()
	}

	return s.friendRepo.GetByID(ctx, friendshipID)
}

// RejectFriendRequest deletes a pending request. Only the addressee may
// reject. Returns a snapshot of the deleted record so callers can still
// notify the requester.
func (s *FriendService) RejectFriendRequest(ctx context.Context, actorID, friendshipID uint) (*models.Friendship, error) {
	friendship, err := s.friendRepo.GetByID(ctx, friendshipID)
	if err != nil {
		return nil, err
	}

	if friendship.AddresseeID != actorID {
		return nil, models.NewForbiddenError("Only the recipient can reject a friend request")
	}
	if friendship.Status != models.FriendshipStatusPending {
		return nil, models.NewNotPendingError()
	}

	ok, err := s.friendRepo.DeletePending(ctx, friendshipID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewNotPendingError()
	}

	return friendship, nil
}

// RemoveFriend deletes an accepted friendship. Either participant can remove.
// "Nothing to remove" is a normal outcome, so the method reports success as a
// boolean rather than a distinct error per failure cause.
func (s *FriendService) RemoveFriend(ctx context.Context, actorID, friendshipID uint) (bool, error) {
	friendship, err := s.friendRepo.GetByID(ctx, friendshipID)
	if err != nil {
		if models.CodeOf(err) == models.CodeNotFound {
			return false, nil
		}
		return false, err
	}

	if !friendship.Involves(actorID) {
		return false, nil
	}
	if friendship.Status != models.FriendshipStatusAccepted {
		return false, nil
	}

	return s.friendRepo.DeleteAccepted(ctx, friendshipID)
}

// AreFriends reports whether an accepted friendship exists for the pair.
func (s *FriendService) AreFriends(ctx context.Context, userID, otherID uint) (bool, error) {
	if userID == otherID {
		return false, nil
	}
	friendship, err := s.friendRepo.GetByPair(ctx, userID, otherID)
	if err != nil {
		return false, err
	}
	return friendship != nil && friendship.Status == models.FriendshipStatusAccepted, nil
}

// ListFriends returns the user's accepted friendships projected with the
// counterparty's username.
func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]models.FriendshipView, error) {
	friendships, err := s.friendRepo.GetAccepted(ctx, userID)
	if err != nil {
		return nil, err
	}
	return projectFriendships(userID, friendships), nil
}

// ListIncoming returns pending requests addressed to the user.
func (s *FriendService) ListIncoming(ctx context.Context, userID uint) ([]models.FriendshipView, error) {
	friendships, err := s.friendRepo.GetIncoming(ctx, userID)
	if err != nil {
		return nil, err
	}
	return projectFriendships(userID, friendships), nil
}

// ListOutgoing returns pending requests the user has sent.
func (s *FriendService) ListOutgoing(ctx context.Context, userID uint) ([]models.FriendshipView, error) {
	friendships, err := s.friendRepo.GetOutgoing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return projectFriendships(userID, friendships), nil
}

// projectFriendships maps friendships to views relative to userID. Records
// whose counterparty could not be resolved (deleted account, missing row) are
// skipped rather than failing the whole list.
func projectFriendships(userID uint, friendships []models.Friendship) []models.FriendshipView {
	views := make([]models.FriendshipView, 0, len(friendships))
	for _, f := range friendships {
		counterparty := f.Requester
		if f.RequesterID == userID {
			counterparty = f.Addressee
		}
		if counterparty.ID == 0 || counterparty.Username == "" {
			continue
		}
		views = append(views, models.FriendshipView{
			ID:             f.ID,
			FriendID:       counterparty.ID,
			FriendUsername: counterparty.Username,
			Status:         f.Status,
			CreatedAt:      f.CreatedAt,
		})
	}
	return views
}
