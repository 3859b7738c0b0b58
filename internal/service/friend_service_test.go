package service

import (
	"context"
	"errors"
	"testing"

	"monkmode/internal/models"
)

type friendRepoStub struct {
	createFn         func(context.Context, *models.Friendship) error
	getByIDFn        func(context.Context, uint) (*models.Friendship, error)
	getByPairFn      func(context.Context, uint, uint) (*models.Friendship, error)
	acceptPendingFn  func(context.Context, uint) (bool, error)
	deletePendingFn  func(context.Context, uint) (bool, error)
	deleteAcceptedFn func(context.Context, uint) (bool, error)
	getAcceptedFn    func(context.Context, uint) ([]models.Friendship, error)
	getIncomingFn    func(context.Context, uint) ([]models.Friendship, error)
	getOutgoingFn    func(context.Context, uint) ([]models.Friendship, error)
}

func (s *friendRepoStub) Create(ctx context.Context, friendship *models.Friendship) error {
	return s.createFn(ctx, friendship)
}
func (s *friendRepoStub) GetByID(ctx context.Context, id uint) (*models.Friendship, error) {
	return s.getByIDFn(ctx, id)
}
func (s *friendRepoStub) GetByPair(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error) {
	return s.getByPairFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) AcceptPending(ctx context.Context, friendshipID uint) (bool, error) {
	return s.acceptPendingFn(ctx, friendshipID)
}
func (s *friendRepoStub) DeletePending(ctx context.Context, friendshipID uint) (bool, error) {
	return s.deletePendingFn(ctx, friendshipID)
}
func (s *friendRepoStub) DeleteAccepted(ctx context.Context, friendshipID uint) (bool, error) {
	return s.deleteAcceptedFn(ctx, friendshipID)
}
func (s *friendRepoStub) GetAccepted(ctx context.Context, userID uint) ([]models.Friendship, error) {
	return s.getAcceptedFn(ctx, userID)
}
func (s *friendRepoStub) GetIncoming(ctx context.Context, userID uint) ([]models.Friendship, error) {
	return s.getIncomingFn(ctx, userID)
}
func (s *friendRepoStub) GetOutgoing(ctx context.Context, userID uint) ([]models.Friendship, error) {
	return s.getOutgoingFn(ctx, userID)
}

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "someone"}, nil
		},
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
	}
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		createFn:         func(context.Context, *models.Friendship) error { return nil },
		getByIDFn:        func(context.Context, uint) (*models.Friendship, error) { return &models.Friendship{}, nil },
		getByPairFn:      func(context.Context, uint, uint) (*models.Friendship, error) { return nil, nil },
		acceptPendingFn:  func(context.Context, uint) (bool, error) { return true, nil },
		deletePendingFn:  func(context.Context, uint) (bool, error) { return true, nil },
		deleteAcceptedFn: func(context.Context, uint) (bool, error) { return true, nil },
		getAcceptedFn:    func(context.Context, uint) ([]models.Friendship, error) { return nil, nil },
		getIncomingFn:    func(context.Context, uint) ([]models.Friendship, error) { return nil, nil },
		getOutgoingFn:    func(context.Context, uint) ([]models.Friendship, error) { return nil, nil },
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != code {
		t.Fatalf("expected %s app error, got %#v", code, err)
	}
}

func TestSendFriendRequest_SelfTarget(t *testing.T) {
	svc := NewFriendService(noopFriendRepo(), noopUserRepo())
	_, err := svc.SendFriendRequest(context.Background(), 3, 3)
	assertCode(t, err, models.CodeSelfTarget)
}

func TestSendFriendRequest_TargetNotFound(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewFriendService(noopFriendRepo(), users)
	_, err := svc.SendFriendRequest(context.Background(), 1, 99)
	assertCode(t, err, models.CodeTargetNotFound)
}

func TestSendFriendRequest_AlreadyAccepted(t *testing.T) {
	repo := noopFriendRepo()
	repo.getByPairFn = func(context.Context, uint, uint) (*models.Friendship, error) {
		return &models.Friendship{ID: 7, Status: models.FriendshipStatusAccepted}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	_, err := svc.SendFriendRequest(context.Background(), 1, 2)
	assertCode(t, err, models.CodeAlreadyAccepted)
}

func TestSendFriendRequest_PendingEitherDirectionConflicts(t *testing.T) {
	// A pending request in the reverse direction blocks a new request just
	// as one in the same direction does. The pair lookup is unordered, so
	// the stub only needs one shape.
	repo := noopFriendRepo()
	repo.getByPairFn = func(context.Context, uint, uint) (*models.Friendship, error) {
		return &models.Friendship{ID: 7, RequesterID: 2, AddresseeID: 1, Status: models.FriendshipStatusPending}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	_, err := svc.SendFriendRequest(context.Background(), 1, 2)
	assertCode(t, err, models.CodeRequestExists)
}

func TestSendFriendRequest_InsertRaceLosesCleanly(t *testing.T) {
	// Pre-check sees nothing, but the insert hits the unique pair key
	// because a concurrent request won. The store error surfaces as-is.
	repo := noopFriendRepo()
	repo.createFn = func(context.Context, *models.Friendship) error {
		return models.NewRequestExistsError()
	}

	svc := NewFriendService(repo, noopUserRepo())
	_, err := svc.SendFriendRequest(context.Background(), 1, 2)
	assertCode(t, err, models.CodeRequestExists)
}

func TestSendFriendRequest_Success(t *testing.T) {
	repo := noopFriendRepo()
	repo.createFn = func(_ context.Context, f *models.Friendship) error {
		if f.RequesterID != 1 || f.AddresseeID != 2 {
			t.Fatalf("unexpected participants: %d -> %d", f.RequesterID, f.AddresseeID)
		}
		if f.Status != models.FriendshipStatusPending {
			t.Fatalf("new requests must be pending, got %s", f.Status)
		}
		f.ID = 42
		return nil
	}
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Friendship, error) {
		return &models.Friendship{ID: id, RequesterID: 1, AddresseeID: 2, Status: models.FriendshipStatusPending}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	friendship, err := svc.SendFriendRequest(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if friendship.ID != 42 {
		t.Fatalf("expected reloaded friendship 42, got %d", friendship.ID)
	}
}

func TestAcceptFriendRequest_OnlyRecipientMayAccept(t *testing.T) {
	repo := noopFriendRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Friendship, error) {
		return &models.Friendship{ID: 5, RequesterID: 10, AddresseeID: 11, Status: models.FriendshipStatusPending}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())

	// The requester cannot accept their own request.
	_, err := svc.AcceptFriendRequest(context.Background(), 10, 5)
	assertCode(t, err, models.CodeForbidden)

	// Neither can an unrelated user.
	_, err = svc.AcceptFriendRequest(context.Background(), 12, 5)
	assertCode(t, err, models.CodeForbidden)
}

func TestAcceptFriendRequest_NotPending(t *testing.T) {
	repo := noopFriendRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Friendship, error) {
		return &models.Friendship{ID: 5, RequesterID: 10, AddresseeID: 11, Status: models.FriendshipStatusAccepted}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	_, err := svc.AcceptFriendRequest(context.Background(), 11, 5)
	assertCode(t, err, models.CodeNotPending)
}

func TestAcceptFriendRequest_RaceLoserSeesNotPending(t *testing.T) {
	// The read sees pending, but by the time the conditional update runs
	// another transition already moved the record. Exactly one accept wins.
	repo := noopFriendRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Friendship, error) {
		return &models.Friendship{ID: 5, RequesterID: 10, AddresseeID: 11, Status: models.FriendshipStatusPending}, nil
	}
	repo.acceptPendingFn = func(context.Context, uint) (bool, error) { return false, nil }

	svc := NewFriendService(repo, noopUserRepo())
	_, err := svc.AcceptFriendRequest(context.Background(), 11, 5)
	assertCode(t, err, models.CodeNotPending)
}

func TestAcceptFriendRequest_Success(t *testing.T) {
	status := models.FriendshipStatusPending
	repo := noopFriendRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Friendship, error) {
		return &models.Friendship{ID: 5, RequesterID: 10, AddresseeID: 11, Status: status}, nil
	}
	repo.acceptPendingFn = func(context.Context, uint) (bool, error) {
		status = models.FriendshipStatusAccepted
		return true, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	friendship, err := svc.AcceptFriendRequest(context.Background(), 11, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if friendship.Status != models.FriendshipStatusAccepted {
		t.Fatalf("expected accepted, got %s", friendship.Status)
	}
}

func TestRejectFriendRequest_OnlyRecipientMayReject(t *testing.T) {
	repo := noopFriendRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Friendship, error) {
		return &models.Friendship{ID: 5, RequesterID: 10, AddresseeID: 11, Status: models.FriendshipStatusPending}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	_, err := svc.RejectFriendRequest(context.Background(), 10, 5)
	assertCode(t, err, models.CodeForbidden)
}

func TestRejectFriendRequest_ReturnsSnapshotOfDeletedRecord(t *testing.T) {
	deleted := false
	repo := noopFriendRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Friendship, error) {
		return &models.Friendship{ID: 5, RequesterID: 10, AddresseeID: 11, Status: models.FriendshipStatusPending}, nil
	}
	repo.deletePendingFn = func(context.Context, uint) (bool, error) {
		deleted = true
		return true, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	snapshot, err := svc.RejectFriendRequest(context.Background(), 11, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("expected the pending record to be deleted")
	}
	if snapshot.RequesterID != 10 {
		t.Fatalf("snapshot must identify the requester for notification, got %d", snapshot.RequesterID)
	}
}

func TestRemoveFriend_AbsentIsNotAnError(t *testing.T) {
	repo := noopFriendRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Friendship, error) {
		return nil, models.NewNotFoundError("Friendship", id)
	}

	svc := NewFriendService(repo, noopUserRepo())
	removed, err := svc.RemoveFriend(context.Background(), 1, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Fatal("expected removed=false for missing friendship")
	}
}

func TestRemoveFriend_NotInvolved(t *testing.T) {
	repo := noopFriendRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Friendship, error) {
		return &models.Friendship{ID: 5, RequesterID: 10, AddresseeID: 11, Status: models.FriendshipStatusAccepted}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	removed, err := svc.RemoveFriend(context.Background(), 12, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Fatal("an outsider must not remove the friendship")
	}
}

func TestRemoveFriend_PendingIsNotRemovable(t *testing.T) {
	repo := noopFriendRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Friendship, error) {
		return &models.Friendship{ID: 5, RequesterID: 10, AddresseeID: 11, Status: models.FriendshipStatusPending}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	removed, err := svc.RemoveFriend(context.Background(), 11, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Fatal("pending requests are rejected, not removed")
	}
}

func TestRemoveFriend_EitherParticipantMayRemove(t *testing.T) {
	for _, actor := range []uint{10, 11} {
		repo := noopFriendRepo()
		repo.getByIDFn = func(context.Context, uint) (*models.Friendship, error) {
			return &models.Friendship{ID: 5, RequesterID: 10, AddresseeID: 11, Status: models.FriendshipStatusAccepted}, nil
		}

		svc := NewFriendService(repo, noopUserRepo())
		removed, err := svc.RemoveFriend(context.Background(), actor, 5)
		if err != nil {
			t.Fatalf("actor %d: unexpected error: %v", actor, err)
		}
		if !removed {
			t.Fatalf("actor %d: expected removal to succeed", actor)
		}
	}
}

func TestAreFriends(t *testing.T) {
	repo := noopFriendRepo()
	repo.getByPairFn = func(_ context.Context, a, b uint) (*models.Friendship, error) {
		if (a == 1 && b == 2) || (a == 2 && b == 1) {
			return &models.Friendship{Status: models.FriendshipStatusAccepted}, nil
		}
		if (a == 1 && b == 3) || (a == 3 && b == 1) {
			return &models.Friendship{Status: models.FriendshipStatusPending}, nil
		}
		return nil, nil
	}

	svc := NewFriendService(repo, noopUserRepo())

	friends, err := svc.AreFriends(context.Background(), 1, 2)
	if err != nil || !friends {
		t.Fatalf("expected accepted pair to be friends, got %v/%v", friends, err)
	}
	friends, _ = svc.AreFriends(context.Background(), 1, 3)
	if friends {
		t.Fatal("a pending request is not a friendship")
	}
	friends, _ = svc.AreFriends(context.Background(), 1, 4)
	if friends {
		t.Fatal("strangers are not friends")
	}
	friends, _ = svc.AreFriends(context.Background(), 1, 1)
	if friends {
		t.Fatal("a user is not their own friend")
	}
}

func TestListFriends_ProjectsCounterpartyAndSkipsUnresolved(t *testing.T) {
	repo := noopFriendRepo()
	repo.getAcceptedFn = func(context.Context, uint) ([]models.Friendship, error) {
		return []models.Friendship{
			{
				ID: 1, RequesterID: 7, AddresseeID: 8,
				Status:    models.FriendshipStatusAccepted,
				Requester: models.User{ID: 7, Username: "me"},
				Addressee: models.User{ID: 8, Username: "alice"},
			},
			{
				ID: 2, RequesterID: 9, AddresseeID: 7,
				Status:    models.FriendshipStatusAccepted,
				Requester: models.User{ID: 9, Username: "bob"},
				Addressee: models.User{ID: 7, Username: "me"},
			},
			{
				// Counterparty account is gone; the row is skipped
				// rather than failing the whole listing.
				ID: 3, RequesterID: 10, AddresseeID: 7,
				Status:    models.FriendshipStatusAccepted,
				Addressee: models.User{ID: 7, Username: "me"},
			},
		}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	views, err := svc.ListFriends(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 resolvable friends, got %d", len(views))
	}
	if views[0].FriendUsername != "alice" || views[0].FriendID != 8 {
		t.Fatalf("expected alice as counterparty, got %+v", views[0])
	}
	if views[1].FriendUsername != "bob" || views[1].FriendID != 9 {
		t.Fatalf("expected bob as counterparty, got %+v", views[1])
	}
}

func TestListIncomingAndOutgoing(t *testing.T) {
	repo := noopFriendRepo()
	repo.getIncomingFn = func(context.Context, uint) ([]models.Friendship, error) {
		return []models.Friendship{{
			ID: 4, RequesterID: 2, AddresseeID: 1,
			Status:    models.FriendshipStatusPending,
			Requester: models.User{ID: 2, Username: "asker"},
			Addressee: models.User{ID: 1, Username: "me"},
		}}, nil
	}
	repo.getOutgoingFn = func(context.Context, uint) ([]models.Friendship, error) {
		return []models.Friendship{{
			ID: 5, RequesterID: 1, AddresseeID: 3,
			Status:    models.FriendshipStatusPending,
			Requester: models.User{ID: 1, Username: "me"},
			Addressee: models.User{ID: 3, Username: "asked"},
		}}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())

	incoming, err := svc.ListIncoming(context.Background(), 1)
	if err != nil || len(incoming) != 1 {
		t.Fatalf("expected one incoming request, got %v/%v", incoming, err)
	}
	if incoming[0].FriendUsername != "asker" {
		t.Fatalf("incoming view must show the requester, got %s", incoming[0].FriendUsername)
	}

	outgoing, err := svc.ListOutgoing(context.Background(), 1)
	if err != nil || len(outgoing) != 1 {
		t.Fatalf("expected one outgoing request, got %v/%v", outgoing, err)
	}
	if outgoing[0].FriendUsername != "asked" {
		t.Fatalf("outgoing view must show the addressee, got %s", outgoing[0].FriendUsername)
	}
}
