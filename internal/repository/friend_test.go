package repository

import (
	"context"
	"fmt"
	"testing"

	"monkmode/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendRepository(db)
	ctx := context.Background()

	u1 := &models.User{Username: "f1", Email: "f1@e.com", Password: "x"}
	u2 := &models.User{Username: "f2", Email: "f2@e.com", Password: "x"}
	require.NoError(t, db.Create(u1).Error)
	require.NoError(t, db.Create(u2).Error)

	t.Run("Create sets normalized pair key", func(t *testing.T) {
		friendship := &models.Friendship{
			RequesterID: u2.ID,
			AddresseeID: u1.ID,
			Status:      models.FriendshipStatusPending,
		}
		require.NoError(t, repo.Create(ctx, friendship))
		assert.Equal(t, models.FriendshipPairKey(u1.ID, u2.ID), friendship.PairKey)
	})

	t.Run("GetByPair resolves either direction", func(t *testing.T) {
		f, err := repo.GetByPair(ctx, u1.ID, u2.ID)
		require.NoError(t, err)
		require.NotNil(t, f)

		reversed, err := repo.GetByPair(ctx, u2.ID, u1.ID)
		require.NoError(t, err)
		require.NotNil(t, reversed)
		assert.Equal(t, f.ID, reversed.ID)
	})

	t.Run("GetIncoming and GetOutgoing", func(t *testing.T) {
		incoming, err := repo.GetIncoming(ctx, u1.ID)
		require.NoError(t, err)
		require.Len(t, incoming, 1)
		assert.Equal(t, u2.ID, incoming[0].RequesterID)
		assert.Equal(t, "f2", incoming[0].Requester.Username)

		outgoing, err := repo.GetOutgoing(ctx, u2.ID)
		require.NoError(t, err)
		require.Len(t, outgoing, 1)
		assert.Equal(t, u1.ID, outgoing[0].AddresseeID)
	})

	t.Run("AcceptPending flips exactly once", func(t *testing.T) {
		f, err := repo.GetByPair(ctx, u1.ID, u2.ID)
		require.NoError(t, err)

		ok, err := repo.AcceptPending(ctx, f.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		// A second accept finds nothing pending.
		ok, err = repo.AcceptPending(ctx, f.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		accepted, err := repo.GetAccepted(ctx, u1.ID)
		require.NoError(t, err)
		assert.Len(t, accepted, 1)
	})

	t.Run("DeletePending refuses accepted records", func(t *testing.T) {
		f, err := repo.GetByPair(ctx, u1.ID, u2.ID)
		require.NoError(t, err)

		ok, err := repo.DeletePending(ctx, f.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("DeleteAccepted removes the row", func(t *testing.T) {
		f, err := repo.GetByPair(ctx, u1.ID, u2.ID)
		require.NoError(t, err)

		ok, err := repo.DeleteAccepted(ctx, f.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		gone, err := repo.GetByPair(ctx, u1.ID, u2.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}

func TestFriendRepository_PairUniquenessBothDirections(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendRepository(db)
	ctx := context.Background()

	u1 := &models.User{Username: "p1", Email: "p1@e.com", Password: "x"}
	u2 := &models.User{Username: "p2", Email: "p2@e.com", Password: "x"}
	require.NoError(t, db.Create(u1).Error)
	require.NoError(t, db.Create(u2).Error)

	require.NoError(t, repo.Create(ctx, &models.Friendship{
		RequesterID: u1.ID, AddresseeID: u2.ID, Status: models.FriendshipStatusPending,
	}))

	// Same direction duplicate.
	err := repo.Create(ctx, &models.Friendship{
		RequesterID: u1.ID, AddresseeID: u2.ID, Status: models.FriendshipStatusPending,
	})
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeRequestExists, appErr.Code)

	// Reverse direction hits the same unique pair key.
	err = repo.Create(ctx, &models.Friendship{
		RequesterID: u2.ID, AddresseeID: u1.ID, Status: models.FriendshipStatusPending,
	})
	require.Error(t, err)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeRequestExists, appErr.Code)

	// Exactly one live row for the pair.
	var count int64
	db.Model(&models.Friendship{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestFriendRepository_PairIsReusableAfterDeletion(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendRepository(db)
	ctx := context.Background()

	u1 := &models.User{Username: "r1", Email: "r1@e.com", Password: "x"}
	u2 := &models.User{Username: "r2", Email: "r2@e.com", Password: "x"}
	require.NoError(t, db.Create(u1).Error)
	require.NoError(t, db.Create(u2).Error)

	first := &models.Friendship{RequesterID: u1.ID, AddresseeID: u2.ID, Status: models.FriendshipStatusPending}
	require.NoError(t, repo.Create(ctx, first))

	ok, err := repo.DeletePending(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, ok)

	// Rejection deletes the row, so a new request for the pair is allowed,
	// including from the opposite direction.
	second := &models.Friendship{RequesterID: u2.ID, AddresseeID: u1.ID, Status: models.FriendshipStatusPending}
	require.NoError(t, repo.Create(ctx, second))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestFriendRepository_GetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendRepository(db)

	_, err := repo.GetByID(context.Background(), 9999)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestFriendRepository_GetAcceptedExcludesPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendRepository(db)
	ctx := context.Background()

	var users []*models.User
	for i := 1; i <= 3; i++ {
		u := &models.User{
			Username: fmt.Sprintf("a%d", i),
			Email:    fmt.Sprintf("a%d@e.com", i),
			Password: "x",
		}
		require.NoError(t, db.Create(u).Error)
		users = append(users, u)
	}

	accepted := &models.Friendship{RequesterID: users[0].ID, AddresseeID: users[1].ID, Status: models.FriendshipStatusPending}
	require.NoError(t, repo.Create(ctx, accepted))
	ok, err := repo.AcceptPending(ctx, accepted.ID)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, repo.Create(ctx, &models.Friendship{
		RequesterID: users[2].ID, AddresseeID: users[0].ID, Status: models.FriendshipStatusPending,
	}))

	friends, err := repo.GetAccepted(ctx, users[0].ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, models.FriendshipStatusAccepted, friends[0].Status)
}
