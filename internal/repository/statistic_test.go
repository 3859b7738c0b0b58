package repository

import (
	"context"
	"testing"
	"time"

	"monkmode/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticRepository_AddFocusTimeAccumulates(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatisticRepository(db)
	ctx := context.Background()

	u := &models.User{Username: "s1", Email: "s1@e.com", Password: "x"}
	require.NoError(t, db.Create(u).Error)

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.AddFocusTime(ctx, u.ID, day, 25))
	require.NoError(t, repo.AddFocusTime(ctx, u.ID, day, 50))

	stat, err := repo.GetByUserAndDate(ctx, u.ID, day)
	require.NoError(t, err)
	require.NotNil(t, stat)
	assert.Equal(t, 75, stat.TotalFocusTime)

	// One row per (user, day), not one per write.
	var count int64
	db.Model(&models.DailyStatistic{}).Where("user_id = ?", u.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestStatisticRepository_AddFocusTimeTruncatesToDay(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatisticRepository(db)
	ctx := context.Background()

	u := &models.User{Username: "s2", Email: "s2@e.com", Password: "x"}
	require.NoError(t, db.Create(u).Error)

	// Two timestamps within the same UTC day land on the same row.
	morning := time.Date(2026, 9, 1, 8, 15, 0, 0, time.UTC)
	evening := time.Date(2026, 9, 1, 21, 45, 0, 0, time.UTC)
	require.NoError(t, repo.AddFocusTime(ctx, u.ID, morning, 30))
	require.NoError(t, repo.AddFocusTime(ctx, u.ID, evening, 30))

	stat, err := repo.GetByUserAndDate(ctx, u.ID, morning)
	require.NoError(t, err)
	require.NotNil(t, stat)
	assert.Equal(t, 60, stat.TotalFocusTime)
}

func TestStatisticRepository_GetByUserAndDateAbsent(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatisticRepository(db)

	stat, err := repo.GetByUserAndDate(context.Background(), 42, time.Now())
	require.NoError(t, err)
	assert.Nil(t, stat)
}

func TestStatisticRepository_GetByUserAndRange(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatisticRepository(db)
	ctx := context.Background()

	u := &models.User{Username: "s3", Email: "s3@e.com", Password: "x"}
	require.NoError(t, db.Create(u).Error)

	base := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.AddFocusTime(ctx, u.ID, base.AddDate(0, 0, i), (i+1)*10))
	}

	stats, err := repo.GetByUserAndRange(ctx, u.ID, base.AddDate(0, 0, 1), base.AddDate(0, 0, 3))
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, 20, stats[0].TotalFocusTime)
	assert.Equal(t, 40, stats[2].TotalFocusTime)
}
