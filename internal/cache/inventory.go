package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix       = "user:%d"
	DailyStatsKeyPrefix = "stats:%d:%s"
)

const (
	UserTTL       = 5 * time.Minute
	DailyStatsTTL = time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func DailyStatsKey(userID uint, day time.Time) string {
	return fmt.Sprintf(DailyStatsKeyPrefix, userID, day.UTC().Format("2006-01-02"))
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateDailyStats(ctx context.Context, userID uint, day time.Time) {
	Invalidate(ctx, DailyStatsKey(userID, day))
}
