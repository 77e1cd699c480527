package rate

import (
	"context"
	"fmt"
	"math"
	"time"
)

const likeWindow = time.Minute

// WindowStore counts events in a fixed expiring window and reports the
// remaining window TTL.
type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Limiter throttles like actions per user per minute.
type Limiter struct {
	store     WindowStore
	perMinute int
}

func NewLimiter(store WindowStore, perMinute int) *Limiter {
	if perMinute < 0 {
		perMinute = 0
	}
	return &Limiter{
		store:     store,
		perMinute: perMinute,
	}
}

// AllowLike records one like attempt for userID. When the limit is
// exceeded it returns allowed=false and the seconds until the window
// resets. A zero per-minute limit disables throttling.
func (l *Limiter) AllowLike(ctx context.Context, userID int) (retryAfterSec int64, allowed bool, err error) {
	if userID <= 0 {
		return 0, false, fmt.Errorf("invalid user id")
	}
	if l.perMinute == 0 {
		return 0, true, nil
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}

	count, ttl, err := l.store.IncrementWindow(ctx, likeKey(userID), likeWindow)
	if err != nil {
		return 0, false, err
	}
	if count > int64(l.perMinute) {
		return ceilSeconds(ttl), false, nil
	}
	return 0, true, nil
}

func likeKey(userID int) string {
	return fmt.Sprintf("rate:like:%d", userID)
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 1
	}
	return int64(math.Ceil(d.Seconds()))
}
