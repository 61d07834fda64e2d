package redis

import (
	"context"
	"fmt"
	"time"

	"jobmatch-engine/internal/models"
)

const (
	MatchResultsCacheTTL = 5 * time.Minute
	RefreshLockTTL       = 2 * time.Minute
	NotifyRateWindowTTL  = 1 * time.Hour
)

func MatchResultsKey(candidateID int64) string {
	return fmt.Sprintf("matches:candidate:%d", candidateID)
}

func RefreshLockKey(candidateID int64) string {
	return fmt.Sprintf("refresh:lock:%d", candidateID)
}

func NotifyRateKey(candidateID int64) string {
	return fmt.Sprintf("notify:rate:%d", candidateID)
}

// GetMatchResults loads the candidate's cached top matches; an error means
// cache miss or unavailability and callers fall through to storage.
func (c *Cache) GetMatchResults(ctx context.Context, candidateID int64) ([]models.MatchRecord, error) {
	var matches []models.MatchRecord
	if err := c.Get(ctx, MatchResultsKey(candidateID), &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (c *Cache) SetMatchResults(ctx context.Context, candidateID int64, matches []models.MatchRecord) error {
	return c.Set(ctx, MatchResultsKey(candidateID), matches, MatchResultsCacheTTL)
}

func (c *Cache) InvalidateMatchResults(ctx context.Context, candidateID int64) error {
	return c.Delete(ctx, MatchResultsKey(candidateID))
}

// AcquireRefreshLock serializes concurrent refresh triggers per candidate.
// The lock expires on its own so a crashed run never wedges the candidate.
func (c *Cache) AcquireRefreshLock(ctx context.Context, candidateID int64) (bool, error) {
	return c.SetNX(ctx, RefreshLockKey(candidateID), "1", RefreshLockTTL)
}

func (c *Cache) ReleaseRefreshLock(ctx context.Context, candidateID int64) {
	_ = c.Delete(ctx, RefreshLockKey(candidateID))
}

func (c *Cache) IncrementNotifyRate(ctx context.Context, candidateID int64) (int64, error) {
	return c.IncrementWithExpiry(ctx, NotifyRateKey(candidateID), NotifyRateWindowTTL)
}
