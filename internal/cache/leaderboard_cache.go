package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"typespeed/internal/model"
)

// LeaderboardCache keeps the per-duration top list in Redis.
type LeaderboardCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewLeaderboardCache(client *redisv9.Client, ttl time.Duration) *LeaderboardCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &LeaderboardCache{
		client: client,
		ttl:    ttl,
	}
}

// GetTop reports a miss with ok=false and a nil error.
func (c *LeaderboardCache) GetTop(ctx context.Context, duration int) ([]model.ScoreEntry, bool, error) {
	raw, err := c.client.Get(ctx, c.topKey(duration)).Bytes()
	if errors.Is(err, redisv9.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get leaderboard failed: %w", err)
	}

	var entries []model.ScoreEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached leaderboard failed: %w", err)
	}
	return entries, true, nil
}

func (c *LeaderboardCache) SetTop(ctx context.Context, duration int, entries []model.ScoreEntry) error {
	if entries == nil {
		entries = []model.ScoreEntry{}
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal leaderboard cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.topKey(duration), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set leaderboard failed: %w", err)
	}
	return nil
}

func (c *LeaderboardCache) InvalidateTop(ctx context.Context, duration int) error {
	if err := c.client.Del(ctx, c.topKey(duration)).Err(); err != nil {
		return fmt.Errorf("redis delete leaderboard failed: %w", err)
	}
	return nil
}

func (c *LeaderboardCache) topKey(duration int) string {
	return fmt.Sprintf("typespeed:leaderboard:top:%d", duration)
}
