package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"
	"main/utils"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard:latest"

// LeaderboardCache keeps the ranked board in Redis so every request does not
// re-rank all users. The materializer invalidates it after each write.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

var GlobalLeaderboardCache *LeaderboardCache

// NewLeaderboardCache creates and connects a new leaderboard cache
func NewLeaderboardCache(redisURL string) (*LeaderboardCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &LeaderboardCache{
		client: client,
		ttl:    utils.GetEnvAsDuration("LEADERBOARD_CACHE_TTL", time.Minute),
	}, nil
}

// GetLeaderboard retrieves the cached board; (nil, nil) on a miss
func (lc *LeaderboardCache) GetLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	data, err := lc.client.Get(ctx, leaderboardKey).Bytes()
	if err == redis.Nil {
		utils.TrackCacheLookup("miss")
		return nil, nil
	}
	if err != nil {
		utils.TrackCacheLookup("error")
		return nil, fmt.Errorf("failed to get leaderboard from cache: %v", err)
	}

	var entries []model.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		utils.TrackCacheLookup("error")
		return nil, fmt.Errorf("failed to unmarshal leaderboard: %v", err)
	}

	utils.TrackCacheLookup("hit")
	return entries, nil
}

// SetLeaderboard caches the ranked board with the configured TTL
func (lc *LeaderboardCache) SetLeaderboard(ctx context.Context, entries []model.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %v", err)
	}

	if err := lc.client.Set(ctx, leaderboardKey, data, lc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache leaderboard: %v", err)
	}
	return nil
}

// Invalidate drops the cached board after a snapshot materialization
func (lc *LeaderboardCache) Invalidate(ctx context.Context) error {
	if err := lc.client.Del(ctx, leaderboardKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate leaderboard cache: %v", err)
	}
	return nil
}

func (lc *LeaderboardCache) IsConnected() bool {
	if lc == nil || lc.client == nil {
		return false
	}
	ctx := context.Background()
	return lc.client.Ping(ctx).Err() == nil
}

// Close closes the Redis connection
func (lc *LeaderboardCache) Close() error {
	return lc.client.Close()
}
