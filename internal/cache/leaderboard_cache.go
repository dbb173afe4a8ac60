package cache

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// LeaderboardCache handles Redis ZSET operations for the score leaderboard
type LeaderboardCache interface {
	Record(ctx context.Context, entry LeaderboardEntry) error
	GetTop(ctx context.Context, category string, limit int) ([]LeaderboardEntry, error)
}

// LeaderboardEntry is a single leaderboard row
type LeaderboardEntry struct {
	ScoreID    string `json:"scoreId"`
	Name       string `json:"name"`
	Score      int    `json:"score"`
	Percentage int    `json:"percentage"`
	Category   string `json:"category,omitempty"`
	Rank       int    `json:"rank,omitempty"`
}

type leaderboardCache struct {
	client *redis.Client
}

// NewLeaderboardCache creates a new leaderboard cache
func NewLeaderboardCache(client *redis.Client) LeaderboardCache {
	return &leaderboardCache{
		client: client,
	}
}

func (c *leaderboardCache) key(category string) string {
	if category == "" {
		return "lb:global"
	}
	return "lb:cat:" + category
}

// Record adds the entry to the global board and, when categorized, to the
// per-category board. Members are JSON blobs keyed by score ID so repeat
// submissions from one player stay distinct.
func (c *leaderboardCache) Record(ctx context.Context, entry LeaderboardEntry) error {
	entry.Rank = 0
	member, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	z := redis.Z{Score: float64(entry.Score), Member: string(member)}
	if err := c.client.ZAdd(ctx, c.key(""), z).Err(); err != nil {
		return err
	}
	if entry.Category != "" {
		if err := c.client.ZAdd(ctx, c.key(entry.Category), z).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (c *leaderboardCache) GetTop(ctx context.Context, category string, limit int) ([]LeaderboardEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(category), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, z := range results {
		var entry LeaderboardEntry
		member, _ := z.Member.(string)
		if err := json.Unmarshal([]byte(member), &entry); err != nil {
			continue
		}
		entry.Rank = i + 1
		entries = append(entries, entry)
	}
	return entries, nil
}
