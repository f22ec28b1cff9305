// Package cache keeps computed session rankings in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gym-scoring-system/services"

	"github.com/redis/go-redis/v9"
)

// RedisRankingCache stores rankings as JSON under services.RankingKey.
type RedisRankingCache struct {
	RDB *redis.Client
	TTL time.Duration
}

var _ services.RankingCache = (*RedisRankingCache)(nil)

// NewRedisRankingCache connects to addr and verifies the connection.
func NewRedisRankingCache(ctx context.Context, addr, password string, ttl time.Duration) (*RedisRankingCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
		PoolSize: 20,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	log.Printf("✅ [CACHE] Redis connection established (%s, ttl %s)", addr, ttl)
	return &RedisRankingCache{RDB: rdb, TTL: ttl}, nil
}

func (c *RedisRankingCache) GetRanking(ctx context.Context, key string) ([]services.RankedParticipant, bool, error) {
	val, err := c.RDB.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	rows, err := decodeRows(val)
	if err != nil {
		return nil, false, err
	}
	return rows, true, nil
}

func (c *RedisRankingCache) SetRanking(ctx context.Context, key string, rows []services.RankedParticipant) error {
	data, err := encodeRows(rows)
	if err != nil {
		return err
	}
	return c.RDB.Set(ctx, key, data, c.TTL).Err()
}

// InvalidateSession drops every ranking cached for the session.
func (c *RedisRankingCache) InvalidateSession(ctx context.Context, sessionID string) error {
	pattern := services.RankingKey(sessionID, "*")
	iter := c.RDB.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.RDB.Del(ctx, keys...).Err()
}

func (c *RedisRankingCache) Close() error {
	return c.RDB.Close()
}

// Noop never stores anything. It stands in when REDIS_ADDR is unset.
type Noop struct{}

var _ services.RankingCache = Noop{}

func (Noop) GetRanking(context.Context, string) ([]services.RankedParticipant, bool, error) {
	return nil, false, nil
}

func (Noop) SetRanking(context.Context, string, []services.RankedParticipant) error { return nil }

func (Noop) InvalidateSession(context.Context, string) error { return nil }

func encodeRows(rows []services.RankedParticipant) ([]byte, error) {
	if rows == nil {
		rows = []services.RankedParticipant{}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("encode ranking: %w", err)
	}
	return data, nil
}

func decodeRows(data []byte) ([]services.RankedParticipant, error) {
	var rows []services.RankedParticipant
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode ranking: %w", err)
	}
	return rows, nil
}
