package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/mealfinder/backend/internal/types"
)

// commitScript stores ARGV[2] under KEYS[2] only while KEYS[1] still holds
// the sequence number ARGV[1].
var commitScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
	redis.call("PEXPIRE", KEYS[1], ARGV[3])
	return 1
end
return 0
`)

// RedisResultStore keeps result sets in Redis so that they are shared
// between replicas.
type RedisResultStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisResultStore creates a new RedisResultStore instance
func NewRedisResultStore(client *redis.Client, ttl time.Duration) *RedisResultStore {
	return &RedisResultStore{
		redis: client,
		ttl:   ttl,
	}
}

func seqKey(sessionID string) string {
	return fmt.Sprintf("mealfinder:session:%s:seq", sessionID)
}

func resultsKey(sessionID string) string {
	return fmt.Sprintf("mealfinder:session:%s:results", sessionID)
}

func (s *RedisResultStore) Begin(ctx context.Context, sessionID string) (uint64, error) {
	key := seqKey(sessionID)
	pipe := s.redis.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to issue search sequence: %w", err)
	}
	return uint64(incr.Val()), nil
}

func (s *RedisResultStore) Commit(ctx context.Context, set *types.ResultSet) (bool, error) {
	data, err := json.Marshal(set)
	if err != nil {
		return false, fmt.Errorf("failed to marshal result set: %w", err)
	}

	keys := []string{seqKey(set.SessionID), resultsKey(set.SessionID)}
	replaced, err := commitScript.Run(ctx, s.redis, keys, set.Seq, data, s.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("failed to save result set to Redis: %w", err)
	}
	return replaced == 1, nil
}

// Latest returns the session's result set and extends the session TTL.
func (s *RedisResultStore) Latest(ctx context.Context, sessionID string) (*types.ResultSet, error) {
	pipe := s.redis.TxPipeline()
	get := pipe.GetEx(ctx, resultsKey(sessionID), s.ttl)
	pipe.PExpire(ctx, seqKey(sessionID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get result set from Redis: %w", err)
	}
	data, err := get.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get result set from Redis: %w", err)
	}

	var set types.ResultSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result set: %w", err)
	}
	return &set, nil
}
