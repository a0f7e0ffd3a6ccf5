package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio-backend/internal/portfolio"
)

const keyPrefix = "portfolio:session:"

// RedisStore implements Store over Redis with a per-entry TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to the given Redis URL and verifies connectivity.
func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// SaveRecord stores the record as JSON under the session key.
func (s *RedisStore) SaveRecord(ctx context.Context, sessionID string, rec portfolio.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return s.client.Set(ctx, keyPrefix+sessionID, data, s.ttl).Err()
}

// GetRecord fetches the record for a session; the bool reports presence.
func (s *RedisStore) GetRecord(ctx context.Context, sessionID string) (portfolio.Record, bool, error) {
	data, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return portfolio.Record{}, false, nil
		}
		return portfolio.Record{}, false, err
	}

	var rec portfolio.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return portfolio.Record{}, false, fmt.Errorf("unmarshal record: %w", err)
	}
	rec.Normalize()
	return rec, true, nil
}

// DeleteRecord drops the record for a session.
func (s *RedisStore) DeleteRecord(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, keyPrefix+sessionID).Err()
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
