package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// redisStore keeps dialogue state as a redis hash per user, mirroring the
// two-column step/payload layout of the database backend so a corrupt payload
// never takes the step down with it.
type redisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisStore creates a redis-backed dialogue state store. A zero ttl means
// sessions never expire by time, matching the database backend.
func NewRedisStore(client *redis.Client, keyPrefix string, ttl time.Duration) Store {
	if keyPrefix == "" {
		keyPrefix = "dialog:"
	}
	return &redisStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (s *redisStore) key(userID string) string {
	return s.keyPrefix + userID
}

func (s *redisStore) Get(ctx context.Context, userID string) (*Session, error) {
	fields, err := s.client.HGetAll(ctx, s.key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("get conversation state for %s: %w", userID, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	return &Session{
		UserID:  userID,
		Step:    Step(fields["step"]),
		Payload: decodePayload(fields["payload"]),
	}, nil
}

func (s *redisStore) Upsert(ctx context.Context, userID string, step Step, payload Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload for %s: %w", userID, err)
	}

	key := s.key(userID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, "step", string(step), "payload", string(data))
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("upsert conversation state for %s: %w", userID, err)
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("clear conversation state for %s: %w", userID, err)
	}
	return nil
}
