package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	platformredis "campusdesk/internal/platform/redis"
	"campusdesk/pkg/platform/sentinel"
)

const keyPrefix = "otp:challenge:"

// RedisStore keeps challenges in Redis with a TTL matching the challenge
// expiry, so stale codes vanish without a sweeper.
type RedisStore struct {
	client *platformredis.Client
	ttl    time.Duration
}

func NewRedisStore(client *platformredis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, challenge Challenge) error {
	payload, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+challenge.StudentID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store challenge: %w", err)
	}
	return nil
}

func (s *RedisStore) Take(ctx context.Context, studentID string) (Challenge, error) {
	payload, err := s.client.GetDel(ctx, keyPrefix+studentID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Challenge{}, sentinel.ErrNotFound
		}
		return Challenge{}, fmt.Errorf("load challenge: %w", err)
	}

	var challenge Challenge
	if err := json.Unmarshal(payload, &challenge); err != nil {
		return Challenge{}, fmt.Errorf("decode challenge: %w", err)
	}
	return challenge, nil
}
