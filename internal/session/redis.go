package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/couchcryptid/calm-guard-drill/internal/domain"
)

const redisKeyPrefix = "quiz_session:"

// RedisStore keeps sessions as JSON strings with a TTL refreshed on every
// write. CompareAndSwap runs under WATCH so a concurrent writer aborts the
// transaction instead of overwriting it.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore on an existing client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, id string) (domain.QuizSession, error) {
	data, err := r.client.Get(ctx, redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.QuizSession{}, ErrSessionNotFound
		}
		return domain.QuizSession{}, fmt.Errorf("get session: %w", err)
	}
	return decodeSession(data)
}

func (r *RedisStore) Create(ctx context.Context, s domain.QuizSession) (domain.QuizSession, error) {
	s.Version = 1
	data, err := json.Marshal(s)
	if err != nil {
		return domain.QuizSession{}, fmt.Errorf("encode session: %w", err)
	}
	ok, err := r.client.SetNX(ctx, redisKey(s.ID), data, r.ttl).Result()
	if err != nil {
		return domain.QuizSession{}, fmt.Errorf("create session: %w", err)
	}
	if !ok {
		return domain.QuizSession{}, ErrSessionExists
	}
	return s, nil
}

func (r *RedisStore) CompareAndSwap(ctx context.Context, s domain.QuizSession) (domain.QuizSession, error) {
	key := redisKey(s.ID)
	next := s
	next.Version++

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrSessionNotFound
			}
			return err
		}
		current, err := decodeSession(data)
		if err != nil {
			return err
		}
		if current.Version != s.Version {
			return ErrVersionConflict
		}

		payload, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		return next, nil
	case errors.Is(err, redis.TxFailedErr):
		return domain.QuizSession{}, ErrVersionConflict
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrVersionConflict):
		return domain.QuizSession{}, err
	default:
		return domain.QuizSession{}, fmt.Errorf("swap session: %w", err)
	}
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// CheckReadiness pings Redis.
func (r *RedisStore) CheckReadiness(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func decodeSession(data []byte) (domain.QuizSession, error) {
	var s domain.QuizSession
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.QuizSession{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}
