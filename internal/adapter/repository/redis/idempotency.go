package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dentora/clinicledger/internal/usecase"
)

// idempotencyPrefix namespaces idempotency keys so they never collide
// with cached balances in the same Redis instance.
const idempotencyPrefix = "idempotency:"

// IdempotencyStore implements usecase.IdempotencyStore on Redis. It backs
// the replay protection for payment submissions: retried requests with
// the same key get the first response instead of a duplicate payment.
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// CheckAndSet returns the stored response for key if one exists. Otherwise
// it claims the key: with a response, the response is stored directly; with
// a nil response, an in-flight placeholder is written via SETNX so that a
// concurrent retry of the same request observes the claim.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := idempotencyPrefix + key

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if err == nil {
		return true, existing, nil
	}
	if !errors.Is(err, redis.Nil) {
		return false, nil, err
	}

	if response != nil {
		if err := s.client.Set(ctx, fullKey, response, ttl).Err(); err != nil {
			return false, nil, err
		}
		return false, nil, nil
	}

	claimed, err := s.client.SetNX(ctx, fullKey, usecase.IdempotencyInFlight, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if !claimed {
		// Lost the race; surface whatever the winner wrote.
		existing, err := s.client.Get(ctx, fullKey).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return false, nil, err
		}
		return true, existing, nil
	}

	return false, nil, nil
}

// Update replaces the in-flight placeholder with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, idempotencyPrefix+key, response, ttl).Err()
}
