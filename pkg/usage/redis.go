package usage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/csoai/entitlement/pkg/entitlement"
)

// reserveScript increments the account's counter only while it is below the
// limit. ARGV[1] is the limit; -1 means unlimited. Returns -1 when the
// reservation is rejected, the new count otherwise. Running as a script keeps
// read-check-increment atomic on the Redis side.
var reserveScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local limit = tonumber(ARGV[1])
if limit >= 0 and current >= limit then
	return -1
end
return redis.call('INCR', KEYS[1])
`)

// RedisCounter tracks usage of one feature in Redis, one key per account.
// It is the authoritative enforcement point for numeric limits: the
// entitlement package's checks are advisory, Reserve is not.
type RedisCounter struct {
	client  redis.UniversalClient
	feature entitlement.Feature
}

// NewRedisCounter creates a counter for the given feature. Panics if client
// is nil to fail fast during initialization.
func NewRedisCounter(client redis.UniversalClient, f entitlement.Feature) *RedisCounter {
	if client == nil {
		panic("usage: redis client cannot be nil")
	}
	return &RedisCounter{client: client, feature: f}
}

func (c *RedisCounter) key(accountID uuid.UUID) string {
	return fmt.Sprintf("usage:%s:%s", c.feature, accountID)
}

// Counter adapts the counter to the registry's CounterFunc shape.
func (c *RedisCounter) Counter() entitlement.CounterFunc {
	return func(ctx context.Context, accountID uuid.UUID) (int64, error) {
		n, err := c.client.Get(ctx, c.key(accountID)).Int64()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return 0, nil
			}
			return 0, errors.Join(ErrCounterUnavailable, err)
		}
		return n, nil
	}
}

// Reserve atomically increments the account's count while it is below limit.
// Returns the new count, or ErrCapacityExhausted without incrementing when
// the account is at the cap. A limit of entitlement.Unlimited never rejects.
func (c *RedisCounter) Reserve(ctx context.Context, accountID uuid.UUID, limit int64) (int64, error) {
	n, err := reserveScript.Run(ctx, c.client, []string{c.key(accountID)}, limit).Int64()
	if err != nil {
		return 0, errors.Join(ErrCounterUnavailable, err)
	}
	if n < 0 {
		return 0, ErrCapacityExhausted
	}
	return n, nil
}

// Release decrements the count, flooring at zero. Call it when a creation
// fails after a successful reservation.
func (c *RedisCounter) Release(ctx context.Context, accountID uuid.UUID) error {
	key := c.key(accountID)
	n, err := c.client.Decr(ctx, key).Result()
	if err != nil {
		return errors.Join(ErrCounterUnavailable, err)
	}
	if n < 0 {
		// Over-release; clamp back to zero.
		if err := c.client.Set(ctx, key, 0, 0).Err(); err != nil {
			return errors.Join(ErrCounterUnavailable, err)
		}
	}
	return nil
}

// Set overwrites the stored count, used when backfilling from the database.
func (c *RedisCounter) Set(ctx context.Context, accountID uuid.UUID, n int64) error {
	if err := c.client.Set(ctx, c.key(accountID), n, 0).Err(); err != nil {
		return errors.Join(ErrCounterUnavailable, err)
	}
	return nil
}
