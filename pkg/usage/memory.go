package usage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/csoai/entitlement/pkg/entitlement"
)

// MemoryCounter is an in-memory counter for tests and single-process
// deployments. Safe for concurrent use.
type MemoryCounter struct {
	mu     sync.RWMutex
	counts map[uuid.UUID]int64
}

// NewMemoryCounter returns an empty in-memory counter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{counts: make(map[uuid.UUID]int64)}
}

// Counter adapts the counter to the registry's CounterFunc shape.
func (c *MemoryCounter) Counter() entitlement.CounterFunc {
	return func(_ context.Context, accountID uuid.UUID) (int64, error) {
		c.mu.RLock()
		defer c.mu.RUnlock()
		return c.counts[accountID], nil
	}
}

// Set overwrites the count for an account.
func (c *MemoryCounter) Set(accountID uuid.UUID, n int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[accountID] = n
}

// Reserve atomically increments the count while it is below limit. Returns
// the new count, or ErrCapacityExhausted without incrementing when the
// account is at the cap. A limit of entitlement.Unlimited never rejects.
func (c *MemoryCounter) Reserve(_ context.Context, accountID uuid.UUID, limit int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.counts[accountID]
	if limit != entitlement.Unlimited && current >= limit {
		return current, ErrCapacityExhausted
	}
	c.counts[accountID] = current + 1
	return current + 1, nil
}

// Release decrements the count, flooring at zero. Call it when a creation
// fails after a successful reservation.
func (c *MemoryCounter) Release(_ context.Context, accountID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts[accountID] > 0 {
		c.counts[accountID]--
	}
}
