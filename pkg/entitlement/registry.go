package entitlement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CounterFunc returns the current usage of a numeric feature for an account.
// Should be fast: cache or aggregate at repository level.
type CounterFunc func(ctx context.Context, accountID uuid.UUID) (int64, error)

// Registry maps a numeric feature to its CounterFunc.
// Not thread-safe: register all counters at startup only.
type Registry map[Feature]CounterFunc

// NewRegistry returns a new, empty Registry.
func NewRegistry() Registry {
	return make(Registry)
}

// Register sets or replaces the CounterFunc for the given feature. Panics if
// fn is nil.
func (r Registry) Register(f Feature, fn CounterFunc) {
	if fn == nil {
		panic(fmt.Sprintf("entitlement: CounterFunc for feature %q cannot be nil", f))
	}
	r[f] = fn
}
