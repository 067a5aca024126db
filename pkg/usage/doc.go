// Package usage provides counter implementations for numeric entitlement
// limits: how many AI systems, API keys, or team members an account currently
// has.
//
// Counters feed the advisory checks in the entitlement package. Because a
// permission check and the subsequent create are two separate steps, advisory
// checks alone allow concurrent requests to overshoot a cap. RedisCounter
// closes that race at the storage layer: Reserve atomically increments the
// count only while it is below the limit, so at most limit reservations ever
// succeed regardless of concurrency.
//
//	counter := usage.NewRedisCounter(client, entitlement.FeatureAISystems)
//	registry.Register(entitlement.FeatureAISystems, counter.Counter())
//
//	// at creation time, after the advisory check passed:
//	if _, err := counter.Reserve(ctx, accountID, limit); err != nil {
//	    return err // capacity exhausted, roll back nothing
//	}
package usage
