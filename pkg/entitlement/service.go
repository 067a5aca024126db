package entitlement

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Service answers entitlement questions for concrete accounts, combining a
// loaded catalog with registered usage counters. It is the server-side
// companion to the pure query functions: same semantics, plus usage lookup.
type Service interface {
	// HasFeature reports whether the account's tier enables a feature.
	HasFeature(ctx context.Context, accountID uuid.UUID, f Feature) bool

	// CanCreate checks whether one more unit of a numeric feature fits the
	// account's cap. Advisory only: see package doc for the check-then-act
	// caveat.
	CanCreate(ctx context.Context, accountID uuid.UUID, f Feature) error

	// GetUsage returns current usage and limit for a numeric feature.
	GetUsage(ctx context.Context, accountID uuid.UUID, f Feature) (used, limit int64, err error)

	// GetUsageSafe is a convenience wrapper for dashboards: zero values on error.
	GetUsageSafe(ctx context.Context, accountID uuid.UUID, f Feature) (used, limit int64)

	// GetAllUsage returns usage info for every numeric feature.
	GetAllUsage(ctx context.Context, accountID uuid.UUID) (map[Feature]UsageInfo, error)

	// UsagePercentage returns usage as a percentage (0-100, or -1 for unlimited).
	UsagePercentage(ctx context.Context, accountID uuid.UUID, f Feature) int

	// Tier resolves the account's tier.
	Tier(ctx context.Context, accountID uuid.UUID) Tier
}

// TierResolver resolves the subscription tier for an account. Resolution
// failures must surface as TierFree, never as elevated access.
type TierResolver func(ctx context.Context, accountID uuid.UUID) (Tier, error)

// ContextTierResolverFunc is the default resolver: takes the tier stashed in
// the request context by upstream auth middleware, free when absent.
func ContextTierResolverFunc(ctx context.Context, _ uuid.UUID) (Tier, error) {
	return ContextTierResolver(ctx), nil
}

type service struct {
	// Immutable after initialization; thread-safety relies on no runtime
	// modification of either map.
	catalog  Catalog
	counters Registry
	resolver TierResolver
}

// NewService creates a Service from a catalog Source and a counter Registry.
// The catalog is loaded once and validated; a nil source uses the built-in
// default, a nil resolver uses context-based resolution.
func NewService(ctx context.Context, src Source, counters Registry, resolver TierResolver) (Service, error) {
	if src == nil {
		src = NewInMemSource(nil)
	}

	catalog, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	if counters == nil {
		counters = NewRegistry()
	}
	if resolver == nil {
		resolver = ContextTierResolverFunc
	}

	return &service{
		catalog:  catalog,
		counters: counters,
		resolver: resolver,
	}, nil
}

func (s *service) Tier(ctx context.Context, accountID uuid.UUID) Tier {
	tier, err := s.resolver(ctx, accountID)
	if err != nil || !tier.Valid() {
		return TierFree
	}
	return tier
}

func (s *service) HasFeature(ctx context.Context, accountID uuid.UUID, f Feature) bool {
	return s.catalog.HasFeature(s.Tier(ctx, accountID), f)
}

func (s *service) CanCreate(ctx context.Context, accountID uuid.UUID, f Feature) error {
	tier := s.Tier(ctx, accountID)

	limit := s.catalog.GetLimit(tier, f)
	if limit == Unlimited {
		return nil
	}

	counter, exists := s.counters[f]
	if !exists {
		return ErrNoCounterRegistered
	}

	current, err := counter(ctx, accountID)
	if err != nil {
		return errors.Join(ErrFailedToCountUsage, err)
	}

	if current >= limit {
		return newDenied(tier, f, ErrLimitReached, UpgradeMessage(f))
	}
	return nil
}

func (s *service) GetUsage(ctx context.Context, accountID uuid.UUID, f Feature) (int64, int64, error) {
	tier := s.Tier(ctx, accountID)

	if _, ok := s.catalog.Permissions(tier).value(f).(int64); !ok {
		return 0, 0, ErrNonNumericFeatureCounted
	}

	counter, exists := s.counters[f]
	if !exists {
		return 0, 0, ErrNoCounterRegistered
	}

	current, err := counter(ctx, accountID)
	if err != nil {
		return 0, 0, errors.Join(ErrFailedToCountUsage, err)
	}

	return current, s.catalog.GetLimit(tier, f), nil
}

func (s *service) GetUsageSafe(ctx context.Context, accountID uuid.UUID, f Feature) (int64, int64) {
	used, limit, _ := s.GetUsage(ctx, accountID, f)
	return used, limit
}

func (s *service) GetAllUsage(ctx context.Context, accountID uuid.UUID) (map[Feature]UsageInfo, error) {
	tier := s.Tier(ctx, accountID)

	result := make(map[Feature]UsageInfo, len(numericFeatures))
	for _, f := range numericFeatures {
		info := UsageInfo{Limit: s.catalog.GetLimit(tier, f)}

		// Counter errors leave usage at 0 rather than failing the dashboard.
		if counter, exists := s.counters[f]; exists {
			if current, err := counter(ctx, accountID); err == nil {
				info.Current = current
			}
		}
		result[f] = info
	}
	return result, nil
}

func (s *service) UsagePercentage(ctx context.Context, accountID uuid.UUID, f Feature) int {
	used, limit, err := s.GetUsage(ctx, accountID, f)
	if err != nil {
		return 0
	}

	if limit == Unlimited {
		return -1
	}
	if limit == 0 {
		return 100
	}
	return min(int((used*100)/limit), 100)
}
