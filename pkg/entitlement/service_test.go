package entitlement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csoai/entitlement/pkg/entitlement"
)

func staticCounter(n int64) entitlement.CounterFunc {
	return func(context.Context, uuid.UUID) (int64, error) {
		return n, nil
	}
}

func proResolver(context.Context, uuid.UUID) (entitlement.Tier, error) {
	return entitlement.TierPro, nil
}

func newTestService(t *testing.T, counters entitlement.Registry, resolver entitlement.TierResolver) entitlement.Service {
	t.Helper()
	svc, err := entitlement.NewService(context.Background(), nil, counters, resolver)
	require.NoError(t, err)
	return svc
}

func TestNewService(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		svc, err := entitlement.NewService(context.Background(), nil, nil, nil)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("failing source", func(t *testing.T) {
		t.Parallel()

		src := failingSource{err: errors.New("boom")}
		_, err := entitlement.NewService(context.Background(), src, nil, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, entitlement.ErrFailedToLoadCatalog)
	})

	t.Run("invalid catalog from source", func(t *testing.T) {
		t.Parallel()

		catalog := entitlement.DefaultCatalog()
		delete(catalog, entitlement.TierPro)

		_, err := entitlement.NewService(context.Background(), entitlement.NewInMemSource(catalog), nil, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, entitlement.ErrCatalogNotTotal)
	})
}

func TestService_Tier(t *testing.T) {
	t.Parallel()

	t.Run("context resolver default", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, nil, nil)
		ctx := entitlement.WithTier(context.Background(), entitlement.TierEnterprise)

		assert.Equal(t, entitlement.TierEnterprise, svc.Tier(ctx, uuid.New()))
		assert.Equal(t, entitlement.TierFree, svc.Tier(context.Background(), uuid.New()))
	})

	t.Run("resolver failure defaults to free", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, nil, func(context.Context, uuid.UUID) (entitlement.Tier, error) {
			return "", errors.New("lookup failed")
		})

		assert.Equal(t, entitlement.TierFree, svc.Tier(context.Background(), uuid.New()))
	})
}

func TestService_CanCreate(t *testing.T) {
	t.Parallel()

	t.Run("within limit", func(t *testing.T) {
		t.Parallel()

		counters := entitlement.NewRegistry()
		counters.Register(entitlement.FeatureAISystems, staticCounter(5))
		svc := newTestService(t, counters, proResolver)

		assert.NoError(t, svc.CanCreate(context.Background(), uuid.New(), entitlement.FeatureAISystems))
	})

	t.Run("at limit returns denial with upgrade copy", func(t *testing.T) {
		t.Parallel()

		counters := entitlement.NewRegistry()
		counters.Register(entitlement.FeatureAISystems, staticCounter(25))
		svc := newTestService(t, counters, proResolver)

		err := svc.CanCreate(context.Background(), uuid.New(), entitlement.FeatureAISystems)

		require.Error(t, err)
		assert.ErrorIs(t, err, entitlement.ErrLimitReached)
		denied, ok := entitlement.IsDenied(err)
		require.True(t, ok)
		assert.Equal(t, entitlement.UpgradeMessage(entitlement.FeatureAISystems), denied.Message)
	})

	t.Run("unlimited skips the counter entirely", func(t *testing.T) {
		t.Parallel()

		// No counter registered: unlimited must not need one.
		svc := newTestService(t, nil, func(context.Context, uuid.UUID) (entitlement.Tier, error) {
			return entitlement.TierEnterprise, nil
		})

		assert.NoError(t, svc.CanCreate(context.Background(), uuid.New(), entitlement.FeatureAISystems))
	})

	t.Run("missing counter", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, nil, proResolver)
		err := svc.CanCreate(context.Background(), uuid.New(), entitlement.FeatureAISystems)

		assert.ErrorIs(t, err, entitlement.ErrNoCounterRegistered)
	})

	t.Run("counter failure", func(t *testing.T) {
		t.Parallel()

		counters := entitlement.NewRegistry()
		counters.Register(entitlement.FeatureAISystems, func(context.Context, uuid.UUID) (int64, error) {
			return 0, errors.New("db down")
		})
		svc := newTestService(t, counters, proResolver)

		err := svc.CanCreate(context.Background(), uuid.New(), entitlement.FeatureAISystems)
		assert.ErrorIs(t, err, entitlement.ErrFailedToCountUsage)
	})
}

func TestService_GetUsage(t *testing.T) {
	t.Parallel()

	t.Run("returns usage and limit", func(t *testing.T) {
		t.Parallel()

		counters := entitlement.NewRegistry()
		counters.Register(entitlement.FeatureTeamMembers, staticCounter(4))
		svc := newTestService(t, counters, proResolver)

		used, limit, err := svc.GetUsage(context.Background(), uuid.New(), entitlement.FeatureTeamMembers)

		require.NoError(t, err)
		assert.EqualValues(t, 4, used)
		assert.EqualValues(t, 5, limit)
	})

	t.Run("non-numeric feature", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, nil, proResolver)
		_, _, err := svc.GetUsage(context.Background(), uuid.New(), entitlement.FeatureAPIAccess)

		assert.ErrorIs(t, err, entitlement.ErrNonNumericFeatureCounted)
	})

	t.Run("safe variant swallows errors", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, nil, proResolver)
		used, limit := svc.GetUsageSafe(context.Background(), uuid.New(), entitlement.FeatureAISystems)

		assert.Zero(t, used)
		assert.Zero(t, limit)
	})
}

func TestService_GetAllUsage(t *testing.T) {
	t.Parallel()

	counters := entitlement.NewRegistry()
	counters.Register(entitlement.FeatureAISystems, staticCounter(7))
	svc := newTestService(t, counters, proResolver)

	usage, err := svc.GetAllUsage(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, entitlement.UsageInfo{Current: 7, Limit: 25}, usage[entitlement.FeatureAISystems])
	// No counter registered: usage stays zero, limit still reported.
	assert.Equal(t, entitlement.UsageInfo{Current: 0, Limit: 5}, usage[entitlement.FeatureTeamMembers])
}

func TestService_UsagePercentage(t *testing.T) {
	t.Parallel()

	t.Run("partial usage", func(t *testing.T) {
		t.Parallel()

		counters := entitlement.NewRegistry()
		counters.Register(entitlement.FeatureAISystems, staticCounter(5))
		svc := newTestService(t, counters, proResolver)

		assert.Equal(t, 20, svc.UsagePercentage(context.Background(), uuid.New(), entitlement.FeatureAISystems))
	})

	t.Run("unlimited reports -1", func(t *testing.T) {
		t.Parallel()

		counters := entitlement.NewRegistry()
		counters.Register(entitlement.FeatureAISystems, staticCounter(5))
		svc := newTestService(t, counters, func(context.Context, uuid.UUID) (entitlement.Tier, error) {
			return entitlement.TierEnterprise, nil
		})

		assert.Equal(t, -1, svc.UsagePercentage(context.Background(), uuid.New(), entitlement.FeatureAISystems))
	})

	t.Run("zero limit reports full", func(t *testing.T) {
		t.Parallel()

		counters := entitlement.NewRegistry()
		counters.Register(entitlement.FeatureAPIKeys, staticCounter(0))
		svc := newTestService(t, counters, nil) // defaults to free; free has 0 API keys

		assert.Equal(t, 100, svc.UsagePercentage(context.Background(), uuid.New(), entitlement.FeatureAPIKeys))
	})

	t.Run("capped at 100", func(t *testing.T) {
		t.Parallel()

		counters := entitlement.NewRegistry()
		counters.Register(entitlement.FeatureAISystems, staticCounter(40))
		svc := newTestService(t, counters, proResolver)

		assert.Equal(t, 100, svc.UsagePercentage(context.Background(), uuid.New(), entitlement.FeatureAISystems))
	})
}

// failingSource always errors on Load.
type failingSource struct {
	err error
}

func (s failingSource) Load(context.Context) (entitlement.Catalog, error) {
	return nil, s.err
}
