package entitlement_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csoai/entitlement/pkg/entitlement"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithTier(tier entitlement.Tier) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return req.WithContext(entitlement.WithTier(req.Context(), tier))
}

func decodeDenied(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestRequireFeature(t *testing.T) {
	t.Parallel()

	t.Run("denied tier gets upgrade_required", func(t *testing.T) {
		t.Parallel()

		guard := newTestGuard(t)
		handler := entitlement.RequireFeature(guard, entitlement.FeatureAPIAccess, nil)(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithTier(entitlement.TierFree))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		body := decodeDenied(t, rec)
		assert.Equal(t, "upgrade_required", body["error"])
		assert.Equal(t, entitlement.UpgradeMessage(entitlement.FeatureAPIAccess), body["message"])
		assert.Equal(t, string(entitlement.FeatureAPIAccess), body["feature"])
	})

	t.Run("entitled tier passes through", func(t *testing.T) {
		t.Parallel()

		guard := newTestGuard(t)
		handler := entitlement.RequireFeature(guard, entitlement.FeatureAPIAccess, nil)(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithTier(entitlement.TierPro))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing tier in context is treated as free", func(t *testing.T) {
		t.Parallel()

		guard := newTestGuard(t)
		handler := entitlement.RequireFeature(guard, entitlement.FeatureAPIAccess, nil)(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRequireOperation(t *testing.T) {
	t.Parallel()

	guard := newTestGuard(t)
	handler := entitlement.RequireOperation(guard, entitlement.OpSubmitCouncilReview, nil)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithTier(entitlement.TierPro))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithTier(entitlement.TierEnterprise))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireCapacity(t *testing.T) {
	t.Parallel()

	accountID := uuid.New()
	account := func(*http.Request) (uuid.UUID, bool) { return accountID, true }

	t.Run("capacity available", func(t *testing.T) {
		t.Parallel()

		guard := newTestGuard(t)
		handler := entitlement.RequireCapacity(guard, entitlement.FeatureAISystems, staticCounter(2), account, nil)(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithTier(entitlement.TierFree))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("at capacity", func(t *testing.T) {
		t.Parallel()

		guard := newTestGuard(t)
		handler := entitlement.RequireCapacity(guard, entitlement.FeatureAISystems, staticCounter(3), account, nil)(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithTier(entitlement.TierFree))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "upgrade_required", decodeDenied(t, rec)["error"])
	})

	t.Run("no authenticated account", func(t *testing.T) {
		t.Parallel()

		guard := newTestGuard(t)
		noAccount := func(*http.Request) (uuid.UUID, bool) { return uuid.UUID{}, false }
		handler := entitlement.RequireCapacity(guard, entitlement.FeatureAISystems, staticCounter(0), noAccount, nil)(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithTier(entitlement.TierFree))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("counter failure", func(t *testing.T) {
		t.Parallel()

		guard := newTestGuard(t)
		failing := func(context.Context, uuid.UUID) (int64, error) {
			return 0, assert.AnError
		}
		handler := entitlement.RequireCapacity(guard, entitlement.FeatureAISystems, failing, account, nil)(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithTier(entitlement.TierFree))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestTierMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("stashes resolved tier in context", func(t *testing.T) {
		t.Parallel()

		guard := newTestGuard(t)
		var seen entitlement.Tier
		inner := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen, _ = entitlement.TierFromContext(r.Context())
		})

		user := func(*http.Request) entitlement.TierSource { return &testUser{tier: "pro"} }
		handler := entitlement.TierMiddleware(guard, user)(inner)
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, entitlement.TierPro, seen)
	})

	t.Run("anonymous request resolves to free", func(t *testing.T) {
		t.Parallel()

		guard := newTestGuard(t)
		var seen entitlement.Tier
		inner := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen, _ = entitlement.TierFromContext(r.Context())
		})

		user := func(*http.Request) entitlement.TierSource { return nil }
		handler := entitlement.TierMiddleware(guard, user)(inner)
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, entitlement.TierFree, seen)
	})
}
