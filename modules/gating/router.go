package gating

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/csoai/entitlement/pkg/entitlement"
)

// RouterOptions configures the gating module router.
type RouterOptions struct {
	// Guard performs enforcement; required.
	Guard *entitlement.Guard
	// Service answers usage queries; optional, /usage returns 404 without it.
	Service entitlement.Service
	// User resolves the authenticated user from a request. Nil users resolve
	// to the free tier, matching the rest of the entitlement model.
	User func(r *http.Request) entitlement.TierSource
	// Account resolves the acting account ID for usage queries.
	Account func(r *http.Request) (uuid.UUID, bool)
}

// Router builds the entitlement query surface consumed by the dashboard UI:
//
//	GET /gates           all feature gates for the current user
//	GET /gates/{feature} one feature's gating decision
//	GET /usage           current usage vs. limits for numeric features
//
// Mount it under an authenticated route group:
//
//	r.Mount("/entitlements", gating.Router(gating.RouterOptions{
//	    Guard:   guard,
//	    Service: svc,
//	    User:    userFromRequest,
//	    Account: accountFromRequest,
//	}))
func Router(opts RouterOptions) chi.Router {
	if opts.Guard == nil {
		panic("gating: Guard is required")
	}

	r := chi.NewRouter()
	r.Use(entitlement.TierMiddleware(opts.Guard, userResolver(opts)))

	r.Get("/gates", handleGates(opts))
	r.Get("/gates/{feature}", handleGate(opts))

	if opts.Service != nil && opts.Account != nil {
		r.Get("/usage", handleUsage(opts))
	}

	return r
}

func userResolver(opts RouterOptions) func(r *http.Request) entitlement.TierSource {
	if opts.User != nil {
		return opts.User
	}
	return func(*http.Request) entitlement.TierSource { return nil }
}

func handleGates(opts RouterOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := viewFromRequest(opts, r)

		gates := make(map[entitlement.Feature]entitlement.Gate, len(entitlement.Features))
		for _, f := range entitlement.Features {
			gates[f] = view.FeatureGate(f)
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"tier":  view.Tier(),
			"gates": gates,
		})
	}
}

func handleGate(opts RouterOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := entitlement.ParseFeature(chi.URLParam(r, "feature"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown_feature"})
			return
		}

		writeJSON(w, http.StatusOK, viewFromRequest(opts, r).FeatureGate(f))
	}
}

func handleUsage(opts RouterOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := opts.Account(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}

		usage, err := opts.Service.GetAllUsage(r.Context(), accountID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
			return
		}

		writeJSON(w, http.StatusOK, usage)
	}
}

// viewFromRequest builds the gating view from the tier the middleware already
// resolved, so the audited fallback runs once per request.
func viewFromRequest(opts RouterOptions, r *http.Request) entitlement.View {
	tier := entitlement.ContextTierResolver(r.Context())
	return entitlement.NewViewWithCatalog(staticTier(tier), opts.Guard.Catalog())
}

// staticTier adapts an already-resolved tier to the TierSource interface.
type staticTier entitlement.Tier

func (t staticTier) SubscriptionTier() string { return string(t) }

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
