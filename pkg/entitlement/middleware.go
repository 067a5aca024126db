package entitlement

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// HTTP middleware for gating routes on entitlements. Denials are written as
// 403 responses with a stable "upgrade_required" error code so client UIs can
// route them to an upgrade prompt instead of a generic error toast.

// TierFromRequest resolves the caller's tier for middleware checks. The
// default uses the request context (set by upstream auth middleware) and
// falls back to free.
type TierFromRequest func(r *http.Request) Tier

// AccountFromRequest resolves the acting account for usage-counted checks.
type AccountFromRequest func(r *http.Request) (uuid.UUID, bool)

func defaultTierFromRequest(r *http.Request) Tier {
	return ContextTierResolver(r.Context())
}

// RequireFeature gates a route on a boolean capability.
func RequireFeature(g *Guard, f Feature, resolve TierFromRequest) func(http.Handler) http.Handler {
	if resolve == nil {
		resolve = defaultTierFromRequest
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := g.CheckFeature(r.Context(), resolve(r), f); err != nil {
				writeDenied(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireOperation gates a route through the operation table, keeping the
// route handler free of raw feature keys.
func RequireOperation(g *Guard, op Operation, resolve TierFromRequest) func(http.Handler) http.Handler {
	if resolve == nil {
		resolve = defaultTierFromRequest
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := g.CheckOperation(r.Context(), resolve(r), op); err != nil {
				writeDenied(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireCapacity gates a route on a numeric limit, consulting the counter
// for the account's current usage. The check is an early reject; the storage
// layer remains the authoritative enforcement point for concurrent creates.
func RequireCapacity(g *Guard, f Feature, counter CounterFunc, account AccountFromRequest, resolve TierFromRequest) func(http.Handler) http.Handler {
	if resolve == nil {
		resolve = defaultTierFromRequest
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountID, ok := account(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required.")
				return
			}

			current, err := counter(r.Context(), accountID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "internal_error", "Could not determine current usage.")
				return
			}

			if err := g.CheckLimit(r.Context(), resolve(r), f, current); err != nil {
				writeDenied(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TierMiddleware resolves the tier from the authenticated user and stashes it
// in the request context for downstream checks. The userFromRequest callback
// belongs to the embedding application's auth layer.
func TierMiddleware(g *Guard, userFromRequest func(r *http.Request) TierSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tier := g.ResolveTier(r.Context(), userFromRequest(r))
			ctx := WithTier(r.Context(), tier)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type deniedResponse struct {
	Error   string  `json:"error"`
	Message string  `json:"message"`
	Feature Feature `json:"feature,omitempty"`
}

func writeDenied(w http.ResponseWriter, err error) {
	if denied, ok := IsDenied(err); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(deniedResponse{
			Error:   "upgrade_required",
			Message: denied.Message,
			Feature: denied.Feature,
		})
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", "Entitlement check failed.")
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(deniedResponse{Error: errCode, Message: message})
}
