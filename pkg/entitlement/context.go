package entitlement

import (
	"context"
	"log/slog"
)

type tierCtxKey struct{}

// WithTier stores the resolved tier in the context for downstream access.
func WithTier(ctx context.Context, t Tier) context.Context {
	return context.WithValue(ctx, tierCtxKey{}, t)
}

// TierFromContext retrieves the tier from the context, if present.
func TierFromContext(ctx context.Context) (Tier, bool) {
	t, ok := ctx.Value(tierCtxKey{}).(Tier)
	return t, ok
}

// TierSource is anything that can report its subscription tier, typically the
// authenticated user record. The raw string is parsed at this boundary.
type TierSource interface {
	SubscriptionTier() string
}

// ResolveTier derives a tier from a user record. A nil source, an unset tier
// field, or an unrecognized value all resolve to free: missing data must
// never silently grant elevated access. Callers that need to distinguish
// "unknown" from "explicitly free" should use Guard.ResolveTier, which emits
// an audit event when it defaults.
func ResolveTier(src TierSource) Tier {
	if src == nil {
		return TierFree
	}
	t, err := ParseTier(src.SubscriptionTier())
	if err != nil {
		return TierFree
	}
	return t
}

// ContextTierResolver resolves the tier from the request context, defaulting
// to free when absent. Intended for HTTP middleware chains where an upstream
// auth layer has already called WithTier.
func ContextTierResolver(ctx context.Context) Tier {
	if t, ok := TierFromContext(ctx); ok && t.Valid() {
		return t
	}
	return TierFree
}

// TierLogAttr returns a logger context extractor that adds the resolved tier
// to every log record when present.
func TierLogAttr() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if t, ok := TierFromContext(ctx); ok {
			return slog.String("tier", string(t)), true
		}
		return slog.Attr{}, false
	}
}
