package entitlement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/csoai/entitlement/pkg/audit"
)

// Guard turns permission queries into hard stops for server-side operations.
// It is designed to be called at the very top of a privileged handler so no
// partial side effects occur before the check. Denials carry the canned
// upgrade message as their error text, suitable for direct display.
type Guard struct {
	catalog Catalog
	log     *slog.Logger
	auditor audit.Logger
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithCatalog replaces the default catalog. The catalog is validated during
// NewGuard; an invalid one fails construction.
func WithCatalog(c Catalog) GuardOption {
	return func(g *Guard) { g.catalog = c.clone() }
}

// WithLogger sets the structured logger for guard decisions.
func WithLogger(log *slog.Logger) GuardOption {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

// WithAuditLogger enables audit events for denials and tier-resolution
// fallbacks. Audit failures are logged and never change the check result.
func WithAuditLogger(a audit.Logger) GuardOption {
	return func(g *Guard) { g.auditor = a }
}

// NewGuard creates a Guard over the default catalog unless overridden.
// It validates the catalog and the operation table so misconfiguration is a
// boot-time error rather than a first-request surprise.
func NewGuard(opts ...GuardOption) (*Guard, error) {
	g := &Guard{
		catalog: defaultCatalog,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.catalog.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateOperations(); err != nil {
		return nil, err
	}
	return g, nil
}

// CheckFeature returns a DeniedError when the feature is not enabled for the
// tier, nil otherwise.
func (g *Guard) CheckFeature(ctx context.Context, tier Tier, f Feature) error {
	if g.catalog.HasFeature(tier, f) {
		return nil
	}

	denied := newDenied(tier, f, ErrFeatureNotAvailable, UpgradeMessage(f))
	g.recordDenial(ctx, "entitlement.feature", denied)
	return denied
}

// CheckLimit returns a DeniedError when current usage has reached the cap for
// the feature, nil otherwise. The check is advisory: the authoritative
// enforcement point is the storage collaborator (see the usage package).
func (g *Guard) CheckLimit(ctx context.Context, tier Tier, f Feature, current int64) error {
	if !g.catalog.IsAtLimit(tier, f, current) {
		return nil
	}

	denied := newDenied(tier, f, ErrLimitReached,
		fmt.Sprintf("%s limit reached. %s", f, UpgradeMessage(f)))
	g.recordDenial(ctx, "entitlement.limit", denied)
	return denied
}

// CheckOperation resolves the operation's required feature and checks it.
func (g *Guard) CheckOperation(ctx context.Context, tier Tier, op Operation) error {
	f, err := RequiredFeature(op)
	if err != nil {
		return err
	}
	return g.CheckFeature(ctx, tier, f)
}

// ResolveTier derives the caller's tier from its user record, defaulting to
// free on missing or unparseable data. Unlike the bare ResolveTier function,
// the guard records the fallback so "tier unknown" stays distinguishable from
// "explicitly free" in the audit trail.
func (g *Guard) ResolveTier(ctx context.Context, src TierSource) Tier {
	if src == nil {
		g.recordFallback(ctx, "no user record")
		return TierFree
	}

	raw := src.SubscriptionTier()
	if raw == "" {
		g.recordFallback(ctx, "subscription tier unset")
		return TierFree
	}

	t, err := ParseTier(raw)
	if err != nil {
		g.recordFallback(ctx, fmt.Sprintf("unrecognized tier %q", raw))
		return TierFree
	}
	return t
}

// Catalog returns the guard's catalog for read-only queries.
func (g *Guard) Catalog() Catalog {
	return g.catalog
}

func (g *Guard) recordDenial(ctx context.Context, action string, denied *DeniedError) {
	g.log.InfoContext(ctx, "entitlement denied",
		slog.String("action", action),
		slog.String("feature", string(denied.Feature)),
		slog.String("tier", string(denied.Tier)),
	)
	if g.auditor == nil {
		return
	}
	if err := g.auditor.LogDenied(ctx, action,
		audit.WithFeature(string(denied.Feature)),
		audit.WithTier(string(denied.Tier)),
	); err != nil {
		g.log.ErrorContext(ctx, "audit write failed", slog.Any("error", err))
	}
}

func (g *Guard) recordFallback(ctx context.Context, reason string) {
	g.log.WarnContext(ctx, "tier could not be resolved, defaulted to free",
		slog.String("reason", reason))
	if g.auditor == nil {
		return
	}
	if err := g.auditor.Log(ctx, "entitlement.tierDefaulted",
		audit.WithTier(string(TierFree)),
		audit.WithMetadata("reason", reason),
	); err != nil {
		g.log.ErrorContext(ctx, "audit write failed", slog.Any("error", err))
	}
}
