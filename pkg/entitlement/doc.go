// Package entitlement implements the tiered feature-permission model for the
// CSOAI platform: which subscription tier may use which feature, and how much.
//
// The package is built around three layers:
//
//   - Tier catalog: a static, immutable mapping from tier (free, pro,
//     enterprise) to a full FeaturePermissions record. Numeric limits use -1
//     as the unlimited sentinel; 0 means present but disabled.
//   - Query functions: pure, non-raising lookups (HasFeature, GetLimit,
//     IsAtLimit, UpgradeMessage). Unknown feature keys degrade to a denial,
//     never to a grant.
//   - Enforcement adapters: Guard for servers (typed DeniedError carrying
//     user-facing upgrade copy, operation table, audited tier fallback) and
//     View for UI gating (Can, AtLimit, FeatureGate).
//
// Basic usage:
//
//	guard, err := entitlement.NewGuard(
//	    entitlement.WithLogger(log),
//	    entitlement.WithAuditLogger(auditLog),
//	)
//	if err != nil {
//	    return err
//	}
//
//	tier := guard.ResolveTier(ctx, user) // defaults to free on missing data
//	if err := guard.CheckOperation(ctx, tier, entitlement.OpCreateAPIKey); err != nil {
//	    return err // DeniedError; Error() is display-ready upgrade copy
//	}
//
// Limit checks are advisory early rejects. Limit checking and limit
// consumption are separate steps, so two concurrent requests can both pass
// before either creation persists; the authoritative enforcement point is the
// storage collaborator (see the usage package's atomic reservation).
package entitlement
