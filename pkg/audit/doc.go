// Package audit provides a minimal audit trail for entitlement decisions.
//
// The enforcement layer records denials and tier-resolution fallbacks so that
// "tier unknown, defaulted to free" is observable instead of silently
// indistinguishable from an explicitly free account.
//
// Basic usage:
//
//	storage := audit.NewMemoryStorage()
//	log := audit.NewLogger(storage)
//
//	_ = log.LogDenied(ctx, "entitlement.check",
//	    audit.WithAccountID(accountID),
//	    audit.WithFeature("api_access"),
//	    audit.WithTier("free"),
//	)
//
// Swap MemoryStorage for a persistent Storage implementation in production.
package audit
