package entitlement

// View exposes entitlement queries in a form suitable for conditional
// rendering. It is derived from the latest known user data on every call to
// NewView and holds no state of its own; while user identity is still
// loading, pass a nil source so gating defaults to the most restrictive view
// instead of flashing an entitled state.
type View struct {
	tier    Tier
	catalog Catalog
}

// NewView derives a view from a user record against the default catalog.
func NewView(src TierSource) View {
	return NewViewWithCatalog(src, defaultCatalog)
}

// NewViewWithCatalog derives a view against a specific catalog.
func NewViewWithCatalog(src TierSource, c Catalog) View {
	if c == nil {
		c = defaultCatalog
	}
	return View{tier: ResolveTier(src), catalog: c}
}

// Tier returns the resolved tier.
func (v View) Tier() Tier { return v.tier }

// Can reports whether the feature is enabled for the user.
func (v View) Can(f Feature) bool { return v.catalog.HasFeature(v.tier, f) }

// Limit returns the numeric cap for a limit-typed feature.
func (v View) Limit(f Feature) int64 { return v.catalog.GetLimit(v.tier, f) }

// AtLimit reports whether current usage has reached the cap.
func (v View) AtLimit(f Feature, current int64) bool {
	return v.catalog.IsAtLimit(v.tier, f, current)
}

// UpgradeMessage returns the canned upgrade copy for a feature.
func (v View) UpgradeMessage(f Feature) string { return UpgradeMessage(f) }

// Convenience tier predicates for template logic.
func (v View) IsFree() bool       { return v.tier == TierFree }
func (v View) IsPro() bool        { return v.tier == TierPro }
func (v View) IsEnterprise() bool { return v.tier == TierEnterprise }

// IsProOrHigher reports whether the user is on a paid tier.
func (v View) IsProOrHigher() bool {
	return v.tier == TierPro || v.tier == TierEnterprise
}

// Gate packages a single feature's gating decision for a UI component.
type Gate struct {
	Feature   Feature `json:"feature"`
	Tier      Tier    `json:"tier"`
	HasAccess bool    `json:"has_access"`
	Message   string  `json:"message"`
	// ShowUpgrade indicates the UI should render an upgrade affordance
	// instead of the gated control.
	ShowUpgrade bool `json:"show_upgrade"`
}

// FeatureGate returns the gating decision for one feature.
func (v View) FeatureGate(f Feature) Gate {
	hasAccess := v.Can(f)
	return Gate{
		Feature:     f,
		Tier:        v.tier,
		HasAccess:   hasAccess,
		Message:     UpgradeMessage(f),
		ShowUpgrade: !hasAccess,
	}
}
