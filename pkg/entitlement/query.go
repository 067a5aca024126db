package entitlement

// Query functions interpret the catalog. They are pure, never raise, and
// degrade unknown feature keys to a denial rather than an error: a typo can
// never over-grant access.

// HasFeature reports whether a feature is enabled for a tier under the
// default catalog. Boolean values pass through, numeric values are enabled
// unless exactly 0 (so Unlimited reads as enabled), set values are enabled
// unless empty, and a categorical value is enabled unless blank.
func HasFeature(t Tier, f Feature) bool {
	return defaultCatalog.HasFeature(t, f)
}

// GetLimit returns the numeric cap for a limit-typed feature under the
// default catalog, or 0 for non-numeric and unknown features.
func GetLimit(t Tier, f Feature) int64 {
	return defaultCatalog.GetLimit(t, f)
}

// IsAtLimit reports whether current usage has reached the cap for a feature
// under the default catalog. Unlimited never hits the cap.
func IsAtLimit(t Tier, f Feature, current int64) bool {
	return defaultCatalog.IsAtLimit(t, f, current)
}

// HasFeature reports whether a feature is enabled for a tier.
func (c Catalog) HasFeature(t Tier, f Feature) bool {
	switch v := c.Permissions(t).value(f).(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case []string:
		return len(v) > 0
	case string:
		return v != ""
	}
	return false
}

// GetLimit returns the numeric cap for a limit-typed feature, or 0 when the
// feature is boolean, set-valued, categorical, or unknown. Callers must only
// use this for features known to be numeric.
func (c Catalog) GetLimit(t Tier, f Feature) int64 {
	return c.Permissions(t).limit(f)
}

// IsAtLimit reports whether current usage has reached the cap. This is an
// advisory threshold check: limit checking and limit consumption are separate
// steps at the caller, so concurrent requests can both pass before either
// creation persists. Closing that race belongs to the storage collaborator
// (see the usage package's atomic reservation).
func (c Catalog) IsAtLimit(t Tier, f Feature, current int64) bool {
	limit := c.GetLimit(t, f)
	if limit == Unlimited {
		return false
	}
	return current >= limit
}
