package entitlement

import "slices"

// Catalog maps every tier to its full permissions record. Treated as
// immutable after construction: lookups return copies of mutable fields so a
// caller holding a reference cannot corrupt process-wide configuration.
type Catalog map[Tier]FeaturePermissions

// defaultCatalog is the process-wide tier catalog, constructed once at load
// time and never mutated. Higher tiers are supersets of lower tiers'
// capabilities with equal-or-greater numeric limits; SupportLevel is
// categorical and exempt from that rule.
var defaultCatalog = Catalog{
	TierFree: {
		APIAccess:            false,
		Webhooks:             false,
		AuditLogs:            false,
		SSO:                  false,
		WhiteLabel:           false,
		AdvancedAnalytics:    false,
		CertificateExport:    false,
		CouncilReview:        false,
		AISystemsLimit:       3,
		TeamMembers:          1,
		APIKeysLimit:         0,
		MonthlyAssessments:   10,
		ComplianceFrameworks: []string{"EU-AI-Act"},
		SupportLevel:         SupportCommunity,
	},
	TierPro: {
		APIAccess:            true,
		Webhooks:             true,
		AuditLogs:            false,
		SSO:                  false,
		WhiteLabel:           false,
		AdvancedAnalytics:    true,
		CertificateExport:    true,
		CouncilReview:        false,
		AISystemsLimit:       25,
		TeamMembers:          5,
		APIKeysLimit:         10,
		MonthlyAssessments:   100,
		ComplianceFrameworks: []string{"EU-AI-Act", "NIST-AI-RMF", "ISO-42001"},
		SupportLevel:         SupportPriority,
	},
	TierEnterprise: {
		APIAccess:            true,
		Webhooks:             true,
		AuditLogs:            true,
		SSO:                  true,
		WhiteLabel:           true,
		AdvancedAnalytics:    true,
		CertificateExport:    true,
		CouncilReview:        true,
		AISystemsLimit:       Unlimited,
		TeamMembers:          Unlimited,
		APIKeysLimit:         Unlimited,
		MonthlyAssessments:   Unlimited,
		ComplianceFrameworks: []string{"EU-AI-Act", "NIST-AI-RMF", "ISO-42001", "OECD-AI", "UNESCO-AI-Ethics"},
		SupportLevel:         SupportDedicated,
	},
}

// DefaultCatalog returns a deep copy of the built-in tier catalog.
func DefaultCatalog() Catalog {
	return defaultCatalog.clone()
}

// Permissions returns the full record for a tier. The catalog is total over
// the Tiers set, so lookups for valid tiers never miss; an unknown tier
// resolves to the free record as the most restrictive fallback.
func (c Catalog) Permissions(t Tier) FeaturePermissions {
	if p, ok := c[t]; ok {
		return p.clone()
	}
	return c[TierFree].clone()
}

// Validate checks totality over all known tiers and that every numeric limit
// is either Unlimited or non-negative. Monotonicity across tiers is a catalog
// authoring convention verified by tests, not enforced here.
func (c Catalog) Validate() error {
	for _, t := range Tiers {
		p, ok := c[t]
		if !ok {
			return invalidCatalog("%w: %s", ErrCatalogNotTotal, t)
		}
		for _, f := range numericFeatures {
			if limit := p.limit(f); limit < Unlimited {
				return invalidCatalog("tier %s: %s limit %d is neither unlimited nor >= 0", t, f, limit)
			}
		}
		switch p.SupportLevel {
		case SupportCommunity, SupportEmail, SupportPriority, SupportDedicated:
		default:
			return invalidCatalog("tier %s: unknown support level %q", t, p.SupportLevel)
		}
	}
	return nil
}

func (c Catalog) clone() Catalog {
	out := make(Catalog, len(c))
	for t, p := range c {
		out[t] = p.clone()
	}
	return out
}

func (p FeaturePermissions) clone() FeaturePermissions {
	p.ComplianceFrameworks = slices.Clone(p.ComplianceFrameworks)
	return p
}

// numericFeatures lists the limit-typed feature keys.
var numericFeatures = []Feature{
	FeatureAISystems,
	FeatureTeamMembers,
	FeatureAPIKeys,
	FeatureMonthlyAssessments,
}

// limit returns the raw numeric value for a limit-typed feature, 0 otherwise.
func (p FeaturePermissions) limit(f Feature) int64 {
	if v, ok := p.value(f).(int64); ok {
		return v
	}
	return 0
}
