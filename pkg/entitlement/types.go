package entitlement

import "fmt"

// Tier represents a named subscription level.
type Tier string

const (
	TierFree       Tier = "free"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

// Tiers lists all known tiers in ascending order of entitlement.
// The catalog must stay total over this set.
var Tiers = []Tier{TierFree, TierPro, TierEnterprise}

// Valid reports whether the tier is one of the known values.
func (t Tier) Valid() bool {
	switch t {
	case TierFree, TierPro, TierEnterprise:
		return true
	}
	return false
}

// ParseTier converts an external string (e.g. a database column) into a Tier.
// This is the only validation boundary: downstream code assumes a valid tier.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
	return t, nil
}

const (
	// Unlimited indicates no cap for a numeric limit (-1 chosen for SQL compatibility)
	Unlimited int64 = -1
)

// Feature names one entry of the FeaturePermissions record. The set is closed:
// every feature key used by the catalog, the operation table, and UI call
// sites comes from this enumeration.
type Feature string

const (
	FeatureAPIAccess            Feature = "api_access"
	FeatureWebhooks             Feature = "webhooks"
	FeatureAuditLogs            Feature = "audit_logs"
	FeatureSSO                  Feature = "sso"
	FeatureWhiteLabel           Feature = "white_label"
	FeatureAdvancedAnalytics    Feature = "advanced_analytics"
	FeatureCertificateExport    Feature = "certificate_export"
	FeatureCouncilReview        Feature = "council_review"
	FeatureAISystems            Feature = "ai_systems"
	FeatureTeamMembers          Feature = "team_members"
	FeatureAPIKeys              Feature = "api_keys"
	FeatureMonthlyAssessments   Feature = "monthly_assessments"
	FeatureComplianceFrameworks Feature = "compliance_frameworks"
	FeatureSupportLevel         Feature = "support_level"
)

// Features lists every known feature key.
var Features = []Feature{
	FeatureAPIAccess,
	FeatureWebhooks,
	FeatureAuditLogs,
	FeatureSSO,
	FeatureWhiteLabel,
	FeatureAdvancedAnalytics,
	FeatureCertificateExport,
	FeatureCouncilReview,
	FeatureAISystems,
	FeatureTeamMembers,
	FeatureAPIKeys,
	FeatureMonthlyAssessments,
	FeatureComplianceFrameworks,
	FeatureSupportLevel,
}

// ParseFeature converts an external string into a Feature, erroring on
// anything outside the closed enumeration.
func ParseFeature(s string) (Feature, error) {
	f := Feature(s)
	for _, known := range Features {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFeature, s)
}

// SupportLevel is a categorical entitlement: informational, not gated on.
type SupportLevel string

const (
	SupportCommunity SupportLevel = "community"
	SupportEmail     SupportLevel = "email"
	SupportPriority  SupportLevel = "priority"
	SupportDedicated SupportLevel = "dedicated"
)

// FeaturePermissions is the full entitlement record for one tier. Boolean
// fields are capabilities, int64 fields are caps (-1 for unlimited, 0 for
// present-but-disabled), ComplianceFrameworks is a set-valued capability.
type FeaturePermissions struct {
	APIAccess         bool `yaml:"api_access"`
	Webhooks          bool `yaml:"webhooks"`
	AuditLogs         bool `yaml:"audit_logs"`
	SSO               bool `yaml:"sso"`
	WhiteLabel        bool `yaml:"white_label"`
	AdvancedAnalytics bool `yaml:"advanced_analytics"`
	CertificateExport bool `yaml:"certificate_export"`
	CouncilReview     bool `yaml:"council_review"`

	AISystemsLimit     int64 `yaml:"ai_systems"`
	TeamMembers        int64 `yaml:"team_members"`
	APIKeysLimit       int64 `yaml:"api_keys"`
	MonthlyAssessments int64 `yaml:"monthly_assessments"`

	ComplianceFrameworks []string `yaml:"compliance_frameworks"`

	SupportLevel SupportLevel `yaml:"support_level"`
}

// value resolves a feature key to its raw catalog value. Unknown keys return
// nil, which every query function normalizes to a denial.
func (p FeaturePermissions) value(f Feature) any {
	switch f {
	case FeatureAPIAccess:
		return p.APIAccess
	case FeatureWebhooks:
		return p.Webhooks
	case FeatureAuditLogs:
		return p.AuditLogs
	case FeatureSSO:
		return p.SSO
	case FeatureWhiteLabel:
		return p.WhiteLabel
	case FeatureAdvancedAnalytics:
		return p.AdvancedAnalytics
	case FeatureCertificateExport:
		return p.CertificateExport
	case FeatureCouncilReview:
		return p.CouncilReview
	case FeatureAISystems:
		return p.AISystemsLimit
	case FeatureTeamMembers:
		return p.TeamMembers
	case FeatureAPIKeys:
		return p.APIKeysLimit
	case FeatureMonthlyAssessments:
		return p.MonthlyAssessments
	case FeatureComplianceFrameworks:
		return p.ComplianceFrameworks
	case FeatureSupportLevel:
		return string(p.SupportLevel)
	}
	return nil
}

// UsageInfo contains the current usage and limit for a numeric feature.
type UsageInfo struct {
	Current int64 `json:"current"`
	Limit   int64 `json:"limit"`
}
