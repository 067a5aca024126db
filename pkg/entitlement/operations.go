package entitlement

import "fmt"

// Operation names a privileged business operation. Handlers check operations
// rather than repeating raw feature keys at every call site, so the mapping
// below is the single source of truth for what gates what.
type Operation string

const (
	OpCreateAPIKey        Operation = "api.createKey"
	OpCallAPI             Operation = "api.call"
	OpCreateWebhook       Operation = "webhooks.create"
	OpRegisterAISystem    Operation = "aiSystems.register"
	OpInviteTeamMember    Operation = "team.invite"
	OpRunAssessment       Operation = "assessments.run"
	OpExportCertificate   Operation = "certificates.export"
	OpSubmitCouncilReview Operation = "council.submitReview"
	OpViewAuditLogs       Operation = "auditLogs.view"
	OpConfigureSSO        Operation = "sso.configure"
	OpBrandReports        Operation = "reports.brand"
	OpViewAnalytics       Operation = "analytics.view"
)

// operationRequirements maps each operation to the feature that gates it.
var operationRequirements = map[Operation]Feature{
	OpCreateAPIKey:        FeatureAPIKeys,
	OpCallAPI:             FeatureAPIAccess,
	OpCreateWebhook:       FeatureWebhooks,
	OpRegisterAISystem:    FeatureAISystems,
	OpInviteTeamMember:    FeatureTeamMembers,
	OpRunAssessment:       FeatureMonthlyAssessments,
	OpExportCertificate:   FeatureCertificateExport,
	OpSubmitCouncilReview: FeatureCouncilReview,
	OpViewAuditLogs:       FeatureAuditLogs,
	OpConfigureSSO:        FeatureSSO,
	OpBrandReports:        FeatureWhiteLabel,
	OpViewAnalytics:       FeatureAdvancedAnalytics,
}

// RequiredFeature returns the feature gating an operation.
func RequiredFeature(op Operation) (Feature, error) {
	f, ok := operationRequirements[op]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownOperation, op)
	}
	return f, nil
}

// Operations returns all registered operation names.
func Operations() []Operation {
	ops := make([]Operation, 0, len(operationRequirements))
	for op := range operationRequirements {
		ops = append(ops, op)
	}
	return ops
}

// ValidateOperations asserts at startup that every registered operation maps
// to a known feature key, catching renamed or removed features at boot
// instead of at first use.
func ValidateOperations() error {
	known := make(map[Feature]struct{}, len(Features))
	for _, f := range Features {
		known[f] = struct{}{}
	}
	for op, f := range operationRequirements {
		if _, ok := known[f]; !ok {
			return fmt.Errorf("%w: operation %s requires unknown feature %q", ErrUnknownFeature, op, f)
		}
	}
	return nil
}
