package entitlement

// upgradeMessages holds canned user-facing copy per feature. The table is
// deliberately partial: features without specific copy fall back to the
// generic message. The copy only says that an upgrade is needed, not to
// which tier, so plan changes do not require retext.
var upgradeMessages = map[Feature]string{
	FeatureAPIAccess:            "API access is available on the Pro plan and above. Upgrade to integrate CSOAI with your systems.",
	FeatureWebhooks:             "Webhooks are available on the Pro plan and above. Upgrade to receive real-time compliance events.",
	FeatureAuditLogs:            "Audit logs are an Enterprise feature. Upgrade to retain a full record of compliance activity.",
	FeatureSSO:                  "Single sign-on is an Enterprise feature. Upgrade to connect your identity provider.",
	FeatureWhiteLabel:           "White-label reports are an Enterprise feature. Upgrade to brand certificates as your own.",
	FeatureAdvancedAnalytics:    "Advanced analytics are available on the Pro plan and above. Upgrade for deeper compliance insight.",
	FeatureCertificateExport:    "Certificate export is available on the Pro plan and above. Upgrade to download verifiable certificates.",
	FeatureCouncilReview:        "Council review submissions are an Enterprise feature. Upgrade to submit systems for full council review.",
	FeatureAISystems:            "You have reached the AI system limit for your plan. Upgrade to register more AI systems.",
	FeatureTeamMembers:          "You have reached the team member limit for your plan. Upgrade to invite more teammates.",
	FeatureAPIKeys:              "API keys are limited on your plan. Upgrade to create more API keys.",
	FeatureMonthlyAssessments:   "You have reached this month's assessment limit. Upgrade to run more assessments.",
	FeatureComplianceFrameworks: "Additional compliance frameworks are available on higher plans. Upgrade to unlock more frameworks.",
}

// genericUpgradeMessage is the fallback for features without specific copy.
const genericUpgradeMessage = "This feature is not available on your current plan. Please upgrade to unlock it."

// UpgradeMessage returns human-readable upgrade copy for a feature. Never
// empty and never raises: unknown features get the generic message.
func UpgradeMessage(f Feature) string {
	if msg, ok := upgradeMessages[f]; ok {
		return msg
	}
	return genericUpgradeMessage
}
