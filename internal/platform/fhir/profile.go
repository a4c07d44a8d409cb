package fhir

import "strings"

// ---------------------------------------------------------------------------
// NRCES / NHCX canonical profile URLs
// ---------------------------------------------------------------------------

const (
	NRCESBase = "https://nrces.in/ndhm/fhir/r4/StructureDefinition/"

	CoverageEligibilityRequestBundleURL  = NRCESBase + "CoverageEligibilityRequestBundle"
	CoverageEligibilityResponseBundleURL = NRCESBase + "CoverageEligibilityResponseBundle"
	ClaimBundleURL                       = NRCESBase + "ClaimBundle"
	ClaimResponseBundleURL               = NRCESBase + "ClaimResponseBundle"
	InsurancePlanBundleURL               = NRCESBase + "InsurancePlanBundle"
	TaskBundleURL                        = NRCESBase + "TaskBundle"

	ClaimURL                       = NRCESBase + "Claim"
	ClaimResponseURL               = NRCESBase + "ClaimResponse"
	CoverageEligibilityRequestURL  = NRCESBase + "CoverageEligibilityRequest"
	CoverageEligibilityResponseURL = NRCESBase + "CoverageEligibilityResponse"
	InsurancePlanURL               = NRCESBase + "InsurancePlan"
	CoverageURL                    = NRCESBase + "Coverage"
)

// ProfileContains reports whether any profile URI contains keyword. Profiles
// are free-form in practice, so this is a plain case-sensitive substring test.
func ProfileContains(profiles []string, keyword string) bool {
	for _, p := range profiles {
		if strings.Contains(p, keyword) {
			return true
		}
	}
	return false
}

// MergeProfiles returns the resource profiles followed by the bundle profiles.
func MergeProfiles(resource, bundle []string) []string {
	out := make([]string, 0, len(resource)+len(bundle))
	out = append(out, resource...)
	return append(out, bundle...)
}
