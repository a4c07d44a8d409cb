package workflow

import (
	"slices"
	"strings"

	"github.com/ehr/nhcx-viewer/internal/platform/fhir"
	"github.com/ehr/nhcx-viewer/pkg/fhirmodels"
)

// Category is the NHCX workflow a bundle belongs to.
type Category string

const (
	CategoryEligibility  Category = "Eligibility"
	CategoryPreAuth      Category = "PreAuth"
	CategoryClaim        Category = "Claim"
	CategoryPlan         Category = "Plan"
	CategoryCoverageInfo Category = "CoverageInfo"
	CategoryClaimStatus  Category = "ClaimStatus"
	CategoryUnknown      Category = "Unknown"
)

// Direction tells whether a bundle was sent by a provider or a payer.
type Direction string

const (
	DirectionRequest  Direction = "request"
	DirectionResponse Direction = "response"
)

// DefaultTitle is used for bundles that carry no identifiable main resource.
const DefaultTitle = "FHIR Bundle"

// Classification is derived fresh from a bundle on every call.
type Classification struct {
	Category      Category  `json:"category"`
	Direction     Direction `json:"direction"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ResourceType  string    `json:"resourceType"`
	ResourceID    string    `json:"resourceId"`
	ResourceCount int       `json:"resourceCount"`
	Stage         StageInfo `json:"stage"`
}

type label struct {
	title       string
	description string
}

type labelKey struct {
	category  Category
	direction Direction
}

var labels = map[labelKey]label{
	{CategoryEligibility, DirectionRequest}: {
		"Eligibility Check Request",
		"Provider request to verify a patient's insurance coverage and benefits.",
	},
	{CategoryEligibility, DirectionResponse}: {
		"Eligibility Check Response",
		"Payer response confirming coverage status and benefit details.",
	},
	{CategoryPreAuth, DirectionRequest}: {
		"Pre-Authorization Request",
		"Provider request for approval of planned treatment before it is delivered.",
	},
	{CategoryPreAuth, DirectionResponse}: {
		"Pre-Authorization Response",
		"Payer decision on a pre-authorization request.",
	},
	{CategoryClaim, DirectionRequest}: {
		"Claim Submission",
		"Provider claim for reimbursement of delivered services.",
	},
	{CategoryClaim, DirectionResponse}: {
		"Claim Response",
		"Payer adjudication of a submitted claim.",
	},
	{CategoryPlan, DirectionRequest}: {
		"Insurance Plan Request",
		"Request for the details of an insurance plan.",
	},
	{CategoryPlan, DirectionResponse}: {
		"Insurance Plan Details",
		"Insurance plan coverage, benefits and limits published by the payer.",
	},
	{CategoryCoverageInfo, DirectionRequest}: {
		"Coverage Information",
		"Insurance coverage held by the patient.",
	},
	{CategoryCoverageInfo, DirectionResponse}: {
		"Coverage Information",
		"Insurance coverage held by the patient.",
	},
	{CategoryClaimStatus, DirectionRequest}: {
		"Claim Status Request",
		"Status check or communication about an in-flight claim.",
	},
	{CategoryClaimStatus, DirectionResponse}: {
		"Claim Status Response",
		"Status update or communication about an in-flight claim.",
	},
}

const unknownDescription = "Bundle content that does not match a known NHCX workflow."

// Classify assigns a workflow category, direction, labels and stage to a
// bundle by inspecting its main resource and the merged profile list. The
// checks run in a fixed priority order and the first match wins. Profile
// checks are case-sensitive substring matches.
func Classify(b *fhir.Bundle) Classification {
	var count int
	if b != nil {
		count = len(b.Entry)
	}

	main := b.MainResource()
	if main == nil {
		c := Classification{
			Category:      CategoryUnknown,
			Direction:     DirectionRequest,
			Title:         DefaultTitle,
			Description:   unknownDescription,
			ResourceCount: count,
		}
		c.Stage = DeriveStage(c.Category, c.Direction, nil)
		return c
	}

	rt := main.ResourceType()
	profiles := fhir.MergeProfiles(fhir.Profiles(main), b.Profiles())
	category, direction := match(rt, profiles, main)

	c := Classification{
		Category:      category,
		Direction:     direction,
		ResourceType:  rt,
		ResourceID:    main.Base().ID,
		ResourceCount: count,
	}
	if l, ok := labels[labelKey{category, direction}]; ok {
		c.Title, c.Description = l.title, l.description
	} else {
		c.Title, c.Description = rt, unknownDescription
		if c.Title == "" {
			c.Title = DefaultTitle
		}
	}
	c.Stage = DeriveStage(category, direction, main)
	return c
}

func match(rt string, profiles []string, r fhir.Resource) (Category, Direction) {
	has := func(keyword string) bool { return fhir.ProfileContains(profiles, keyword) }

	switch {
	case rt == fhir.TypeInsurancePlan || has("InsurancePlan"):
		return CategoryPlan, DirectionResponse
	case strings.Contains(rt, "CoverageEligibilityRequest") || has("CoverageEligibilityRequest"):
		return CategoryEligibility, DirectionRequest
	case strings.Contains(rt, "CoverageEligibilityResponse") || has("CoverageEligibilityResponse"):
		return CategoryEligibility, DirectionResponse
	case rt == fhir.TypeClaim || (has("Claim") && !has("Response")):
		return CategoryClaim, DirectionRequest
	case rt == fhir.TypeClaimResponse || has("ClaimResponse"):
		return CategoryClaim, DirectionResponse
	case has("PreAuth") || slices.Contains(fhir.TypeCodes(r), fhirmodels.ClaimUsePreAuthorization):
		if strings.Contains(rt, "Response") {
			return CategoryPreAuth, DirectionResponse
		}
		return CategoryPreAuth, DirectionRequest
	case rt == fhir.TypeCoverage:
		return CategoryCoverageInfo, inferDirection(rt, profiles)
	case rt == fhir.TypeTask || rt == fhir.TypeCommunication:
		return CategoryClaimStatus, inferDirection(rt, profiles)
	}
	return CategoryUnknown, inferDirection(rt, profiles)
}

// inferDirection treats a resource as a response when its type name or any
// profile contains "Response". Resource kinds that do not follow that naming
// read as requests.
func inferDirection(rt string, profiles []string) Direction {
	if strings.Contains(rt, "Response") || fhir.ProfileContains(profiles, "Response") {
		return DirectionResponse
	}
	return DirectionRequest
}
