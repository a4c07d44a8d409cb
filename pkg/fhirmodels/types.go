package fhirmodels

// NHCX value set codes the viewer interprets.

// Adjudication and total category codes per FHIR R4 adjudication value set.
const (
	AdjudicationSubmitted   = "submitted"
	AdjudicationCopay       = "copay"
	AdjudicationEligible    = "eligible"
	AdjudicationDeductible  = "deductible"
	AdjudicationUnallocDed  = "unallocdeduct"
	AdjudicationEligPercent = "eligpercent"
	AdjudicationTax         = "tax"
	AdjudicationBenefit     = "benefit"
)

// RemittanceOutcome codes carried by ClaimResponse and
// CoverageEligibilityResponse.
const (
	OutcomeQueued   = "queued"
	OutcomeComplete = "complete"
	OutcomeError    = "error"
	OutcomePartial  = "partial"
)

// Claim use codes.
const (
	ClaimUseClaim            = "claim"
	ClaimUsePreAuthorization = "preauthorization"
	ClaimUsePredetermination = "predetermination"
)

// EligibilityRequestPurpose codes.
const (
	PurposeAuthRequirements = "auth-requirements"
	PurposeBenefits         = "benefits"
	PurposeDiscovery        = "discovery"
	PurposeValidation       = "validation"
)

// Financial resource status codes.
const (
	FinancialStatusActive         = "active"
	FinancialStatusCancelled      = "cancelled"
	FinancialStatusDraft          = "draft"
	FinancialStatusEnteredInError = "entered-in-error"
)

// Bundle type codes NHCX exchanges use.
const (
	BundleTypeCollection = "collection"
	BundleTypeDocument   = "document"
	BundleTypeMessage    = "message"
)

// DefaultCurrency is the currency assumed for NHCX amounts without one.
const DefaultCurrency = "INR"
