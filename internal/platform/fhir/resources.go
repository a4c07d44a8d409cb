package fhir

// Resource is the closed set of resource kinds the viewer understands, plus
// Unknown for everything else. Every variant embeds DomainResource.
type Resource interface {
	ResourceType() string
	Base() *DomainResource
}

// DomainResource holds the fields shared by every resource kind.
type DomainResource struct {
	Type   string `json:"resourceType"`
	ID     string `json:"id,omitempty"`
	Status string `json:"status,omitempty"`
	Meta   *Meta  `json:"meta,omitempty"`
}

func (d *DomainResource) Base() *DomainResource { return d }

// Resource type names handled by DecodeResource.
const (
	TypePatient                     = "Patient"
	TypeOrganization                = "Organization"
	TypePractitioner                = "Practitioner"
	TypeCoverage                    = "Coverage"
	TypeClaim                       = "Claim"
	TypeClaimResponse               = "ClaimResponse"
	TypeCoverageEligibilityRequest  = "CoverageEligibilityRequest"
	TypeCoverageEligibilityResponse = "CoverageEligibilityResponse"
	TypeInsurancePlan               = "InsurancePlan"
	TypeTask                        = "Task"
	TypeCommunication               = "Communication"
)

// -- Administrative --

type Patient struct {
	DomainResource
	Identifier []Identifier   `json:"identifier,omitempty"`
	Active     *bool          `json:"active,omitempty"`
	Name       []HumanName    `json:"name,omitempty"`
	Telecom    []ContactPoint `json:"telecom,omitempty"`
	Gender     string         `json:"gender,omitempty"`
	BirthDate  string         `json:"birthDate,omitempty"`
	Address    []Address      `json:"address,omitempty"`
}

func (*Patient) ResourceType() string { return TypePatient }

type Organization struct {
	DomainResource
	Identifier []Identifier      `json:"identifier,omitempty"`
	Active     *bool             `json:"active,omitempty"`
	Type       []CodeableConcept `json:"type,omitempty"`
	Name       string            `json:"name,omitempty"`
	Telecom    []ContactPoint    `json:"telecom,omitempty"`
	Address    []Address         `json:"address,omitempty"`
}

func (*Organization) ResourceType() string { return TypeOrganization }

type PractitionerQualification struct {
	Identifier []Identifier     `json:"identifier,omitempty"`
	Code       *CodeableConcept `json:"code,omitempty"`
	Period     *Period          `json:"period,omitempty"`
}

type Practitioner struct {
	DomainResource
	Identifier    []Identifier                `json:"identifier,omitempty"`
	Active        *bool                       `json:"active,omitempty"`
	Name          []HumanName                 `json:"name,omitempty"`
	Telecom       []ContactPoint              `json:"telecom,omitempty"`
	Gender        string                      `json:"gender,omitempty"`
	Qualification []PractitionerQualification `json:"qualification,omitempty"`
}

func (*Practitioner) ResourceType() string { return TypePractitioner }

// -- Coverage --

type CoverageClass struct {
	Type  *CodeableConcept `json:"type,omitempty"`
	Value string           `json:"value,omitempty"`
	Name  string           `json:"name,omitempty"`
}

type Coverage struct {
	DomainResource
	Identifier   []Identifier     `json:"identifier,omitempty"`
	Type         *CodeableConcept `json:"type,omitempty"`
	SubscriberID string           `json:"subscriberId,omitempty"`
	Subscriber   *Reference       `json:"subscriber,omitempty"`
	Beneficiary  *Reference       `json:"beneficiary,omitempty"`
	Relationship *CodeableConcept `json:"relationship,omitempty"`
	Period       *Period          `json:"period,omitempty"`
	Payor        []Reference      `json:"payor,omitempty"`
	Class        []CoverageClass  `json:"class,omitempty"`
	Network      string           `json:"network,omitempty"`
}

func (*Coverage) ResourceType() string { return TypeCoverage }

// -- Claim --

type ClaimDiagnosis struct {
	Sequence                 int               `json:"sequence,omitempty"`
	DiagnosisCodeableConcept *CodeableConcept  `json:"diagnosisCodeableConcept,omitempty"`
	Type                     []CodeableConcept `json:"type,omitempty"`
}

type ClaimInsurance struct {
	Sequence   int        `json:"sequence,omitempty"`
	Focal      bool       `json:"focal,omitempty"`
	Coverage   *Reference `json:"coverage,omitempty"`
	PreAuthRef []string   `json:"preAuthRef,omitempty"`
}

type ClaimItem struct {
	Sequence         int              `json:"sequence,omitempty"`
	ProductOrService *CodeableConcept `json:"productOrService,omitempty"`
	ServicedDate     string           `json:"servicedDate,omitempty"`
	Quantity         *Quantity        `json:"quantity,omitempty"`
	UnitPrice        *Money           `json:"unitPrice,omitempty"`
	Net              *Money           `json:"net,omitempty"`
}

type Claim struct {
	DomainResource
	Identifier     []Identifier     `json:"identifier,omitempty"`
	Type           *CodeableConcept `json:"type,omitempty"`
	SubType        *CodeableConcept `json:"subType,omitempty"`
	Use            string           `json:"use,omitempty"`
	Patient        *Reference       `json:"patient,omitempty"`
	BillablePeriod *Period          `json:"billablePeriod,omitempty"`
	Created        string           `json:"created,omitempty"`
	Insurer        *Reference       `json:"insurer,omitempty"`
	Provider       *Reference       `json:"provider,omitempty"`
	Priority       *CodeableConcept `json:"priority,omitempty"`
	Diagnosis      []ClaimDiagnosis `json:"diagnosis,omitempty"`
	Insurance      []ClaimInsurance `json:"insurance,omitempty"`
	Item           []ClaimItem      `json:"item,omitempty"`
	Total          *Money           `json:"total,omitempty"`
}

func (*Claim) ResourceType() string { return TypeClaim }

// -- ClaimResponse --

type Adjudication struct {
	Category *CodeableConcept `json:"category,omitempty"`
	Reason   *CodeableConcept `json:"reason,omitempty"`
	Amount   *Money           `json:"amount,omitempty"`
	Value    *float64         `json:"value,omitempty"`
}

type ClaimResponseItem struct {
	ItemSequence int            `json:"itemSequence,omitempty"`
	NoteNumber   []int          `json:"noteNumber,omitempty"`
	Adjudication []Adjudication `json:"adjudication,omitempty"`
}

type Total struct {
	Category *CodeableConcept `json:"category,omitempty"`
	Amount   *Money           `json:"amount,omitempty"`
}

type Payment struct {
	Type       *CodeableConcept `json:"type,omitempty"`
	Date       string           `json:"date,omitempty"`
	Amount     *Money           `json:"amount,omitempty"`
	Identifier *Identifier      `json:"identifier,omitempty"`
}

type ProcessNote struct {
	Number int    `json:"number,omitempty"`
	Type   string `json:"type,omitempty"`
	Text   string `json:"text,omitempty"`
}

type ResponseError struct {
	Code *CodeableConcept `json:"code,omitempty"`
}

type ClaimResponse struct {
	DomainResource
	Identifier           []Identifier        `json:"identifier,omitempty"`
	Type                 *CodeableConcept    `json:"type,omitempty"`
	Use                  string              `json:"use,omitempty"`
	Patient              *Reference          `json:"patient,omitempty"`
	Created              string              `json:"created,omitempty"`
	Insurer              *Reference          `json:"insurer,omitempty"`
	Requestor            *Reference          `json:"requestor,omitempty"`
	Request              *Reference          `json:"request,omitempty"`
	Outcome              string              `json:"outcome,omitempty"`
	Disposition          string              `json:"disposition,omitempty"`
	PreAuthRef           string              `json:"preAuthRef,omitempty"`
	PreAuthPeriod        *Period             `json:"preAuthPeriod,omitempty"`
	Item                 []ClaimResponseItem `json:"item,omitempty"`
	Adjudication         []Adjudication      `json:"adjudication,omitempty"`
	Total                []Total             `json:"total,omitempty"`
	Payment              *Payment            `json:"payment,omitempty"`
	ProcessNote          []ProcessNote       `json:"processNote,omitempty"`
	CommunicationRequest []Reference         `json:"communicationRequest,omitempty"`
	Error                []ResponseError     `json:"error,omitempty"`
}

func (*ClaimResponse) ResourceType() string { return TypeClaimResponse }

// -- Eligibility --

type EligibilityInsurance struct {
	Focal               *bool      `json:"focal,omitempty"`
	Coverage            *Reference `json:"coverage,omitempty"`
	BusinessArrangement string     `json:"businessArrangement,omitempty"`
}

type EligibilityRequestItem struct {
	Category         *CodeableConcept `json:"category,omitempty"`
	ProductOrService *CodeableConcept `json:"productOrService,omitempty"`
	Quantity         *Quantity        `json:"quantity,omitempty"`
	UnitPrice        *Money           `json:"unitPrice,omitempty"`
}

type CoverageEligibilityRequest struct {
	DomainResource
	Identifier     []Identifier             `json:"identifier,omitempty"`
	Priority       *CodeableConcept         `json:"priority,omitempty"`
	Purpose        []string                 `json:"purpose,omitempty"`
	Patient        *Reference               `json:"patient,omitempty"`
	ServicedDate   string                   `json:"servicedDate,omitempty"`
	ServicedPeriod *Period                  `json:"servicedPeriod,omitempty"`
	Created        string                   `json:"created,omitempty"`
	Enterer        *Reference               `json:"enterer,omitempty"`
	Provider       *Reference               `json:"provider,omitempty"`
	Insurer        *Reference               `json:"insurer,omitempty"`
	Insurance      []EligibilityInsurance   `json:"insurance,omitempty"`
	Item           []EligibilityRequestItem `json:"item,omitempty"`
}

func (*CoverageEligibilityRequest) ResourceType() string { return TypeCoverageEligibilityRequest }

type EligibilityBenefit struct {
	Type               *CodeableConcept `json:"type,omitempty"`
	AllowedMoney       *Money           `json:"allowedMoney,omitempty"`
	AllowedUnsignedInt *int             `json:"allowedUnsignedInt,omitempty"`
	AllowedString      string           `json:"allowedString,omitempty"`
	UsedMoney          *Money           `json:"usedMoney,omitempty"`
}

type EligibilityResponseItem struct {
	Category              *CodeableConcept     `json:"category,omitempty"`
	ProductOrService      *CodeableConcept     `json:"productOrService,omitempty"`
	Excluded              *bool                `json:"excluded,omitempty"`
	Name                  string               `json:"name,omitempty"`
	Description           string               `json:"description,omitempty"`
	Network               *CodeableConcept     `json:"network,omitempty"`
	Unit                  *CodeableConcept     `json:"unit,omitempty"`
	Term                  *CodeableConcept     `json:"term,omitempty"`
	Benefit               []EligibilityBenefit `json:"benefit,omitempty"`
	AuthorizationRequired *bool                `json:"authorizationRequired,omitempty"`
}

type EligibilityResponseInsurance struct {
	Coverage      *Reference                `json:"coverage,omitempty"`
	Inforce       *bool                     `json:"inforce,omitempty"`
	BenefitPeriod *Period                   `json:"benefitPeriod,omitempty"`
	Item          []EligibilityResponseItem `json:"item,omitempty"`
}

type CoverageEligibilityResponse struct {
	DomainResource
	Identifier     []Identifier                   `json:"identifier,omitempty"`
	Purpose        []string                       `json:"purpose,omitempty"`
	Patient        *Reference                     `json:"patient,omitempty"`
	ServicedDate   string                         `json:"servicedDate,omitempty"`
	ServicedPeriod *Period                        `json:"servicedPeriod,omitempty"`
	Created        string                         `json:"created,omitempty"`
	Requestor      *Reference                     `json:"requestor,omitempty"`
	Request        *Reference                     `json:"request,omitempty"`
	Outcome        string                         `json:"outcome,omitempty"`
	Disposition    string                         `json:"disposition,omitempty"`
	Insurer        *Reference                     `json:"insurer,omitempty"`
	Insurance      []EligibilityResponseInsurance `json:"insurance,omitempty"`
	PreAuthRef     string                         `json:"preAuthRef,omitempty"`
	Error          []ResponseError                `json:"error,omitempty"`
}

func (*CoverageEligibilityResponse) ResourceType() string { return TypeCoverageEligibilityResponse }

// -- InsurancePlan --

type PlanLimit struct {
	Value *Quantity        `json:"value,omitempty"`
	Code  *CodeableConcept `json:"code,omitempty"`
}

type PlanBenefit struct {
	Type        *CodeableConcept `json:"type,omitempty"`
	Requirement string           `json:"requirement,omitempty"`
	Limit       []PlanLimit      `json:"limit,omitempty"`
}

type PlanCoverage struct {
	Type    *CodeableConcept `json:"type,omitempty"`
	Network []Reference      `json:"network,omitempty"`
	Benefit []PlanBenefit    `json:"benefit,omitempty"`
}

type PlanGeneralCost struct {
	Type      *CodeableConcept `json:"type,omitempty"`
	GroupSize int              `json:"groupSize,omitempty"`
	Cost      *Money           `json:"cost,omitempty"`
	Comment   string           `json:"comment,omitempty"`
}

type PlanDetail struct {
	Identifier  []Identifier      `json:"identifier,omitempty"`
	Type        *CodeableConcept  `json:"type,omitempty"`
	GeneralCost []PlanGeneralCost `json:"generalCost,omitempty"`
}

type InsurancePlan struct {
	DomainResource
	Identifier     []Identifier      `json:"identifier,omitempty"`
	Type           []CodeableConcept `json:"type,omitempty"`
	Name           string            `json:"name,omitempty"`
	Alias          []string          `json:"alias,omitempty"`
	Period         *Period           `json:"period,omitempty"`
	OwnedBy        *Reference        `json:"ownedBy,omitempty"`
	AdministeredBy *Reference        `json:"administeredBy,omitempty"`
	CoverageArea   []Reference       `json:"coverageArea,omitempty"`
	Network        []Reference       `json:"network,omitempty"`
	Coverage       []PlanCoverage    `json:"coverage,omitempty"`
	Plan           []PlanDetail      `json:"plan,omitempty"`
}

func (*InsurancePlan) ResourceType() string { return TypeInsurancePlan }

// -- Status messaging --

type Task struct {
	DomainResource
	Identifier     []Identifier     `json:"identifier,omitempty"`
	Intent         string           `json:"intent,omitempty"`
	Priority       string           `json:"priority,omitempty"`
	Code           *CodeableConcept `json:"code,omitempty"`
	Description    string           `json:"description,omitempty"`
	Focus          *Reference       `json:"focus,omitempty"`
	For            *Reference       `json:"for,omitempty"`
	AuthoredOn     string           `json:"authoredOn,omitempty"`
	LastModified   string           `json:"lastModified,omitempty"`
	BusinessStatus *CodeableConcept `json:"businessStatus,omitempty"`
}

func (*Task) ResourceType() string { return TypeTask }

type Attachment struct {
	ContentType string `json:"contentType,omitempty"`
	Title       string `json:"title,omitempty"`
	URL         string `json:"url,omitempty"`
}

type CommunicationPayload struct {
	ContentString     string      `json:"contentString,omitempty"`
	ContentAttachment *Attachment `json:"contentAttachment,omitempty"`
}

type Communication struct {
	DomainResource
	Identifier []Identifier           `json:"identifier,omitempty"`
	Category   []CodeableConcept      `json:"category,omitempty"`
	Priority   string                 `json:"priority,omitempty"`
	Subject    *Reference             `json:"subject,omitempty"`
	About      []Reference            `json:"about,omitempty"`
	Sent       string                 `json:"sent,omitempty"`
	Recipient  []Reference            `json:"recipient,omitempty"`
	Sender     *Reference             `json:"sender,omitempty"`
	Payload    []CommunicationPayload `json:"payload,omitempty"`
}

func (*Communication) ResourceType() string { return TypeCommunication }

// Unknown is any resource kind without a dedicated variant. Fields keeps the
// full decoded object so views can still show something useful.
type Unknown struct {
	DomainResource
	Fields map[string]any `json:"-"`
}

func (u *Unknown) ResourceType() string { return u.Type }
