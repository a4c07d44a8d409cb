package display

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ehr/nhcx-viewer/internal/platform/fhir"
)

// Field is one labelled display value.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ResourceView is the display projection of a single resource.
type ResourceView struct {
	ResourceType string  `json:"resourceType"`
	ID           string  `json:"id"`
	Status       string  `json:"status"`
	Title        string  `json:"title"`
	Fields       []Field `json:"fields"`
}

// Summarize projects any resource into a ResourceView. Missing data renders
// as NA; a nil resource yields an empty view titled NA.
func Summarize(r fhir.Resource) ResourceView {
	if r == nil {
		return ResourceView{ResourceType: NA, ID: NA, Status: NA, Title: NA}
	}
	base := r.Base()
	v := ResourceView{
		ResourceType: Text(r.ResourceType()),
		ID:           Text(base.ID),
		Status:       Text(base.Status),
	}

	switch res := r.(type) {
	case *fhir.Patient:
		v.Title = NamesText(res.Name)
		v.Fields = []Field{
			{"Name", NamesText(res.Name)},
			{"Identifiers", IdentifiersText(res.Identifier)},
			{"Gender", Text(res.Gender)},
			{"Birth Date", DateText(res.BirthDate)},
			{"Telecom", TelecomText(res.Telecom)},
			{"Address", AddressText(res.Address)},
		}
	case *fhir.Organization:
		v.Title = Text(res.Name)
		v.Fields = []Field{
			{"Name", Text(res.Name)},
			{"Type", CodeableConceptsText(res.Type)},
			{"Identifiers", IdentifiersText(res.Identifier)},
			{"Telecom", TelecomText(res.Telecom)},
			{"Address", AddressText(res.Address)},
		}
	case *fhir.Practitioner:
		v.Title = NamesText(res.Name)
		qual := NA
		if len(res.Qualification) > 0 {
			qual = CodeableConceptText(res.Qualification[0].Code)
		}
		v.Fields = []Field{
			{"Name", NamesText(res.Name)},
			{"Identifiers", IdentifiersText(res.Identifier)},
			{"Gender", Text(res.Gender)},
			{"Qualification", qual},
			{"Telecom", TelecomText(res.Telecom)},
		}
	case *fhir.Coverage:
		v.Title = CodeableConceptText(res.Type)
		payor := NA
		if len(res.Payor) > 0 {
			payor = ReferenceText(&res.Payor[0])
		}
		v.Fields = []Field{
			{"Type", CodeableConceptText(res.Type)},
			{"Subscriber ID", Text(res.SubscriberID)},
			{"Beneficiary", ReferenceText(res.Beneficiary)},
			{"Relationship", CodeableConceptText(res.Relationship)},
			{"Payor", payor},
			{"Period", PeriodText(res.Period)},
			{"Identifiers", IdentifiersText(res.Identifier)},
		}
	case *fhir.Claim:
		v.Title = CodeableConceptText(res.Type)
		v.Fields = []Field{
			{"Type", CodeableConceptText(res.Type)},
			{"Sub Type", CodeableConceptText(res.SubType)},
			{"Use", Text(res.Use)},
			{"Patient", ReferenceText(res.Patient)},
			{"Provider", ReferenceText(res.Provider)},
			{"Insurer", ReferenceText(res.Insurer)},
			{"Priority", CodeableConceptText(res.Priority)},
			{"Created", DateText(res.Created)},
			{"Billable Period", PeriodText(res.BillablePeriod)},
			{"Diagnosis", claimDiagnosisText(res.Diagnosis)},
			{"Items", strconv.Itoa(len(res.Item))},
			{"Total", MoneyText(res.Total)},
		}
	case *fhir.ClaimResponse:
		v.Title = CodeableConceptText(res.Type)
		paid := NA
		if res.Payment != nil {
			paid = MoneyText(res.Payment.Amount)
		}
		v.Fields = []Field{
			{"Type", CodeableConceptText(res.Type)},
			{"Use", Text(res.Use)},
			{"Outcome", Text(res.Outcome)},
			{"Disposition", Text(res.Disposition)},
			{"Patient", ReferenceText(res.Patient)},
			{"Insurer", ReferenceText(res.Insurer)},
			{"Requestor", ReferenceText(res.Requestor)},
			{"Created", DateText(res.Created)},
			{"Pre-Auth Ref", Text(res.PreAuthRef)},
			{"Pre-Auth Period", PeriodText(res.PreAuthPeriod)},
			{"Payment", paid},
			{"Notes", processNotesText(res.ProcessNote)},
			{"Errors", responseErrorsText(res.Error)},
		}
	case *fhir.CoverageEligibilityRequest:
		v.Title = "Eligibility check: " + Text(strings.Join(res.Purpose, ", "))
		v.Fields = []Field{
			{"Purpose", Text(strings.Join(res.Purpose, ", "))},
			{"Patient", ReferenceText(res.Patient)},
			{"Provider", ReferenceText(res.Provider)},
			{"Insurer", ReferenceText(res.Insurer)},
			{"Priority", CodeableConceptText(res.Priority)},
			{"Created", DateText(res.Created)},
			{"Serviced", servicedText(res.ServicedDate, res.ServicedPeriod)},
			{"Items", strconv.Itoa(len(res.Item))},
		}
	case *fhir.CoverageEligibilityResponse:
		v.Title = "Eligibility result: " + Text(res.Outcome)
		inforce := NA
		if len(res.Insurance) > 0 {
			inforce = BoolText(res.Insurance[0].Inforce)
		}
		v.Fields = []Field{
			{"Purpose", Text(strings.Join(res.Purpose, ", "))},
			{"Outcome", Text(res.Outcome)},
			{"Disposition", Text(res.Disposition)},
			{"Patient", ReferenceText(res.Patient)},
			{"Insurer", ReferenceText(res.Insurer)},
			{"Requestor", ReferenceText(res.Requestor)},
			{"Created", DateText(res.Created)},
			{"Serviced", servicedText(res.ServicedDate, res.ServicedPeriod)},
			{"In Force", inforce},
			{"Pre-Auth Ref", Text(res.PreAuthRef)},
			{"Errors", responseErrorsText(res.Error)},
		}
	case *fhir.InsurancePlan:
		v.Title = Text(res.Name)
		v.Fields = []Field{
			{"Name", Text(res.Name)},
			{"Type", CodeableConceptsText(res.Type)},
			{"Alias", Text(strings.Join(res.Alias, ", "))},
			{"Period", PeriodText(res.Period)},
			{"Owned By", ReferenceText(res.OwnedBy)},
			{"Administered By", ReferenceText(res.AdministeredBy)},
			{"Coverage Types", strconv.Itoa(len(res.Coverage))},
			{"Identifiers", IdentifiersText(res.Identifier)},
		}
	case *fhir.Task:
		v.Title = CodeableConceptText(res.Code)
		v.Fields = []Field{
			{"Code", CodeableConceptText(res.Code)},
			{"Intent", Text(res.Intent)},
			{"Priority", Text(res.Priority)},
			{"Focus", ReferenceText(res.Focus)},
			{"For", ReferenceText(res.For)},
			{"Business Status", CodeableConceptText(res.BusinessStatus)},
			{"Authored On", DateText(res.AuthoredOn)},
			{"Last Modified", DateText(res.LastModified)},
			{"Description", Text(res.Description)},
		}
	case *fhir.Communication:
		v.Title = CodeableConceptsText(res.Category)
		v.Fields = []Field{
			{"Category", CodeableConceptsText(res.Category)},
			{"Priority", Text(res.Priority)},
			{"Subject", ReferenceText(res.Subject)},
			{"Sender", ReferenceText(res.Sender)},
			{"Sent", DateText(res.Sent)},
			{"Payload", payloadText(res.Payload)},
		}
	case *fhir.Unknown:
		v.Title = v.ResourceType
		v.Fields = scalarFields(res.Fields)
	}
	return v
}

func claimDiagnosisText(dx []fhir.ClaimDiagnosis) string {
	var parts []string
	for i := range dx {
		if dx[i].DiagnosisCodeableConcept != nil {
			parts = append(parts, CodeableConceptText(dx[i].DiagnosisCodeableConcept))
		}
	}
	if len(parts) == 0 {
		return NA
	}
	return strings.Join(parts, ", ")
}

func processNotesText(notes []fhir.ProcessNote) string {
	var parts []string
	for _, n := range notes {
		if n.Text != "" {
			parts = append(parts, n.Text)
		}
	}
	if len(parts) == 0 {
		return NA
	}
	return strings.Join(parts, "; ")
}

func responseErrorsText(errs []fhir.ResponseError) string {
	if len(errs) == 0 {
		return NA
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, CodeableConceptText(e.Code))
	}
	return strings.Join(parts, ", ")
}

func servicedText(date string, period *fhir.Period) string {
	if date != "" {
		return DateText(date)
	}
	if period != nil {
		return PeriodText(period)
	}
	return NA
}

func payloadText(payload []fhir.CommunicationPayload) string {
	var parts []string
	for _, p := range payload {
		switch {
		case p.ContentString != "":
			parts = append(parts, p.ContentString)
		case p.ContentAttachment != nil:
			parts = append(parts, Text(p.ContentAttachment.Title))
		}
	}
	if len(parts) == 0 {
		return NA
	}
	return strings.Join(parts, "; ")
}

// scalarFields lists the top-level string, number and boolean members of an
// unrecognized resource in key order.
func scalarFields(fields map[string]any) []Field {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		switch k {
		case "resourceType", "id", "status":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Field
	for _, k := range keys {
		switch val := fields[k].(type) {
		case string:
			out = append(out, Field{k, Text(val)})
		case float64:
			out = append(out, Field{k, strconv.FormatFloat(val, 'f', -1, 64)})
		case bool:
			out = append(out, Field{k, fmt.Sprintf("%t", val)})
		}
	}
	return out
}
