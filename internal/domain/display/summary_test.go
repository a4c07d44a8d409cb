package display

import (
	"encoding/json"
	"testing"

	"github.com/ehr/nhcx-viewer/internal/platform/fhir"
)

func fieldValue(v ResourceView, label string) (string, bool) {
	for _, f := range v.Fields {
		if f.Label == label {
			return f.Value, true
		}
	}
	return "", false
}

func TestSummarize_Nil(t *testing.T) {
	v := Summarize(nil)
	if v.Title != NA || v.ResourceType != NA {
		t.Errorf("expected NA view, got %+v", v)
	}
}

func TestSummarize_Patient(t *testing.T) {
	r := fhir.DecodeResource(json.RawMessage(`{
		"resourceType": "Patient",
		"id": "p-1",
		"name": [{"given": ["Asha"], "family": "Rao"}],
		"gender": "female",
		"birthDate": "1990-05-12"
	}`))
	v := Summarize(r)
	if v.ResourceType != "Patient" || v.ID != "p-1" {
		t.Errorf("unexpected header: %+v", v)
	}
	if v.Title != "Asha Rao" {
		t.Errorf("expected title Asha Rao, got %q", v.Title)
	}
	if v.Status != NA {
		t.Errorf("expected NA status, got %q", v.Status)
	}
	if got, _ := fieldValue(v, "Birth Date"); got != "12 May 1990" {
		t.Errorf("unexpected birth date %q", got)
	}
	if got, _ := fieldValue(v, "Address"); got != NA {
		t.Errorf("expected NA address, got %q", got)
	}
}

func TestSummarize_ClaimResponse(t *testing.T) {
	r := fhir.DecodeResource(json.RawMessage(`{
		"resourceType": "ClaimResponse",
		"id": "cr-1",
		"status": "active",
		"outcome": "complete",
		"type": {"coding": [{"code": "institutional", "display": "Institutional"}]},
		"payment": {"amount": {"value": 1500, "currency": "INR"}}
	}`))
	v := Summarize(r)
	if v.Title != "Institutional" {
		t.Errorf("expected Institutional, got %q", v.Title)
	}
	if got, _ := fieldValue(v, "Outcome"); got != "complete" {
		t.Errorf("expected outcome complete, got %q", got)
	}
	if got, _ := fieldValue(v, "Payment"); got != "₹1,500" {
		t.Errorf("expected payment ₹1,500, got %q", got)
	}
	if got, _ := fieldValue(v, "Errors"); got != NA {
		t.Errorf("expected NA errors, got %q", got)
	}
}

func TestSummarize_Unknown(t *testing.T) {
	r := fhir.DecodeResource(json.RawMessage(`{
		"resourceType": "Observation",
		"id": "obs-1",
		"status": "final",
		"valueString": "120/80",
		"valueInteger": 5,
		"issued": true,
		"code": {"text": "nested"}
	}`))
	v := Summarize(r)
	if v.Title != "Observation" {
		t.Errorf("expected Observation title, got %q", v.Title)
	}
	if v.Status != "final" {
		t.Errorf("expected final, got %q", v.Status)
	}
	if len(v.Fields) != 3 {
		t.Fatalf("expected 3 scalar fields, got %+v", v.Fields)
	}
	if v.Fields[0].Label != "issued" || v.Fields[0].Value != "true" {
		t.Errorf("unexpected first field %+v", v.Fields[0])
	}
	if got, _ := fieldValue(v, "valueInteger"); got != "5" {
		t.Errorf("expected 5, got %q", got)
	}
	if _, ok := fieldValue(v, "code"); ok {
		t.Error("nested members should not be listed")
	}
}

func TestSummarize_EveryKnownKind(t *testing.T) {
	kinds := []string{
		fhir.TypePatient, fhir.TypeOrganization, fhir.TypePractitioner, fhir.TypeCoverage,
		fhir.TypeClaim, fhir.TypeClaimResponse, fhir.TypeCoverageEligibilityRequest,
		fhir.TypeCoverageEligibilityResponse, fhir.TypeInsurancePlan, fhir.TypeTask,
		fhir.TypeCommunication,
	}
	for _, k := range kinds {
		r := fhir.DecodeResource(json.RawMessage(`{"resourceType":"` + k + `"}`))
		v := Summarize(r)
		if v.ResourceType != k {
			t.Errorf("%s: got type %q", k, v.ResourceType)
		}
		if len(v.Fields) == 0 {
			t.Errorf("%s: expected fields", k)
		}
		if v.Title == "" {
			t.Errorf("%s: expected non-empty title", k)
		}
		for _, f := range v.Fields {
			if f.Value == "" {
				t.Errorf("%s: field %s rendered empty", k, f.Label)
			}
		}
	}
}
