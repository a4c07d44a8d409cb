package workflow

import (
	"reflect"
	"testing"

	"github.com/ehr/nhcx-viewer/internal/platform/fhir"
)

func mustParse(t *testing.T, data string) *fhir.Bundle {
	t.Helper()
	b, err := fhir.ParseBundle([]byte(data))
	if err != nil {
		t.Fatalf("parse bundle: %v", err)
	}
	return b
}

func TestClassify_EmptyBundle(t *testing.T) {
	for _, data := range []string{
		`{"resourceType":"Bundle"}`,
		`{"resourceType":"Bundle","entry":[]}`,
	} {
		c := Classify(mustParse(t, data))
		if c.Category != CategoryUnknown {
			t.Errorf("expected Unknown, got %s", c.Category)
		}
		if c.Title != DefaultTitle {
			t.Errorf("expected %q, got %q", DefaultTitle, c.Title)
		}
		if c.ResourceCount != 0 {
			t.Errorf("expected 0 resources, got %d", c.ResourceCount)
		}
		if c.Stage.Progress != 0 {
			t.Errorf("expected progress 0, got %d", c.Stage.Progress)
		}
	}
}

func TestClassify_NilBundle(t *testing.T) {
	c := Classify(nil)
	if c.Category != CategoryUnknown || c.Title != DefaultTitle || c.ResourceCount != 0 {
		t.Errorf("unexpected classification for nil bundle: %+v", c)
	}
}

func TestClassify_ResourcelessEntry(t *testing.T) {
	c := Classify(mustParse(t, `{"resourceType":"Bundle","entry":[{"fullUrl":"urn:uuid:1"}]}`))
	if c.Category != CategoryUnknown || c.Title != DefaultTitle {
		t.Errorf("expected Unknown/FHIR Bundle, got %s/%s", c.Category, c.Title)
	}
	if c.ResourceCount != 1 {
		t.Errorf("expected entry count 1, got %d", c.ResourceCount)
	}
}

func TestClassify_EligibilityResponseComplete(t *testing.T) {
	b := mustParse(t, `{"entry":[{"resource":{"resourceType":"CoverageEligibilityResponse","outcome":"complete"}}]}`)
	c := Classify(b)
	if c.Category != CategoryEligibility {
		t.Errorf("expected Eligibility, got %s", c.Category)
	}
	if c.Direction != DirectionResponse {
		t.Errorf("expected response, got %s", c.Direction)
	}
	if c.Stage.ID != "CE02" || c.Stage.Progress != 100 {
		t.Errorf("expected CE02/100, got %s/%d", c.Stage.ID, c.Stage.Progress)
	}
	if !c.Stage.Terminal {
		t.Error("expected terminal stage")
	}
}

func TestClassify_BareClaim(t *testing.T) {
	c := Classify(mustParse(t, `{"entry":[{"resource":{"resourceType":"Claim"}}]}`))
	if c.Category != CategoryClaim || c.Direction != DirectionRequest {
		t.Errorf("expected Claim/request, got %s/%s", c.Category, c.Direction)
	}
	if c.Stage.ID != "CL01" || c.Stage.Progress != 15 {
		t.Errorf("expected CL01/15, got %s/%d", c.Stage.ID, c.Stage.Progress)
	}
	if c.Title != "Claim Submission" {
		t.Errorf("unexpected title %q", c.Title)
	}
}

func TestClassify_UnrecognizedType(t *testing.T) {
	c := Classify(mustParse(t, `{"entry":[{"resource":{"resourceType":"Observation","id":"o1"}}]}`))
	if c.Category != CategoryUnknown {
		t.Errorf("expected Unknown, got %s", c.Category)
	}
	if c.Title != "Observation" {
		t.Errorf("expected title Observation, got %q", c.Title)
	}
	if c.ResourceID != "o1" {
		t.Errorf("expected resource id o1, got %q", c.ResourceID)
	}
	if c.Direction != DirectionRequest {
		t.Errorf("expected request, got %s", c.Direction)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	b := mustParse(t, `{
		"meta": {"profile": ["https://nrces.in/ndhm/fhir/r4/StructureDefinition/ClaimResponseBundle"]},
		"entry": [{"resource": {"resourceType": "ClaimResponse", "outcome": "partial"}}]
	}`)
	first := Classify(b)
	second := Classify(b)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("classification not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestClassify_Priority(t *testing.T) {
	tests := []struct {
		name      string
		bundle    string
		category  Category
		direction Direction
	}{
		{
			name:      "insurance plan by type",
			bundle:    `{"entry":[{"resource":{"resourceType":"InsurancePlan"}}]}`,
			category:  CategoryPlan,
			direction: DirectionResponse,
		},
		{
			name:      "insurance plan profile beats claim type",
			bundle:    `{"meta":{"profile":["x/InsurancePlanBundle"]},"entry":[{"resource":{"resourceType":"Claim"}}]}`,
			category:  CategoryPlan,
			direction: DirectionResponse,
		},
		{
			name:      "eligibility request",
			bundle:    `{"entry":[{"resource":{"resourceType":"CoverageEligibilityRequest"}}]}`,
			category:  CategoryEligibility,
			direction: DirectionRequest,
		},
		{
			name:      "eligibility request profile on unknown resource",
			bundle:    `{"entry":[{"resource":{"resourceType":"Basic","meta":{"profile":["x/CoverageEligibilityRequest"]}}}]}`,
			category:  CategoryEligibility,
			direction: DirectionRequest,
		},
		{
			name:      "eligibility response profile",
			bundle:    `{"meta":{"profile":["x/CoverageEligibilityResponseBundle"]},"entry":[{"resource":{"resourceType":"Basic"}}]}`,
			category:  CategoryEligibility,
			direction: DirectionResponse,
		},
		{
			name:      "claim profile without response",
			bundle:    `{"meta":{"profile":["x/ClaimBundle"]},"entry":[{"resource":{"resourceType":"Basic"}}]}`,
			category:  CategoryClaim,
			direction: DirectionRequest,
		},
		{
			name:      "claim type wins over preauth coding",
			bundle:    `{"entry":[{"resource":{"resourceType":"Claim","type":{"coding":[{"code":"preauthorization"}]}}}]}`,
			category:  CategoryClaim,
			direction: DirectionRequest,
		},
		{
			name:      "claim response by type",
			bundle:    `{"entry":[{"resource":{"resourceType":"ClaimResponse"}}]}`,
			category:  CategoryClaim,
			direction: DirectionResponse,
		},
		{
			name:      "claim response by profile",
			bundle:    `{"meta":{"profile":["x/ClaimResponseBundle"]},"entry":[{"resource":{"resourceType":"Basic"}}]}`,
			category:  CategoryClaim,
			direction: DirectionResponse,
		},
		{
			name:      "preauth profile",
			bundle:    `{"meta":{"profile":["x/PreAuthBundle"]},"entry":[{"resource":{"resourceType":"Basic"}}]}`,
			category:  CategoryPreAuth,
			direction: DirectionRequest,
		},
		{
			name:      "preauth coding on response-named kind",
			bundle:    `{"entry":[{"resource":{"resourceType":"PreAuthResponse","type":{"coding":[{"code":"preauthorization"}]}}}]}`,
			category:  CategoryPreAuth,
			direction: DirectionResponse,
		},
		{
			name:      "coverage",
			bundle:    `{"entry":[{"resource":{"resourceType":"Coverage"}}]}`,
			category:  CategoryCoverageInfo,
			direction: DirectionRequest,
		},
		{
			name:      "task",
			bundle:    `{"entry":[{"resource":{"resourceType":"Task"}}]}`,
			category:  CategoryClaimStatus,
			direction: DirectionRequest,
		},
		{
			name:      "communication with response profile",
			bundle:    `{"meta":{"profile":["x/CommunicationResponse"]},"entry":[{"resource":{"resourceType":"Communication"}}]}`,
			category:  CategoryClaimStatus,
			direction: DirectionResponse,
		},
		{
			name:      "unknown with response profile",
			bundle:    `{"meta":{"profile":["x/SomethingResponse"]},"entry":[{"resource":{"resourceType":"Observation"}}]}`,
			category:  CategoryUnknown,
			direction: DirectionResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(mustParse(t, tt.bundle))
			if c.Category != tt.category {
				t.Errorf("expected category %s, got %s", tt.category, c.Category)
			}
			if c.Direction != tt.direction {
				t.Errorf("expected direction %s, got %s", tt.direction, c.Direction)
			}
		})
	}
}

func TestClassify_ProfileMatchIsCaseSensitive(t *testing.T) {
	c := Classify(mustParse(t, `{"meta":{"profile":["x/claimbundle"]},"entry":[{"resource":{"resourceType":"Basic"}}]}`))
	if c.Category != CategoryUnknown {
		t.Errorf("expected Unknown for lowercase profile, got %s", c.Category)
	}
}

func TestClassify_CountsEveryEntry(t *testing.T) {
	c := Classify(mustParse(t, `{"entry":[
		{"resource":{"resourceType":"Claim","id":"c1"}},
		{"resource":{"resourceType":"Patient"}},
		{"resource":{"resourceType":"Organization"}}
	]}`))
	if c.ResourceCount != 3 {
		t.Errorf("expected 3, got %d", c.ResourceCount)
	}
	if c.ResourceType != "Claim" || c.ResourceID != "c1" {
		t.Errorf("unexpected main resource %s/%s", c.ResourceType, c.ResourceID)
	}
}
