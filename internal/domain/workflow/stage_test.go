package workflow

import (
	"encoding/json"
	"testing"

	"github.com/ehr/nhcx-viewer/internal/platform/fhir"
)

func decode(t *testing.T, raw string) fhir.Resource {
	t.Helper()
	r := fhir.DecodeResource(json.RawMessage(raw))
	if r == nil {
		t.Fatalf("decode %s: nil resource", raw)
	}
	return r
}

func TestDeriveStage_Requests(t *testing.T) {
	tests := map[Category]string{
		CategoryEligibility: "CE01",
		CategoryPreAuth:     "PA01",
		CategoryClaim:       "CL01",
		CategoryPlan:        "IP01",
	}
	for cat, want := range tests {
		s := DeriveStage(cat, DirectionRequest, nil)
		if s.ID != want {
			t.Errorf("%s: expected %s, got %s", cat, want, s.ID)
		}
		if s.Terminal {
			t.Errorf("%s: initial stage should not be terminal", cat)
		}
	}
}

func TestDeriveStage_ClaimResponses(t *testing.T) {
	tests := []struct {
		name     string
		resource string
		wantID   string
		progress int
	}{
		{"complete", `{"resourceType":"ClaimResponse","outcome":"complete"}`, "CL04", 85},
		{"complete with payment", `{"resourceType":"ClaimResponse","outcome":"complete","payment":{"amount":{"value":900}}}`, "CL07", 100},
		{"partial", `{"resourceType":"ClaimResponse","outcome":"partial"}`, "CL06", 85},
		{"error", `{"resourceType":"ClaimResponse","outcome":"error"}`, "CL01", 15},
		{"queued", `{"resourceType":"ClaimResponse","outcome":"queued"}`, "CL01", 15},
		{"missing", `{"resourceType":"ClaimResponse"}`, "CL01", 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DeriveStage(CategoryClaim, DirectionResponse, decode(t, tt.resource))
			if s.ID != tt.wantID || s.Progress != tt.progress {
				t.Errorf("expected %s/%d, got %s/%d", tt.wantID, tt.progress, s.ID, s.Progress)
			}
		})
	}
}

func TestDeriveStage_PreAuthResponses(t *testing.T) {
	tests := map[string]string{
		"complete": "PA04",
		"partial":  "PA06",
		"error":    "PA01",
		"queued":   "PA01",
	}
	for outcome, want := range tests {
		r := decode(t, `{"resourceType":"PreAuthResponse","outcome":"`+outcome+`"}`)
		if s := DeriveStage(CategoryPreAuth, DirectionResponse, r); s.ID != want {
			t.Errorf("%s: expected %s, got %s", outcome, want, s.ID)
		}
	}
}

func TestDeriveStage_EligibilityResponses(t *testing.T) {
	tests := []struct {
		name     string
		resource string
		wantID   string
		progress int
	}{
		{"complete", `{"resourceType":"CoverageEligibilityResponse","outcome":"complete"}`, "CE02", 100},
		{"queued", `{"resourceType":"CoverageEligibilityResponse","outcome":"queued"}`, "CE01", 50},
		{"error", `{"resourceType":"CoverageEligibilityResponse","outcome":"error"}`, "CE01", 50},
		{"partial without partial stage", `{"resourceType":"CoverageEligibilityResponse","outcome":"partial"}`, "CE01", 50},
		{"missing", `{"resourceType":"CoverageEligibilityResponse"}`, "CE01", 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DeriveStage(CategoryEligibility, DirectionResponse, decode(t, tt.resource))
			if s.ID != tt.wantID || s.Progress != tt.progress {
				t.Errorf("expected %s/%d, got %s/%d", tt.wantID, tt.progress, s.ID, s.Progress)
			}
		})
	}
}

func TestDeriveStage_PlanResponses(t *testing.T) {
	if s := DeriveStage(CategoryPlan, DirectionResponse, decode(t, `{"resourceType":"InsurancePlan","status":"active"}`)); s.ID != "IP01" || s.Progress != 50 {
		t.Errorf("expected IP01/50 without an outcome, got %s/%d", s.ID, s.Progress)
	}
	s := DeriveStage(CategoryPlan, DirectionResponse, decode(t, `{"resourceType":"Basic","outcome":"complete"}`))
	if s.ID != "IP02" || !s.Terminal {
		t.Errorf("expected terminal IP02, got %+v", s)
	}
	if s := DeriveStage(CategoryEligibility, DirectionResponse, nil); s.ID != "CE01" {
		t.Errorf("expected CE01 for a nil resource, got %s", s.ID)
	}
}

func TestDeriveStage_NoMachine(t *testing.T) {
	for _, cat := range []Category{CategoryCoverageInfo, CategoryClaimStatus, CategoryUnknown} {
		s := DeriveStage(cat, DirectionResponse, nil)
		if s.ID != "" || s.Progress != 0 {
			t.Errorf("%s: expected empty stage, got %+v", cat, s)
		}
		if s.Visual != neutral {
			t.Errorf("%s: expected neutral visual, got %+v", cat, s.Visual)
		}
	}
}

func TestStages(t *testing.T) {
	claim := Stages(CategoryClaim)
	if len(claim) != 7 {
		t.Fatalf("expected 7 claim stages, got %d", len(claim))
	}
	for _, s := range claim {
		if s.Terminal && s.Next != "" {
			t.Errorf("%s: terminal stage with next %s", s.ID, s.Next)
		}
		if !s.Terminal {
			if _, ok := LookupStage(s.Next); !ok {
				t.Errorf("%s: next stage %s does not exist", s.ID, s.Next)
			}
		}
		if s.Visual == neutral {
			t.Errorf("%s: expected mapped visual", s.ID)
		}
	}
	if Stages(CategoryUnknown) != nil {
		t.Error("expected no stages for Unknown")
	}
}

func TestLookupStage(t *testing.T) {
	s, ok := LookupStage("PA06")
	if !ok {
		t.Fatal("expected PA06")
	}
	if s.Name != "Partially Approved" || s.Progress != 100 || !s.Terminal {
		t.Errorf("unexpected PA06: %+v", s)
	}
	if _, ok := LookupStage("ZZ99"); ok {
		t.Error("did not expect ZZ99")
	}
}

func TestVisualFor(t *testing.T) {
	statuses := []Status{
		StatusInitiated, StatusProcessing, StatusInfoRequired, StatusApproved,
		StatusPartial, StatusRejected, StatusPayment, StatusComplete,
	}
	seen := map[Visual]bool{}
	for _, s := range statuses {
		v := VisualFor(s)
		if v == neutral {
			t.Errorf("%s: expected mapped visual", s)
		}
		seen[v] = true
	}
	if len(seen) != len(statuses) {
		t.Errorf("expected %d distinct visuals, got %d", len(statuses), len(seen))
	}
	if VisualFor("on_hold") != neutral {
		t.Error("expected neutral visual for unknown status")
	}
}

func TestNextActions(t *testing.T) {
	tests := []struct {
		stage  string
		status Status
		want   []string
	}{
		{"CE02", StatusComplete, []string{"Submit Pre-Auth", ActionViewBundle}},
		{"PA04", StatusApproved, []string{"Submit Claim", ActionViewBundle}},
		{"PA02", StatusInfoRequired, []string{"Submit Documents", ActionViewBundle}},
		{"CL02", StatusInfoRequired, []string{"Submit Documents", ActionViewBundle}},
		{"CL01", StatusInitiated, []string{ActionViewBundle}},
		{"CE02", StatusRejected, []string{ActionViewBundle}},
		{"", "", []string{ActionViewBundle}},
	}
	for _, tt := range tests {
		got := NextActions(tt.stage, tt.status)
		if len(got) != len(tt.want) {
			t.Errorf("%s/%s: expected %v, got %+v", tt.stage, tt.status, tt.want, got)
			continue
		}
		for i, a := range got {
			if a.Label != tt.want[i] {
				t.Errorf("%s/%s[%d]: expected %q, got %q", tt.stage, tt.status, i, tt.want[i], a.Label)
			}
		}
		if got[len(got)-1].Primary {
			t.Errorf("%s/%s: view action should not be primary", tt.stage, tt.status)
		}
	}
}

func TestActionsFor(t *testing.T) {
	s := DeriveStage(CategoryEligibility, DirectionResponse, decode(t, `{"resourceType":"CoverageEligibilityResponse","outcome":"complete"}`))
	got := ActionsFor(s)
	if len(got) != 2 || got[0].Label != "Submit Pre-Auth" {
		t.Errorf("unexpected actions %+v", got)
	}
}
