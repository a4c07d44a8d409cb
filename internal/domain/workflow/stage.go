package workflow

import (
	"strings"

	"github.com/ehr/nhcx-viewer/internal/platform/fhir"
	"github.com/ehr/nhcx-viewer/pkg/fhirmodels"
)

// Status is the visual state of a workflow stage.
type Status string

const (
	StatusInitiated    Status = "initiated"
	StatusProcessing   Status = "processing"
	StatusInfoRequired Status = "info_required"
	StatusApproved     Status = "approved"
	StatusPartial      Status = "partial"
	StatusRejected     Status = "rejected"
	StatusPayment      Status = "payment"
	StatusComplete     Status = "complete"
)

// StageInfo is one point in a category's workflow. Next is empty for
// terminal stages.
type StageInfo struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Status   Status `json:"status,omitempty"`
	Progress int    `json:"progress"`
	Next     string `json:"next,omitempty"`
	Terminal bool   `json:"terminal"`
	Visual   Visual `json:"visual"`
}

type machine struct {
	stages   []StageInfo
	initial  string
	approved string
	partial  string
	paid     string
}

var machines = map[Category]machine{
	CategoryEligibility: {
		stages: []StageInfo{
			{ID: "CE01", Name: "Request Initiated", Status: StatusInitiated, Progress: 50, Next: "CE02"},
			{ID: "CE02", Name: "Response Received", Status: StatusComplete, Progress: 100, Terminal: true},
		},
		initial:  "CE01",
		approved: "CE02",
	},
	CategoryPreAuth: {
		stages: []StageInfo{
			{ID: "PA01", Name: "Submitted", Status: StatusInitiated, Progress: 20, Next: "PA02"},
			{ID: "PA02", Name: "Info Requested", Status: StatusInfoRequired, Progress: 40, Next: "PA03"},
			{ID: "PA03", Name: "Info Submitted", Status: StatusProcessing, Progress: 60, Next: "PA04"},
			{ID: "PA04", Name: "Approved", Status: StatusApproved, Progress: 100, Terminal: true},
			{ID: "PA05", Name: "Rejected", Status: StatusRejected, Progress: 100, Terminal: true},
			{ID: "PA06", Name: "Partially Approved", Status: StatusPartial, Progress: 100, Terminal: true},
		},
		initial:  "PA01",
		approved: "PA04",
		partial:  "PA06",
	},
	CategoryClaim: {
		stages: []StageInfo{
			{ID: "CL01", Name: "Submitted", Status: StatusInitiated, Progress: 15, Next: "CL02"},
			{ID: "CL02", Name: "Info Requested", Status: StatusInfoRequired, Progress: 30, Next: "CL03"},
			{ID: "CL03", Name: "Info Submitted", Status: StatusProcessing, Progress: 50, Next: "CL04"},
			{ID: "CL04", Name: "Approved", Status: StatusApproved, Progress: 85, Next: "CL07"},
			{ID: "CL05", Name: "Rejected", Status: StatusRejected, Progress: 100, Terminal: true},
			{ID: "CL06", Name: "Partially Approved", Status: StatusPartial, Progress: 85, Next: "CL07"},
			{ID: "CL07", Name: "Payment Issued", Status: StatusPayment, Progress: 100, Terminal: true},
		},
		initial:  "CL01",
		approved: "CL04",
		partial:  "CL06",
		paid:     "CL07",
	},
	CategoryPlan: {
		stages: []StageInfo{
			{ID: "IP01", Name: "Initiated", Status: StatusInitiated, Progress: 50, Next: "IP02"},
			{ID: "IP02", Name: "Details Received", Status: StatusComplete, Progress: 100, Terminal: true},
		},
		initial:  "IP01",
		approved: "IP02",
	},
}

// Stages lists the state machine of a category in declaration order. Nil for
// categories without one.
func Stages(c Category) []StageInfo {
	m, ok := machines[c]
	if !ok {
		return nil
	}
	out := make([]StageInfo, len(m.stages))
	for i, s := range m.stages {
		s.Visual = VisualFor(s.Status)
		out[i] = s
	}
	return out
}

// LookupStage finds a stage by its identifier across all categories.
func LookupStage(id string) (StageInfo, bool) {
	for _, m := range machines {
		if s, ok := m.find(id); ok {
			return s, true
		}
	}
	return StageInfo{}, false
}

func (m machine) find(id string) (StageInfo, bool) {
	for _, s := range m.stages {
		if s.ID == id {
			s.Visual = VisualFor(s.Status)
			return s, true
		}
	}
	return StageInfo{}, false
}

// DeriveStage selects the current stage from the classified resource. It
// reports best-effort progress and never rejects an out-of-order state.
// A response moves on its outcome alone: complete reaches the approved stage,
// partial the partial stage, and anything else stays at the initial stage.
// Categories without a partial stage treat partial as initial.
func DeriveStage(c Category, d Direction, r fhir.Resource) StageInfo {
	m, ok := machines[c]
	if !ok {
		return StageInfo{Visual: VisualFor("")}
	}
	if d == DirectionRequest {
		s, _ := m.find(m.initial)
		return s
	}

	id := m.initial
	switch strings.ToLower(outcomeOf(r)) {
	case fhirmodels.OutcomeComplete:
		id = m.approved
		if m.paid != "" && hasPayment(r) {
			id = m.paid
		}
	case fhirmodels.OutcomePartial:
		if m.partial != "" {
			id = m.partial
		}
	}
	s, _ := m.find(id)
	return s
}

func outcomeOf(r fhir.Resource) string {
	switch v := r.(type) {
	case *fhir.ClaimResponse:
		return v.Outcome
	case *fhir.CoverageEligibilityResponse:
		return v.Outcome
	case *fhir.Unknown:
		if s, ok := v.Fields["outcome"].(string); ok {
			return s
		}
	}
	return ""
}

func hasPayment(r fhir.Resource) bool {
	cr, ok := r.(*fhir.ClaimResponse)
	return ok && cr.Payment != nil && cr.Payment.Amount != nil && cr.Payment.Amount.Value != nil
}
